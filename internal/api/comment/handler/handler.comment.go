package commenthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "vidtube/internal/api/base/handler"
	commentdto "vidtube/internal/api/comment/dto"
	commentsvc "vidtube/internal/api/comment/service"
	"vidtube/internal/common"
	"vidtube/internal/logger"
)

// CommentHandler xử lý các request liên quan đến bình luận
type CommentHandler struct {
	CommentService *commentsvc.CommentService
}

// NewCommentHandler tạo mới CommentHandler
func NewCommentHandler() (*CommentHandler, error) {
	commentService, err := commentsvc.NewCommentService()
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %v", err)
	}
	return &CommentHandler{CommentService: commentService}, nil
}

// HandleList trả về bình luận của video (videoId, page, limit)
func (h *CommentHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		videoID, err := basehdl.ParseObjectIDQuery(c, "videoId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		if videoID == nil {
			return basehdl.SendError(c, common.NewError(common.ErrCodeValidationInput, "Thiếu videoId", common.StatusBadRequest, nil))
		}
		page, err := h.CommentService.List(c.Context(), *videoID, basehdl.ViewerID(c), basehdl.ParsePagination(c))
		return basehdl.HandleResponse(c, common.StatusOK, page, "Lấy bình luận thành công", err)
	})
}

// HandleAdd thêm bình luận
func (h *CommentHandler) HandleAdd(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		var input commentdto.AddCommentInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}

		comment, err := h.CommentService.Add(c.Context(), owner, &input)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		logger.LogMutation(c, "create", "comment", comment.ID.Hex(), map[string]interface{}{"video_id": input.VideoID})
		return basehdl.SendSuccess(c, common.StatusCreated, comment, "Thêm bình luận thành công")
	})
}

// HandleUpdate sửa bình luận. Chỉ người viết.
func (h *CommentHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "commentId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		var input commentdto.UpdateCommentInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}

		comment, err := h.CommentService.Update(c.Context(), id, owner, &input)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		logger.LogMutation(c, "update", "comment", id.Hex(), nil)
		return basehdl.SendSuccess(c, common.StatusOK, comment, "Cập nhật bình luận thành công")
	})
}

// HandleDelete xóa bình luận. Chỉ người viết.
func (h *CommentHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "commentId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		if _, err := h.CommentService.Delete(c.Context(), id, owner); err != nil {
			return basehdl.SendError(c, err)
		}
		logger.LogMutation(c, "delete", "comment", id.Hex(), nil)
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{}, "Xóa bình luận thành công")
	})
}
