package likehdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "vidtube/internal/api/base/handler"
	likesvc "vidtube/internal/api/like/service"
	"vidtube/internal/common"
)

// LikeHandler xử lý các request bật/tắt lượt thích
type LikeHandler struct {
	LikeService *likesvc.LikeService
}

// NewLikeHandler tạo mới LikeHandler
func NewLikeHandler() (*LikeHandler, error) {
	likeService, err := likesvc.NewLikeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create like service: %v", err)
	}
	return &LikeHandler{LikeService: likeService}, nil
}

func likeMessage(liked bool) string {
	if liked {
		return "Đã thích"
	}
	return "Đã bỏ thích"
}

// HandleToggleVideoLike bật/tắt lượt thích video
func (h *LikeHandler) HandleToggleVideoLike(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		videoID, err := basehdl.ParseObjectIDParam(c, "videoId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		liked, err := h.LikeService.ToggleVideoLike(c.Context(), videoID, userID)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{"isLiked": liked}, likeMessage(liked))
	})
}

// HandleToggleCommentLike bật/tắt lượt thích bình luận
func (h *LikeHandler) HandleToggleCommentLike(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		commentID, err := basehdl.ParseObjectIDParam(c, "commentId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		liked, err := h.LikeService.ToggleCommentLike(c.Context(), commentID, userID)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{"isLiked": liked}, likeMessage(liked))
	})
}

// HandleLikedVideos trả về các video người dùng hiện tại đã thích
func (h *LikeHandler) HandleLikedVideos(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		page, err := h.LikeService.LikedVideos(c.Context(), userID, basehdl.ParsePagination(c))
		return basehdl.HandleResponse(c, common.StatusOK, page, "Lấy video đã thích thành công", err)
	})
}
