package videohdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "vidtube/internal/api/base/handler"
	videodto "vidtube/internal/api/video/dto"
	videosvc "vidtube/internal/api/video/service"
	"vidtube/internal/common"
	"vidtube/internal/logger"
	"vidtube/internal/upload"
)

// VideoHandler xử lý các request liên quan đến video
type VideoHandler struct {
	VideoService *videosvc.VideoService
	Uploads      basehdl.Uploader
}

// NewVideoHandler tạo mới VideoHandler
func NewVideoHandler() (*VideoHandler, error) {
	videoService, err := videosvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	uploads, err := basehdl.DefaultUploader()
	if err != nil {
		return nil, err
	}
	return &VideoHandler{VideoService: videoService, Uploads: uploads}, nil
}

// HandleFeed trả về feed video công khai (page, limit, query, sortBy, sortType, userId)
func (h *VideoHandler) HandleFeed(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.ParseObjectIDQuery(c, "userId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		q := &videodto.FeedQuery{
			Query:      c.Query("query"),
			SortBy:     c.Query("sortBy"),
			SortType:   c.Query("sortType"),
			Owner:      owner,
			Pagination: basehdl.ParsePagination(c),
		}
		page, err := h.VideoService.Feed(c.Context(), q, basehdl.ViewerID(c))
		return basehdl.HandleResponse(c, common.StatusOK, page, "Lấy danh sách video thành công", err)
	})
}

// HandleGetVideo trả về một video kèm hồ sơ chủ kênh và số liệu like
func (h *VideoHandler) HandleGetVideo(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "videoId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		video, err := h.VideoService.GetByID(c.Context(), id, basehdl.ViewerID(c))
		return basehdl.HandleResponse(c, common.StatusOK, video, "Lấy video thành công", err)
	})
}

// HandlePublish đăng video mới (multipart: title, description, videoFile, thumbnail)
func (h *VideoHandler) HandlePublish(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		var input videodto.PublishVideoInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}

		videoPath, err := basehdl.SaveFormFile(c, "videoFile", common.ErrVideoFileRequired)
		defer upload.Cleanup(videoPath)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		thumbPath, err := basehdl.SaveFormFile(c, "thumbnail", common.ErrThumbnailRequired)
		defer upload.Cleanup(thumbPath)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		videoFile := h.Uploads.Upload(c.Context(), videoPath, upload.KindVideo)
		if videoFile == nil {
			return basehdl.SendError(c, common.ErrUploadFailed)
		}
		thumbnail := h.Uploads.Upload(c.Context(), thumbPath, upload.KindImage)
		if thumbnail == nil {
			h.Uploads.Remove(c.Context(), videoFile.ObjectName)
			return basehdl.SendError(c, common.ErrUploadFailed)
		}

		video, err := h.VideoService.Publish(c.Context(), owner, &input, videoFile.URL, thumbnail.URL, videoFile.Duration)
		if err != nil {
			h.Uploads.Remove(c.Context(), videoFile.ObjectName)
			h.Uploads.Remove(c.Context(), thumbnail.ObjectName)
			return basehdl.SendError(c, err)
		}

		logger.LogMutation(c, "create", "video", video.ID.Hex(), map[string]interface{}{"duration": video.Duration})
		return basehdl.SendSuccess(c, common.StatusCreated, video, "Đăng video thành công")
	})
}

// HandleUpdate sửa tiêu đề, mô tả, thumbnail (tùy chọn). Chỉ chủ sở hữu.
func (h *VideoHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "videoId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		var input videodto.UpdateVideoInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}

		thumbPath, err := basehdl.SaveFormFile(c, "thumbnail", nil)
		defer upload.Cleanup(thumbPath)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		var thumbURL, thumbObject string
		if thumbPath != "" {
			res := h.Uploads.Upload(c.Context(), thumbPath, upload.KindImage)
			if res == nil {
				return basehdl.SendError(c, common.ErrUploadFailed)
			}
			thumbURL, thumbObject = res.URL, res.ObjectName
		}

		video, err := h.VideoService.UpdateDetails(c.Context(), id, owner, &input, thumbURL)
		if err != nil {
			h.Uploads.Remove(c.Context(), thumbObject)
			return basehdl.SendError(c, err)
		}

		logger.LogMutation(c, "update", "video", id.Hex(), map[string]interface{}{"thumbnail": thumbURL != ""})
		return basehdl.SendSuccess(c, common.StatusOK, video, "Cập nhật video thành công")
	})
}

// HandleDelete xóa video cùng bình luận, lượt thích và tệp trên kho lưu trữ. Chỉ chủ sở hữu.
func (h *VideoHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "videoId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		video, err := h.VideoService.Delete(c.Context(), id, owner)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		h.Uploads.RemoveURL(c.Context(), video.VideoFile)
		h.Uploads.RemoveURL(c.Context(), video.Thumbnail)

		logger.LogMutation(c, "delete", "video", id.Hex(), nil)
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{}, "Xóa video thành công")
	})
}

// HandleTogglePublish đảo trạng thái công khai. Chỉ chủ sở hữu.
func (h *VideoHandler) HandleTogglePublish(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		owner, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "videoId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		video, err := h.VideoService.TogglePublish(c.Context(), id, owner)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogMutation(c, "toggle_publish", "video", id.Hex(), map[string]interface{}{"isPublished": video.IsPublished})
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{"isPublished": video.IsPublished}, "Đã đổi trạng thái công khai")
	})
}
