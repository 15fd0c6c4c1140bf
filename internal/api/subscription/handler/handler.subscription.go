package subhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "vidtube/internal/api/base/handler"
	subsvc "vidtube/internal/api/subscription/service"
	"vidtube/internal/common"
)

// SubscriptionHandler xử lý các request đăng ký kênh
type SubscriptionHandler struct {
	SubscriptionService *subsvc.SubscriptionService
}

// NewSubscriptionHandler tạo mới SubscriptionHandler
func NewSubscriptionHandler() (*SubscriptionHandler, error) {
	svc, err := subsvc.NewSubscriptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %v", err)
	}
	return &SubscriptionHandler{SubscriptionService: svc}, nil
}

// HandleToggle đăng ký / hủy đăng ký kênh
func (h *SubscriptionHandler) HandleToggle(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		channelID, err := basehdl.ParseObjectIDParam(c, "channelId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		subscribed, err := h.SubscriptionService.Toggle(c.Context(), channelID, userID)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		msg := "Đã hủy đăng ký kênh"
		if subscribed {
			msg = "Đã đăng ký kênh"
		}
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{"subscribed": subscribed}, msg)
	})
}

// HandleSubscribers trả về người đăng ký của kênh
func (h *SubscriptionHandler) HandleSubscribers(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		channelID, err := basehdl.ParseObjectIDParam(c, "channelId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		page, err := h.SubscriptionService.Subscribers(c.Context(), channelID, basehdl.ParsePagination(c))
		return basehdl.HandleResponse(c, common.StatusOK, page, "Lấy danh sách người đăng ký thành công", err)
	})
}

// HandleSubscribedChannels trả về các kênh mà người dùng đã đăng ký
func (h *SubscriptionHandler) HandleSubscribedChannels(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		subscriberID, err := basehdl.ParseObjectIDParam(c, "subscriberId")
		if err != nil {
			return basehdl.SendError(c, err)
		}
		page, err := h.SubscriptionService.SubscribedChannels(c.Context(), subscriberID, basehdl.ParsePagination(c))
		return basehdl.HandleResponse(c, common.StatusOK, page, "Lấy danh sách kênh đã đăng ký thành công", err)
	})
}
