package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/common"
	"vidtube/internal/global"
)

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct{}

// NewSystemHandler tạo một instance mới của SystemHandler
func NewSystemHandler() (*SystemHandler, error) {
	return &SystemHandler{}, nil
}

// HandleHealth kiểm tra tình trạng API và kết nối MongoDB
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if global.MongoDB_Session == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return SendSuccess(c, common.StatusOK, healthData, "")
	}

	if err := global.MongoDB_Session.Ping(ctx, nil); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		return JSONResponse(c, common.StatusServiceUnavailable, common.NewApiResponse(
			common.StatusServiceUnavailable, healthData, "Hệ thống đang gặp sự cố",
		))
	}
	services["database"] = "ok"
	return SendSuccess(c, common.StatusOK, healthData, "")
}
