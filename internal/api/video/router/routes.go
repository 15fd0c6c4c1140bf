// Package router đăng ký các route thuộc domain Video.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
	videohdl "vidtube/internal/api/video/handler"
)

// Register đăng ký tất cả route video lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := videohdl.NewVideoHandler()
	if err != nil {
		return fmt.Errorf("create video handler: %w", err)
	}
	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodGet, "", auth, h.HandleFeed)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodPost, "", auth, h.HandlePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodPatch, "/toggle/publish/:videoId", auth, h.HandleTogglePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodGet, "/:videoId", auth, h.HandleGetVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodPatch, "/:videoId", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodDelete, "/:videoId", auth, h.HandleDelete)
	return nil
}
