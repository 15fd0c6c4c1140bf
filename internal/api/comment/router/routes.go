// Package router đăng ký các route thuộc domain Comment.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	commenthdl "vidtube/internal/api/comment/handler"
	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
)

// Register đăng ký tất cả route bình luận lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := commenthdl.NewCommentHandler()
	if err != nil {
		return fmt.Errorf("create comment handler: %w", err)
	}
	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(v1, "/comments", fiber.MethodGet, "", auth, h.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", fiber.MethodPost, "", auth, h.HandleAdd)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", fiber.MethodPatch, "/:commentId", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", fiber.MethodDelete, "/:commentId", auth, h.HandleDelete)
	return nil
}
