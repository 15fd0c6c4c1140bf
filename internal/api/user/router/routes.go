// Package router đăng ký các route thuộc domain User: xác thực, tài khoản, kênh.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
	userhdl "vidtube/internal/api/user/handler"
)

// Register đăng ký tất cả route người dùng lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := userhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("create user handler: %w", err)
	}
	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/register", nil, h.HandleRegister)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/login", nil, h.HandleLogin)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/refresh-token", nil, h.HandleRefreshToken)

	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/logout", auth, h.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/change-password", auth, h.HandleChangePassword)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodGet, "/current-user", auth, h.HandleCurrentUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPatch, "/update-account", auth, h.HandleUpdateAccount)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPatch, "/avatar", auth, h.HandleUpdateAvatar)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPatch, "/cover-image", auth, h.HandleUpdateCoverImage)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodGet, "/c/:username", auth, h.HandleChannelProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodGet, "/history", auth, h.HandleWatchHistory)
	return nil
}
