// Package router đăng ký các route thuộc domain Subscription.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
	subhdl "vidtube/internal/api/subscription/handler"
)

// Register đăng ký tất cả route đăng ký kênh lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := subhdl.NewSubscriptionHandler()
	if err != nil {
		return fmt.Errorf("create subscription handler: %w", err)
	}
	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", fiber.MethodPost, "/c/:channelId", auth, h.HandleToggle)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", fiber.MethodGet, "/c/:channelId", auth, h.HandleSubscribers)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", fiber.MethodGet, "/u/:subscriberId", auth, h.HandleSubscribedChannels)
	return nil
}
