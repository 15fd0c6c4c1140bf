// Package router đăng ký các route thuộc domain Like.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	likehdl "vidtube/internal/api/like/handler"
	"vidtube/internal/api/middleware"
	apirouter "vidtube/internal/api/router"
)

// Register đăng ký tất cả route lượt thích lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := likehdl.NewLikeHandler()
	if err != nil {
		return fmt.Errorf("create like handler: %w", err)
	}
	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(v1, "/likes", fiber.MethodPost, "/toggle/v/:videoId", auth, h.HandleToggleVideoLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", fiber.MethodPost, "/toggle/c/:commentId", auth, h.HandleToggleCommentLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", fiber.MethodGet, "/liked-videos", auth, h.HandleLikedVideos)
	return nil
}
