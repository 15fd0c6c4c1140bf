package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "vidtube/internal/api/base/handler"
)

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix của API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo RoutePrefix mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo Router cho app
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký một route với chuỗi middleware riêng của nó.
// Middleware chỉ áp dụng cho đúng method + path này, không lan sang các route
// khác cùng prefix (ví dụ /users/login không bị dính auth của /users/current-user).
//
//	authMiddleware := middleware.AuthMiddleware()
//	RegisterRouteWithMiddleware(v1, "/videos", "GET", "/:videoId", []fiber.Handler{authMiddleware}, h.HandleGetVideo)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	chain := append(append([]fiber.Handler{}, middlewares...), handler)
	router.Add([]string{method}, prefix+path, chain[0], chain[1:]...)
}

// RegisterFunc là hàm đăng ký route của một domain
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes đăng ký route hệ thống và route của các domain dưới /api/v1
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)

	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return err
	}
	RegisterRouteWithMiddleware(v1, "/system", fiber.MethodGet, "/health", nil, systemHandler.HandleHealth)

	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
