package main

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	commentrouter "vidtube/internal/api/comment/router"
	likerouter "vidtube/internal/api/like/router"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/router"
	subrouter "vidtube/internal/api/subscription/router"
	userrouter "vidtube/internal/api/user/router"
	videorouter "vidtube/internal/api/video/router"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/logger"
)

// fiberErrorCode ánh xạ HTTP status của *fiber.Error sang mã lỗi nội bộ
func fiberErrorCode(status int) common.ErrorCode {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
		return common.ErrCodeValidationInput
	case fiber.StatusUnauthorized:
		return common.ErrCodeAuthToken
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return common.ErrCodeDatabaseQuery
	default:
		return common.ErrCodeInternalServer
	}
}

// errorHandler trả lỗi ngoài handler (404 route, body quá lớn, ...) theo envelope chuẩn
func errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		err = common.NewError(fiberErrorCode(fe.Code), fe.Message, fe.Code, nil)
	}

	res := common.NewApiError(err)
	logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":    res.StatusCode,
		"message": res.Message,
	}).WithError(err).Error("Request error")
	return middleware.HandleErrorResponse(c, err)
}

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	cfg := global.MongoDB_ServerConfig

	app := fiber.New(fiber.Config{
		AppName:       cfg.AppName,
		ServerHeader:  cfg.AppName,
		StrictRouting: false,
		CaseSensitive: true,

		BodyLimit:       cfg.Upload_MaxSizeMB * 1024 * 1024, // Multipart video có thể lớn
		ReadBufferSize:  8192,
		WriteBufferSize: 4096,

		ReadTimeout:  5 * time.Minute, // Upload video chậm
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	// 1. Request ID
	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	// 2. CORS
	allowOrigins := []string{"*"}
	if cfg.CORS_Origins != "*" {
		allowOrigins = strings.Split(cfg.CORS_Origins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limit theo IP
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return middleware.HandleErrorResponse(c, common.NewError(
					common.ErrCodeBusinessOperation, common.MsgTooManyRequests, common.StatusTooManyRequests, nil))
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/metrics" ||
					c.Path() == "/api/v1/system/health" ||
					c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if err := router.SetupRoutes(app,
		userrouter.Register,
		videorouter.Register,
		commentrouter.Register,
		likerouter.Register,
		subrouter.Register,
	); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	return app
}
