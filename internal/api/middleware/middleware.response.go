package middleware

import (
	"github.com/gofiber/fiber/v3"

	"vidtube/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse trả về envelope lỗi cho client.
// Tách riêng để tránh import cycle với handler package.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	res := common.NewApiError(err)
	return JSONResponse(c, res.StatusCode, res)
}
