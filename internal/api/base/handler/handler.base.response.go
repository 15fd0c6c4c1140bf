// Package basehdl chứa các helper dùng chung cho mọi handler: envelope response,
// parse request, lấy người dùng hiện tại và lưu tệp tạm.
package basehdl

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/common"
	"vidtube/internal/logger"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SendSuccess trả về envelope thành công
func SendSuccess(c fiber.Ctx, statusCode int, data interface{}, message string) error {
	return JSONResponse(c, statusCode, common.NewApiResponse(statusCode, data, message))
}

// SendError trả về envelope lỗi. Lỗi 5xx được ghi log kèm request context.
func SendError(c fiber.Ctx, err error) error {
	res := common.NewApiError(err)
	if res.StatusCode >= common.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).Error("Lỗi xử lý request")
	}
	return JSONResponse(c, res.StatusCode, res)
}

// HandleResponse gửi data nếu err == nil, ngược lại gửi envelope lỗi
func HandleResponse(c fiber.Ctx, statusCode int, data interface{}, message string, err error) error {
	if err != nil {
		return SendError(c, err)
	}
	return SendSuccess(c, statusCode, data, message)
}

// SafeHandler bọc handler với recover để server luôn trả response kể cả khi panic
func SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).Error(string(debug.Stack()))
			err = SendError(c, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}
