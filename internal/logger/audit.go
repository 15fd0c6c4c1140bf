package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogMutation ghi audit cho thao tác thay đổi tài nguyên có kiểm tra chủ sở hữu
func LogMutation(c fiber.Ctx, operation, resourceType, resourceID string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if requestID := requestIDOf(c); requestID != "" {
		details["request_id"] = requestID
	}

	userID, _ := c.Locals("user_id").(string)

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        "mutation_" + operation,
		"user_id":       userID,
		"resource_id":   resourceID,
		"resource_type": resourceType,
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"details":       details,
		"timestamp":     time.Now(),
	}).Info("Audit log")
}

// LogAuth ghi audit cho các thao tác xác thực (login, logout, refresh, đổi mật khẩu)
func LogAuth(c fiber.Ctx, action string, userID string) {
	GetAuditLogger().WithFields(logrus.Fields{
		"action":     "auth_" + action,
		"user_id":    userID,
		"ip":         c.IP(),
		"user_agent": c.Get("User-Agent"),
		"request_id": requestIDOf(c),
		"timestamp":  time.Now(),
	}).Info("Audit log")
}
