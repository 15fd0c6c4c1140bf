package global

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("notblank", validateNotBlank)
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("objectid", validateObjectID)
}

// validateNotBlank: chuỗi phải còn ký tự sau khi trim khoảng trắng
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateObjectID: chuỗi rỗng bỏ qua (dùng kèm required nếu bắt buộc)
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return primitive.IsValidObjectID(value)
}

// ValidateStruct chạy validator và gom lỗi thành common.Error 400 kèm danh sách FieldError
func ValidateStruct(s any) error {
	if Validate == nil {
		InitValidator()
	}

	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil)
	}

	fields := make([]common.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, common.FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return common.NewError(common.ErrCodeValidationInput, fields[0].Message, common.StatusBadRequest, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s không được để trống", fe.Field())
	case "email":
		return fmt.Sprintf("%s không đúng định dạng email", fe.Field())
	case "min":
		return fmt.Sprintf("%s phải có tối thiểu %s ký tự", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s chỉ được tối đa %s ký tự", fe.Field(), fe.Param())
	case "no_xss":
		return fmt.Sprintf("%s chứa nội dung không an toàn", fe.Field())
	case "objectid":
		return fmt.Sprintf("%s không phải ID hợp lệ", fe.Field())
	default:
		return fmt.Sprintf("%s không hợp lệ", fe.Field())
	}
}
