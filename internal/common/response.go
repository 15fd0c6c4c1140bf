package common

import "errors"

// ApiResponse là envelope chuẩn cho mọi response thành công
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ApiError là envelope chuẩn cho mọi response lỗi
type ApiError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	Errors     []any  `json:"errors"`
}

// NewApiResponse tạo envelope thành công. Success suy ra từ status (< 400).
func NewApiResponse(statusCode int, data any, message string) ApiResponse {
	if message == "" {
		message = MsgSuccess
	}
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// NewApiError chuyển một error bất kỳ thành envelope lỗi.
// Lỗi không thuộc *Error được báo là 500 và không lộ chi tiết nội bộ.
func NewApiError(err error) ApiError {
	out := ApiError{
		StatusCode: StatusInternalServerError,
		Message:    MsgInternalError,
		Success:    false,
		Errors:     []any{},
	}

	var e *Error
	if !errors.As(err, &e) {
		return out
	}

	out.StatusCode = e.StatusCode
	out.Message = e.Message
	switch d := e.Details.(type) {
	case []FieldError:
		for _, fe := range d {
			out.Errors = append(out.Errors, fe)
		}
	case []any:
		out.Errors = append(out.Errors, d...)
	}
	return out
}
