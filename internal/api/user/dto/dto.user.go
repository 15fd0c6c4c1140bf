package userdto

import (
	"vidtube/internal/api/user/models"
)

// RegisterInput là các trường văn bản của form đăng ký (avatar, coverImage là tệp)
type RegisterInput struct {
	Username string `json:"username" form:"username" validate:"notblank,min=3,max=30,alphanum"`
	Email    string `json:"email" form:"email" validate:"notblank,email"`
	FullName string `json:"fullName" form:"fullName" validate:"notblank,no_xss,max=100"`
	Password string `json:"password" form:"password" validate:"notblank,min=6,max=72"`
}

// LoginInput đăng nhập bằng username hoặc email
type LoginInput struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"notblank"`
}

// RefreshTokenInput cho phép gửi refresh token trong body khi không dùng cookie
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordInput đổi mật khẩu
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"notblank"`
	NewPassword string `json:"newPassword" validate:"notblank,min=6,max=72"`
}

// UpdateAccountInput cập nhật thông tin tài khoản
type UpdateAccountInput struct {
	FullName string `json:"fullName" validate:"notblank,no_xss,max=100"`
	Email    string `json:"email" validate:"notblank,email"`
}

// AuthResult là kết quả đăng nhập / làm mới token
type AuthResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
