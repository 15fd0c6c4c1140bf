package userhdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "vidtube/internal/api/base/handler"
	"vidtube/internal/api/middleware"
	userdto "vidtube/internal/api/user/dto"
	usersvc "vidtube/internal/api/user/service"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/logger"
	"vidtube/internal/upload"
)

// RefreshTokenCookie là tên cookie chứa refresh token
const RefreshTokenCookie = "refreshToken"

// UserHandler xử lý các request liên quan đến người dùng và xác thực
type UserHandler struct {
	UserService  *usersvc.UserService
	Uploads      basehdl.Uploader
	SecureCookie bool
}

// NewUserHandler tạo mới UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := usersvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	uploads, err := basehdl.DefaultUploader()
	if err != nil {
		return nil, err
	}
	secure := true
	if cfg := global.MongoDB_ServerConfig; cfg != nil {
		secure = cfg.CookieSecure
	}
	return &UserHandler{UserService: userService, Uploads: uploads, SecureCookie: secure}, nil
}

func (h *UserHandler) setAuthCookies(c fiber.Ctx, res *userdto.AuthResult) {
	tokens := global.Tokens
	accessTTL, refreshTTL := 15*time.Minute, 240*time.Hour
	if tokens != nil {
		accessTTL, refreshTTL = tokens.AccessTTL(), tokens.RefreshTTL()
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(accessTTL),
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    res.RefreshToken,
		Path:     "/",
		Expires:  time.Now().Add(refreshTTL),
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// HandleRegister đăng ký tài khoản (multipart: username, email, fullName, password, avatar, coverImage?).
// Trường văn bản được kiểm tra trước khi lưu hay upload bất kỳ tệp nào.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input userdto.RegisterInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}
		if err := h.UserService.EnsureAvailable(c.Context(), input.Username, input.Email); err != nil {
			return basehdl.SendError(c, err)
		}

		avatarPath, err := basehdl.SaveFormFile(c, "avatar", common.ErrAvatarRequired)
		defer upload.Cleanup(avatarPath)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		coverPath, err := basehdl.SaveFormFile(c, "coverImage", nil)
		defer upload.Cleanup(coverPath)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		avatar := h.Uploads.Upload(c.Context(), avatarPath, upload.KindImage)
		if avatar == nil {
			return basehdl.SendError(c, common.ErrUploadFailed)
		}
		var coverURL, coverObject string
		if coverPath != "" {
			cover := h.Uploads.Upload(c.Context(), coverPath, upload.KindImage)
			if cover == nil {
				h.Uploads.Remove(c.Context(), avatar.ObjectName)
				return basehdl.SendError(c, common.ErrUploadFailed)
			}
			coverURL, coverObject = cover.URL, cover.ObjectName
		}

		user, err := h.UserService.Register(c.Context(), &input, avatar.URL, coverURL)
		if err != nil {
			h.Uploads.Remove(c.Context(), avatar.ObjectName)
			h.Uploads.Remove(c.Context(), coverObject)
			return basehdl.SendError(c, err)
		}

		logger.LogAuth(c, "register", user.ID.Hex())
		return basehdl.SendSuccess(c, common.StatusCreated, user, "Đăng ký thành công")
	})
}

// HandleLogin đăng nhập bằng username hoặc email, cấp token qua body và cookie
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input userdto.LoginInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}

		res, err := h.UserService.Login(c.Context(), &input)
		if err != nil {
			logger.LogAuth(c, "login_failed", "")
			return basehdl.SendError(c, err)
		}

		h.setAuthCookies(c, res)
		logger.LogAuth(c, "login", res.User.ID.Hex())
		return basehdl.SendSuccess(c, common.StatusOK, res, "Đăng nhập thành công")
	})
}

// HandleRefreshToken xoay vòng cặp token. Refresh token lấy từ cookie, không có thì từ body.
func (h *UserHandler) HandleRefreshToken(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		token := c.Cookies(RefreshTokenCookie)
		if token == "" {
			var input userdto.RefreshTokenInput
			if len(c.Body()) > 0 {
				if err := c.Bind().Body(&input); err != nil {
					return basehdl.SendError(c, common.ErrInvalidInput)
				}
			}
			token = input.RefreshToken
		}

		res, err := h.UserService.Refresh(c.Context(), token)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		h.setAuthCookies(c, res)
		logger.LogAuth(c, "refresh", res.User.ID.Hex())
		return basehdl.SendSuccess(c, common.StatusOK, res, "Đã làm mới token")
	})
}

// HandleLogout thu hồi refresh token và xóa cookie
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		if err := h.UserService.Logout(c.Context(), userID); err != nil {
			return basehdl.SendError(c, err)
		}

		c.ClearCookie(middleware.AccessTokenCookie, RefreshTokenCookie)
		logger.LogAuth(c, "logout", userID.Hex())
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{}, "Đã đăng xuất")
	})
}

// HandleChangePassword đổi mật khẩu của người dùng hiện tại
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		var input userdto.ChangePasswordInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}
		if err := h.UserService.ChangePassword(c.Context(), userID, &input); err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogAuth(c, "change_password", userID.Hex())
		return basehdl.SendSuccess(c, common.StatusOK, fiber.Map{}, "Đổi mật khẩu thành công")
	})
}

// HandleCurrentUser trả về hồ sơ người dùng hiện tại
func (h *UserHandler) HandleCurrentUser(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		user, err := h.UserService.CurrentUser(c.Context(), userID)
		return basehdl.HandleResponse(c, common.StatusOK, user, "Lấy thông tin người dùng thành công", err)
	})
}

// HandleUpdateAccount cập nhật họ tên và email
func (h *UserHandler) HandleUpdateAccount(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		var input userdto.UpdateAccountInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.SendError(c, err)
		}

		user, err := h.UserService.UpdateAccount(c.Context(), userID, &input)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		logger.LogMutation(c, "update", "user", userID.Hex(), map[string]interface{}{"fields": []string{"fullName", "email"}})
		return basehdl.SendSuccess(c, common.StatusOK, user, "Cập nhật tài khoản thành công")
	})
}

// HandleUpdateAvatar thay ảnh đại diện
func (h *UserHandler) HandleUpdateAvatar(c fiber.Ctx) error {
	return h.updateImage(c, "avatar", common.ErrAvatarRequired, "Cập nhật ảnh đại diện thành công")
}

// HandleUpdateCoverImage thay ảnh bìa
func (h *UserHandler) HandleUpdateCoverImage(c fiber.Ctx) error {
	return h.updateImage(c, "coverImage",
		common.NewError(common.ErrCodeValidationInput, "Ảnh bìa là bắt buộc", common.StatusBadRequest, nil),
		"Cập nhật ảnh bìa thành công")
}

func (h *UserHandler) updateImage(c fiber.Ctx, field string, required error, message string) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		path, err := basehdl.SaveFormFile(c, field, required)
		defer upload.Cleanup(path)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		res := h.Uploads.Upload(c.Context(), path, upload.KindImage)
		if res == nil {
			return basehdl.SendError(c, common.ErrUploadFailed)
		}

		user, err := h.UserService.UpdateImage(c.Context(), userID, field, res.URL)
		if err != nil {
			h.Uploads.Remove(c.Context(), res.ObjectName)
			return basehdl.SendError(c, err)
		}
		logger.LogMutation(c, "update", "user", userID.Hex(), map[string]interface{}{"fields": []string{field}})
		return basehdl.SendSuccess(c, common.StatusOK, user, message)
	})
}

// HandleChannelProfile trả về trang kênh theo username
func (h *UserHandler) HandleChannelProfile(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		username := c.Params("username")
		if username == "" {
			return basehdl.SendError(c, common.NewError(common.ErrCodeValidationInput, "Thiếu username", common.StatusBadRequest, nil))
		}
		profile, err := h.UserService.ChannelProfile(c.Context(), username, userID)
		return basehdl.HandleResponse(c, common.StatusOK, profile, "Lấy thông tin kênh thành công", err)
	})
}

// HandleWatchHistory trả về lịch sử xem của người dùng hiện tại
func (h *UserHandler) HandleWatchHistory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.CurrentUserID(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		page, err := h.UserService.WatchHistory(c.Context(), userID, basehdl.ParsePagination(c))
		return basehdl.HandleResponse(c, common.StatusOK, page, "Lấy lịch sử xem thành công", err)
	})
}
