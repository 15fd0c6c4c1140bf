package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/logger"
	"vidtube/internal/utility"
)

// AccessTokenCookie là tên cookie chứa access token
const AccessTokenCookie = "accessToken"

// UserChecker kiểm tra người dùng trong token còn tồn tại
type UserChecker interface {
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// AuthManager xác thực access token và cache kết quả kiểm tra người dùng
type AuthManager struct {
	Tokens *utility.TokenService
	Users  UserChecker
	Cache  *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		coll, err := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Users)
		if err != nil {
			logger.WithModule("auth").WithError(err).Fatal("Không lấy được collection người dùng")
		}
		authManagerInstance = NewAuthManager(global.Tokens, basesvc.NewBaseServiceMongo[bson.M](coll))
	})
	return authManagerInstance
}

// NewAuthManager tạo AuthManager, cache sống 5 phút và dọn mỗi 10 phút
func NewAuthManager(tokens *utility.TokenService, users UserChecker) *AuthManager {
	return &AuthManager{
		Tokens: tokens,
		Users:  users,
		Cache:  utility.NewCache(5*time.Minute, 10*time.Minute),
	}
}

// userExists kiểm tra người dùng qua cache rồi tới database
func (am *AuthManager) userExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	cacheKey := "user_exists:" + id.Hex()
	if _, found := am.Cache.Get(cacheKey); found {
		return true, nil
	}
	exists, err := am.Users.DocumentExists(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if exists {
		am.Cache.Set(cacheKey, true)
	}
	return exists, nil
}

// Forget xóa người dùng khỏi cache
func (am *AuthManager) Forget(id primitive.ObjectID) {
	am.Cache.Delete("user_exists:" + id.Hex())
}

// Handler trả về middleware yêu cầu access token hợp lệ
func (am *AuthManager) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Thiếu access token")
			return HandleErrorResponse(c, err)
		}

		claims, err := am.Tokens.Validate(utility.AccessToken, token)
		if err != nil {
			return HandleErrorResponse(c, err)
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return HandleErrorResponse(c, common.ErrTokenInvalid)
		}

		exists, err := am.userExists(c.Context(), userID)
		if err != nil {
			return HandleErrorResponse(c, err)
		}
		if !exists {
			logger.GetAppLogger().WithField("user_id", claims.Subject).Warn("❌ [AUTH] Token của người dùng không còn tồn tại")
			return HandleErrorResponse(c, common.ErrTokenInvalid)
		}

		c.Locals("user_id", claims.Subject)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// AuthMiddleware là middleware xác thực dùng AuthManager toàn cục
func AuthMiddleware() fiber.Handler {
	return GetAuthManager().Handler()
}

// extractToken lấy token từ header Authorization (Bearer) hoặc cookie
func extractToken(c fiber.Ctx) (string, error) {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", common.ErrTokenInvalid
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if cookie := c.Cookies(AccessTokenCookie); cookie != "" {
		return cookie, nil
	}
	return "", common.ErrTokenMissing
}
