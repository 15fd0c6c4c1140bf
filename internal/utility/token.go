package utility

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vidtube/internal/common"
)

// TokenKind phân biệt access token và refresh token
type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

// TokenClaims là payload của JWT. Subject giữ user ID dạng hex.
type TokenClaims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService ký và xác thực JWT (HS256). Access và refresh dùng hai secret khác nhau.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService tạo TokenService, secret phải có tối thiểu 16 ký tự
func NewTokenService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(accessSecret) < 16 || len(refreshSecret) < 16 {
		return nil, errors.New("token: JWT secret must be at least 16 characters")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token: TTL must be positive")
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateAccess ký access token chứa username và email
func (s *TokenService) GenerateAccess(userID, username, email string) (string, error) {
	return s.sign(AccessToken, TokenClaims{Username: username, Email: email}, userID)
}

// GenerateRefresh ký refresh token chỉ chứa subject
func (s *TokenService) GenerateRefresh(userID string) (string, error) {
	return s.sign(RefreshToken, TokenClaims{}, userID)
}

func (s *TokenService) sign(kind TokenKind, c TokenClaims, userID string) (string, error) {
	now := time.Now()
	ttl, secret := s.accessTTL, s.accessSecret
	if kind == RefreshToken {
		ttl, secret = s.refreshTTL, s.refreshSecret
	}

	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    s.issuer,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: signing: %w", err)
	}
	return signed, nil
}

// Validate xác thực token theo loại và trả về claims.
// Token hết hạn trả common.ErrTokenExpired, các lỗi khác trả common.ErrTokenInvalid.
func (s *TokenService) Validate(kind TokenKind, tokenStr string) (*TokenClaims, error) {
	secret := s.accessSecret
	if kind == RefreshToken {
		secret = s.refreshSecret
	}

	c := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, c,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid || c.Subject == "" {
		return nil, common.ErrTokenInvalid
	}
	return c, nil
}

// RefreshTTL trả về thời hạn refresh token (dùng cho cookie MaxAge)
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// AccessTTL trả về thời hạn access token
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }
