package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/common"
)

func newTestTokens(t *testing.T, accessTTL time.Duration) *TokenService {
	t.Helper()
	s, err := NewTokenService("access-secret-0123456789", "refresh-secret-0123456789", "vidtube-test", accessTTL, time.Hour)
	require.NoError(t, err)
	return s
}

func TestTokenService(t *testing.T) {
	t.Run("✅ Access token hợp lệ", func(t *testing.T) {
		s := newTestTokens(t, time.Minute)
		tok, err := s.GenerateAccess("64b7f0c2a1b2c3d4e5f60718", "alice", "alice@example.com")
		require.NoError(t, err)

		claims, err := s.Validate(AccessToken, tok)
		require.NoError(t, err)
		assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.Subject)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("❌ Refresh token không dùng được như access token", func(t *testing.T) {
		s := newTestTokens(t, time.Minute)
		tok, err := s.GenerateRefresh("64b7f0c2a1b2c3d4e5f60718")
		require.NoError(t, err)

		_, err = s.Validate(AccessToken, tok)
		assert.ErrorIs(t, err, common.ErrTokenInvalid)

		claims, err := s.Validate(RefreshToken, tok)
		require.NoError(t, err)
		assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.Subject)
	})

	t.Run("❌ Token hết hạn", func(t *testing.T) {
		s := newTestTokens(t, time.Nanosecond)
		tok, err := s.GenerateAccess("u1", "bob", "bob@example.com")
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)

		_, err = s.Validate(AccessToken, tok)
		assert.ErrorIs(t, err, common.ErrTokenExpired)
	})

	t.Run("❌ Chuỗi rác", func(t *testing.T) {
		s := newTestTokens(t, time.Minute)
		_, err := s.Validate(AccessToken, "not-a-jwt")
		assert.ErrorIs(t, err, common.ErrTokenInvalid)
	})

	t.Run("❌ Secret quá ngắn", func(t *testing.T) {
		_, err := NewTokenService("short", "refresh-secret-0123456789", "x", time.Minute, time.Hour)
		assert.Error(t, err)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestParseObjectID(t *testing.T) {
	id, err := ParseObjectID(" 64b7f0c2a1b2c3d4e5f60718 ")
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", id.Hex())

	_, err = ParseObjectID("xyz")
	assert.ErrorIs(t, err, common.ErrInvalidID)
	_, err = ParseObjectID("")
	assert.ErrorIs(t, err, common.ErrInvalidID)
}

func TestCache(t *testing.T) {
	c := NewCache(50*time.Millisecond, time.Hour)
	defer c.Stop()

	c.Set("user:1", true)
	v, ok := c.Get("user:1")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	time.Sleep(80 * time.Millisecond)
	_, ok = c.Get("user:1")
	assert.False(t, ok, "item hết hạn phải bị bỏ qua")

	c.Set("user:2", 1)
	c.Delete("user:2")
	_, ok = c.Get("user:2")
	assert.False(t, ok)
}

type sample struct {
	Title string `bson:"title"`
	Skip  string `bson:"skip,omitempty"`
}

func TestToMapFromMap(t *testing.T) {
	m, err := ToMap(sample{Title: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", m["title"])
	_, has := m["skip"]
	assert.False(t, has)

	m["title"] = "changed"
	out, err := FromMap[sample](m)
	require.NoError(t, err)
	assert.Equal(t, "changed", out.Title)
}
