package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "JWT_SECRET=access\nJWT_REFRESH_SECRET=refresh\nMONGODB_CONNECTION_URI=mongodb://localhost:27017\nFEED_MAX_LIMIT=20\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("không ghi được file env: %v", err)
	}
	// godotenv không ghi đè biến đã có, dọn sạch trước
	for _, k := range []string{"JWT_SECRET", "JWT_REFRESH_SECRET", "MONGODB_CONNECTION_URI", "FEED_MAX_LIMIT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range []string{"JWT_SECRET", "JWT_REFRESH_SECRET", "MONGODB_CONNECTION_URI", "FEED_MAX_LIMIT"} {
			os.Unsetenv(k)
		}
	})

	cfg := NewConfig(envFile)
	if cfg == nil {
		t.Fatal("NewConfig trả về nil")
	}
	if cfg.JwtSecret != "access" {
		t.Errorf("JwtSecret = %q, muốn %q", cfg.JwtSecret, "access")
	}
	if cfg.Feed_MaxLimit != 20 {
		t.Errorf("Feed_MaxLimit = %d, muốn 20", cfg.Feed_MaxLimit)
	}
	if cfg.Feed_DefaultLimit != 10 {
		t.Errorf("Feed_DefaultLimit mặc định = %d, muốn 10", cfg.Feed_DefaultLimit)
	}
	if cfg.MongoDB_DBName != "vidtube" {
		t.Errorf("MongoDB_DBName mặc định = %q", cfg.MongoDB_DBName)
	}
}

func TestNewConfig_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "empty.env")
	if err := os.WriteFile(envFile, []byte("ADDRESS=9000\n"), 0o600); err != nil {
		t.Fatalf("không ghi được file env: %v", err)
	}
	for _, k := range []string{"JWT_SECRET", "JWT_REFRESH_SECRET", "MONGODB_CONNECTION_URI", "ADDRESS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Cleanup(func() { os.Unsetenv("ADDRESS") })

	if cfg := NewConfig(envFile); cfg != nil {
		t.Errorf("thiếu biến bắt buộc nhưng vẫn trả về config: %+v", cfg)
	}
}
