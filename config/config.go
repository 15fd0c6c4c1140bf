package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin cơ sở dữ liệu, xác thực và kho lưu trữ tệp
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server
	AppName               string `env:"APP_NAME" envDefault:"vidtube"`             // Tên ứng dụng
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật JWT cho access token
	JwtRefreshSecret      string `env:"JWT_REFRESH_SECRET,required"`               // Bí mật JWT cho refresh token
	JwtIssuer             string `env:"JWT_ISSUER" envDefault:"vidtube"`           // Issuer của token
	AccessTokenTTL        int    `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"15"`  // Thời hạn access token (phút)
	RefreshTokenTTL       int    `env:"REFRESH_TOKEN_TTL_HOURS" envDefault:"240"`  // Thời hạn refresh token (giờ)
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"vidtube"`       // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	CookieSecure          bool   `env:"COOKIE_SECURE" envDefault:"true"`           // Cookie token chỉ gửi qua HTTPS
	// MinIO / Object Storage
	Minio_Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`          // Địa chỉ MinIO
	Minio_AccessKey string `env:"MINIO_ACCESS_KEY"`                                    // Access key
	Minio_SecretKey string `env:"MINIO_SECRET_KEY"`                                    // Secret key
	Minio_UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`                    // Kết nối bằng HTTPS
	Minio_Bucket    string `env:"MINIO_BUCKET" envDefault:"vidtube"`                   // Bucket chứa media
	Minio_Region    string `env:"MINIO_REGION" envDefault:"us-east-1"`                 // Region của bucket
	Minio_PublicURL string `env:"MINIO_PUBLIC_URL" envDefault:"http://localhost:9000"` // Tiền tố URL công khai của object
	// Upload
	Upload_TempDir   string `env:"UPLOAD_TEMP_DIR" envDefault:"./public/temp"` // Thư mục chứa tệp tạm
	Upload_MaxSizeMB int    `env:"UPLOAD_MAX_SIZE_MB" envDefault:"200"`        // Kích thước body tối đa (MB)
	// Feed
	Feed_DefaultLimit int64 `env:"FEED_DEFAULT_LIMIT" envDefault:"10"` // Số phần tử mặc định mỗi trang
	Feed_MaxLimit     int64 `env:"FEED_MAX_LIMIT" envDefault:"50"`     // Số phần tử tối đa mỗi trang
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse biến môi trường.
// files cho phép chỉ định file env cụ thể thay cho file theo GO_ENV.
func NewConfig(files ...string) *Configuration {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			if _, err := os.Stat(envPath); err == nil {
				files = []string{envPath}
			} else {
				// Container thường truyền cấu hình trực tiếp qua biến môi trường
				fmt.Printf("Không tìm thấy file env tại %s, dùng biến môi trường\n", envPath)
			}
		}
	}

	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			fmt.Printf("Không thể load file env %v: %v\n", files, err)
			return nil
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
