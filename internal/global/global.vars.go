package global

import (
	"vidtube/config"
	"vidtube/internal/registry"
	"vidtube/internal/upload"
	"vidtube/internal/utility"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users         string // Tên collection cho người dùng
	Videos        string // Tên collection cho video
	Comments      string // Tên collection cho bình luận
	Likes         string // Tên collection cho lượt thích (video hoặc bình luận)
	Subscriptions string // Tên collection cho đăng ký kênh
}

// Các biến toàn cục
var Validate *validator.Validate                                    // Validator cho DTO
var MongoDB_Session *mongo.Client                                   // Phiên kết nối MongoDB
var MongoDB_ServerConfig *config.Configuration                      // Cấu hình server
var MongoDB_ColNames MongoDB_CollectionName                         // Tên các collection
var Tokens *utility.TokenService                                    // Dịch vụ ký và xác thực JWT
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry các collection đã mở
var Uploads *upload.Bridge                                          // Cầu nối upload tệp lên kho lưu trữ
