package main

import (
	"context"
	"time"

	"vidtube/config"
	commentmodels "vidtube/internal/api/comment/models"
	likemodels "vidtube/internal/api/like/models"
	submodels "vidtube/internal/api/subscription/models"
	usermodels "vidtube/internal/api/user/models"
	videomodels "vidtube/internal/api/video/models"
	"vidtube/internal/database"
	"vidtube/internal/global"
	"vidtube/internal/logger"
	"vidtube/internal/upload"
	"vidtube/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	InitRegistry()         // Đăng ký các collection
	initTokens()           // Khởi tạo dịch vụ JWT
	initUploads()          // Khởi tạo kho lưu trữ tệp
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
	global.MongoDB_ColNames.Comments = "comments"
	global.MongoDB_ColNames.Likes = "likes"
	global.MongoDB_ColNames.Subscriptions = "subscriptions"
	logger.GetAppLogger().Info("Initialized collection names")
}

func collectionNames() []string {
	n := global.MongoDB_ColNames
	return []string{n.Users, n.Videos, n.Comments, n.Likes, n.Subscriptions}
}

// Hàm khởi tạo validator (đăng ký notblank, no_xss, objectid)
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logger.GetAppLogger().Fatal("Failed to initialize config: config is nil")
	}
	logger.GetAppLogger().Info("Initialized server config")
}

// Hàm khởi tạo kết nối database, collection và index
func initDatabase_MongoDB() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	var err error
	global.MongoDB_Session, err = database.GetInstance(cfg)
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	log.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session, cfg.MongoDB_DBName, collectionNames()); err != nil {
		log.Fatalf("Failed to ensure collections: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	db := global.MongoDB_Session.Database(cfg.MongoDB_DBName)
	models := map[string]interface{}{
		global.MongoDB_ColNames.Users:         usermodels.User{},
		global.MongoDB_ColNames.Videos:        videomodels.Video{},
		global.MongoDB_ColNames.Comments:      commentmodels.Comment{},
		global.MongoDB_ColNames.Likes:         likemodels.Like{},
		global.MongoDB_ColNames.Subscriptions: submodels.Subscription{},
	}
	for name, model := range models {
		if err := database.CreateIndexes(ctx, db.Collection(name), model); err != nil {
			log.Fatalf("Failed to create indexes for %s: %v", name, err)
		}
	}
	log.Info("Ensured collections and indexes")
}

// Hàm khởi tạo dịch vụ ký và xác thực JWT
func initTokens() {
	cfg := global.MongoDB_ServerConfig
	tokens, err := utility.NewTokenService(
		cfg.JwtSecret,
		cfg.JwtRefreshSecret,
		cfg.JwtIssuer,
		time.Duration(cfg.AccessTokenTTL)*time.Minute,
		time.Duration(cfg.RefreshTokenTTL)*time.Hour,
	)
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize token service: %v", err)
	}
	global.Tokens = tokens
	logger.GetAppLogger().Info("Initialized token service")
}

// Hàm khởi tạo kho lưu trữ MinIO và cầu nối upload
func initUploads() {
	store, err := upload.NewMinioStore(global.MongoDB_ServerConfig)
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize object storage: %v", err)
	}
	global.Uploads = upload.NewBridge(store, upload.FFProbe{})
	logger.GetAppLogger().Info("Initialized upload bridge")
}
