package main

import (
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/global"
	"vidtube/internal/logger"
)

// InitRegistry mở và đăng ký các collection vào registry
func InitRegistry() {
	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	if err := InitCollections(db, collectionNames()); err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize collections: %v", err)
	}
	logger.GetAppLogger().Info("Initialized collection registry")
}

// InitCollections đăng ký các collection của db theo tên
func InitCollections(db *mongo.Database, names []string) error {
	log := logger.GetAppLogger()
	for _, name := range names {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			log.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			log.Infof("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered", name)
		}
	}
	return nil
}
