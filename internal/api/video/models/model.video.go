// Package models - Video thuộc domain video.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	usermodels "vidtube/internal/api/user/models"
)

// Video là một video đã tải lên
type Video struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner" index:"single:1"`
	VideoFile   string             `json:"videoFile" bson:"videoFile"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Duration    float64            `json:"duration" bson:"duration"`
	IsPublished bool               `json:"isPublished" bson:"isPublished" index:"single:1"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// VideoView là video đã được làm giàu: hồ sơ chủ sở hữu và số liệu like
type VideoView struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id"`
	Owner       *usermodels.Profile `json:"owner" bson:"owner"`
	VideoFile   string              `json:"videoFile" bson:"videoFile"`
	Thumbnail   string              `json:"thumbnail" bson:"thumbnail"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description" bson:"description"`
	Duration    float64             `json:"duration" bson:"duration"`
	IsPublished bool                `json:"isPublished" bson:"isPublished"`
	LikesCount  int64               `json:"likesCount" bson:"likesCount"`
	IsLiked     bool                `json:"isLiked" bson:"isLiked"`
	CreatedAt   int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64               `json:"updatedAt" bson:"updatedAt"`
}
