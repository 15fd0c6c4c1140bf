// Package models - Comment thuộc domain comment.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	usermodels "vidtube/internal/api/user/models"
)

// Comment là bình luận trên một video
type Comment struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Video     primitive.ObjectID `json:"video" bson:"video" index:"compound:comment_video_created"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"single:1"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"compound:comment_video_created,order:-1"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// CommentView là bình luận kèm hồ sơ người viết và số liệu like
type CommentView struct {
	ID         primitive.ObjectID  `json:"_id" bson:"_id"`
	Content    string              `json:"content" bson:"content"`
	Video      primitive.ObjectID  `json:"video" bson:"video"`
	Owner      *usermodels.Profile `json:"owner" bson:"owner"`
	LikesCount int64               `json:"likesCount" bson:"likesCount"`
	IsLiked    bool                `json:"isLiked" bson:"isLiked"`
	CreatedAt  int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64               `json:"updatedAt" bson:"updatedAt"`
}
