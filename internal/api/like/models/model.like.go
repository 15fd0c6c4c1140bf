// Package models - Like thuộc domain like.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like là lượt thích của một người dùng cho đúng một video hoặc một bình luận.
// Hai unique index có partialFilter đảm bảo mỗi cặp (đối tượng, người dùng) chỉ có một bản ghi.
type Like struct {
	ID        primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Video     *primitive.ObjectID `json:"video,omitempty" bson:"video,omitempty" index:"compound:like_video_user_unique,partial:video"`
	Comment   *primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty" index:"compound:like_comment_user_unique,partial:comment"`
	LikedBy   primitive.ObjectID  `json:"likedBy" bson:"likedBy" index:"single:1;compound:like_video_user_unique;compound:like_comment_user_unique"`
	CreatedAt int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64               `json:"updatedAt" bson:"updatedAt"`
}
