package videodto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/api/feed"
)

// PublishVideoInput là các trường văn bản của form đăng video (videoFile, thumbnail là tệp)
type PublishVideoInput struct {
	Title       string `json:"title" form:"title" validate:"notblank,no_xss,max=200"`
	Description string `json:"description" form:"description" validate:"notblank,no_xss,max=5000"`
}

// UpdateVideoInput cập nhật chi tiết video, trường rỗng được giữ nguyên
type UpdateVideoInput struct {
	Title       string `json:"title" form:"title" validate:"omitempty,notblank,no_xss,max=200"`
	Description string `json:"description" form:"description" validate:"omitempty,notblank,no_xss,max=5000"`
}

// FeedQuery là tham số của feed video
type FeedQuery struct {
	Query    string
	SortBy   string
	SortType string
	Owner    *primitive.ObjectID
	feed.Pagination
}
