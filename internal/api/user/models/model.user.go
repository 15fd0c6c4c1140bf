// Package models - User thuộc domain user.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User là tài khoản người dùng, đồng thời là một kênh
type User struct {
	ID           primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username" index:"unique"`
	Email        string               `json:"email" bson:"email" index:"unique"`
	FullName     string               `json:"fullName" bson:"fullName"`
	Avatar       string               `json:"avatar" bson:"avatar"`
	CoverImage   string               `json:"coverImage" bson:"coverImage"`
	Password     string               `json:"-" bson:"password"`
	RefreshToken string               `json:"-" bson:"refreshToken,omitempty"`
	WatchHistory []primitive.ObjectID `json:"watchHistory" bson:"watchHistory,omitempty"`
	CreatedAt    int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                `json:"updatedAt" bson:"updatedAt"`
}

// Profile là phần hồ sơ công khai được nhúng vào video, bình luận, đăng ký
type Profile struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Username   string             `json:"username" bson:"username"`
	FullName   string             `json:"fullName" bson:"fullName"`
	Avatar     string             `json:"avatar" bson:"avatar"`
	CoverImage string             `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
}

// ChannelProfile là trang kênh kèm số liệu đăng ký tính tại thời điểm đọc
type ChannelProfile struct {
	ID                        primitive.ObjectID `json:"_id" bson:"_id"`
	Username                  string             `json:"username" bson:"username"`
	FullName                  string             `json:"fullName" bson:"fullName"`
	Email                     string             `json:"email" bson:"email"`
	Avatar                    string             `json:"avatar" bson:"avatar"`
	CoverImage                string             `json:"coverImage" bson:"coverImage"`
	SubscribersCount          int64              `json:"subscribersCount" bson:"subscribersCount"`
	ChannelsSubscribedToCount int64              `json:"channelsSubscribedToCount" bson:"channelsSubscribedToCount"`
	IsSubscribed              bool               `json:"isSubscribed" bson:"isSubscribed"`
	CreatedAt                 int64              `json:"createdAt" bson:"createdAt"`
}
