// Package models - Subscription thuộc domain subscription.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	usermodels "vidtube/internal/api/user/models"
)

// Subscription: Subscriber đăng ký kênh Channel
type Subscription struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Subscriber primitive.ObjectID `json:"subscriber" bson:"subscriber" index:"compound:subscription_subscriber_channel_unique"`
	Channel    primitive.ObjectID `json:"channel" bson:"channel" index:"single:1;compound:subscription_subscriber_channel_unique"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// SubscriberView là một người đăng ký của kênh
type SubscriberView struct {
	ID         primitive.ObjectID  `json:"_id" bson:"_id"`
	Subscriber *usermodels.Profile `json:"subscriber" bson:"subscriber"`
	CreatedAt  int64               `json:"createdAt" bson:"createdAt"`
}

// ChannelView là một kênh mà người dùng đã đăng ký
type ChannelView struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id"`
	Channel   *usermodels.Profile `json:"channel" bson:"channel"`
	CreatedAt int64               `json:"createdAt" bson:"createdAt"`
}
