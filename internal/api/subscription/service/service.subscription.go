// Package subsvc - service đăng ký kênh.
package subsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/api/feed"
	"vidtube/internal/api/subscription/models"
	usermodels "vidtube/internal/api/user/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/metrics"
)

// SubscriptionService là cấu trúc chứa các phương thức liên quan đến đăng ký kênh
type SubscriptionService struct {
	*basesvc.BaseServiceMongoImpl[models.Subscription]
	users *basesvc.BaseServiceMongoImpl[usermodels.User]
	names global.MongoDB_CollectionName
}

// NewSubscriptionService tạo mới SubscriptionService từ registry collection
func NewSubscriptionService() (*SubscriptionService, error) {
	subs, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subscriptions)
	if !exist {
		return nil, fmt.Errorf("failed to get subscriptions collection: %v", common.ErrNotFound)
	}
	users, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return NewSubscriptionServiceWith(subs, users, global.MongoDB_ColNames), nil
}

// NewSubscriptionServiceWith tạo SubscriptionService với các collection cho trước
func NewSubscriptionServiceWith(subs, users *mongo.Collection, names global.MongoDB_CollectionName) *SubscriptionService {
	return &SubscriptionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Subscription](subs),
		users:                basesvc.NewBaseServiceMongo[usermodels.User](users),
		names:                names,
	}
}

// Toggle đăng ký hoặc hủy đăng ký kênh, trả về trạng thái sau khi đảo
func (s *SubscriptionService) Toggle(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error) {
	if channelID == subscriberID {
		return false, common.ErrSelfSubscribe
	}
	found, err := s.users.DocumentExists(ctx, bson.M{"_id": channelID})
	if err != nil {
		return false, err
	}
	if !found {
		return false, common.ErrChannelNotFound
	}

	subscribed, err := s.BaseServiceMongoImpl.Toggle(ctx,
		bson.M{"channel": channelID, "subscriber": subscriberID},
		models.Subscription{Channel: channelID, Subscriber: subscriberID})
	if err != nil {
		return false, err
	}
	metrics.RecordToggle("subscription", subscribed)
	return subscribed, nil
}

// Subscribers trả về những người đăng ký kênh, mới nhất trước
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID primitive.ObjectID, page feed.Pagination) (*basemodels.PaginateResult[models.SubscriberView], error) {
	return feed.List[models.SubscriberView](ctx, s.Collection(), "channel_subscribers", feed.ListQuery{
		Match:      bson.M{"channel": channelID},
		Sort:       bson.D{{Key: "createdAt", Value: -1}},
		Joins:      []feed.JoinSpec{feed.ProfileJoin(s.names.Users, "subscriber", "subscriber")},
		Stages:     []bson.M{{"$project": bson.M{"subscriber": 1, "createdAt": 1}}},
		Pagination: page,
	})
}

// SubscribedChannels trả về các kênh mà subscriber đã đăng ký
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID, page feed.Pagination) (*basemodels.PaginateResult[models.ChannelView], error) {
	return feed.List[models.ChannelView](ctx, s.Collection(), "subscribed_channels", feed.ListQuery{
		Match:      bson.M{"subscriber": subscriberID},
		Sort:       bson.D{{Key: "createdAt", Value: -1}},
		Joins:      []feed.JoinSpec{feed.ProfileJoin(s.names.Users, "channel", "channel")},
		Stages:     []bson.M{{"$project": bson.M{"channel": 1, "createdAt": 1}}},
		Pagination: page,
	})
}
