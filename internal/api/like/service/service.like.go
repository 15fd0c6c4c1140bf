// Package likesvc - service lượt thích cho video và bình luận.
package likesvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/api/feed"
	"vidtube/internal/api/like/models"
	videomodels "vidtube/internal/api/video/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/metrics"
)

// LikeService là cấu trúc chứa các phương thức liên quan đến lượt thích
type LikeService struct {
	*basesvc.BaseServiceMongoImpl[models.Like]
	videos   *mongo.Collection
	comments *mongo.Collection
	names    global.MongoDB_CollectionName
}

// NewLikeService tạo mới LikeService từ registry collection
func NewLikeService() (*LikeService, error) {
	likes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %v", common.ErrNotFound)
	}
	videos, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %v", common.ErrNotFound)
	}
	comments, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Comments)
	if !exist {
		return nil, fmt.Errorf("failed to get comments collection: %v", common.ErrNotFound)
	}
	return NewLikeServiceWith(likes, videos, comments, global.MongoDB_ColNames), nil
}

// NewLikeServiceWith tạo LikeService với các collection cho trước
func NewLikeServiceWith(likes, videos, comments *mongo.Collection, names global.MongoDB_CollectionName) *LikeService {
	return &LikeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Like](likes),
		videos:               videos,
		comments:             comments,
		names:                names,
	}
}

func exists(ctx context.Context, coll *mongo.Collection, filter bson.M) (bool, error) {
	err := coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, common.ConvertMongoError(err)
}

// ToggleVideoLike bật/tắt lượt thích video của user, trả về trạng thái sau khi đảo
func (s *LikeService) ToggleVideoLike(ctx context.Context, videoID, userID primitive.ObjectID) (bool, error) {
	found, err := exists(ctx, s.videos, feed.VisibleVideoByID(videoID, &userID))
	if err != nil {
		return false, err
	}
	if !found {
		return false, common.ErrVideoNotFound
	}

	liked, err := s.Toggle(ctx,
		bson.M{"video": videoID, "likedBy": userID},
		models.Like{Video: &videoID, LikedBy: userID})
	if err != nil {
		return false, err
	}
	metrics.RecordToggle("video", liked)
	return liked, nil
}

// ToggleCommentLike bật/tắt lượt thích bình luận của user
func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, userID primitive.ObjectID) (bool, error) {
	var comment struct {
		Video primitive.ObjectID `bson:"video"`
	}
	err := s.comments.FindOne(ctx, bson.M{"_id": commentID},
		options.FindOne().SetProjection(bson.M{"video": 1})).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, common.ErrCommentNotFound
		}
		return false, common.ConvertMongoError(err)
	}
	// bình luận dưới video không xem được coi như không tồn tại
	found, err := exists(ctx, s.videos, feed.VisibleVideoByID(comment.Video, &userID))
	if err != nil {
		return false, err
	}
	if !found {
		return false, common.ErrCommentNotFound
	}

	liked, err := s.Toggle(ctx,
		bson.M{"comment": commentID, "likedBy": userID},
		models.Like{Comment: &commentID, LikedBy: userID})
	if err != nil {
		return false, err
	}
	metrics.RecordToggle("comment", liked)
	return liked, nil
}

// LikedVideosQuery dựng truy vấn feed video đã thích: thích gần nhất trước,
// bỏ lượt thích của video đã xóa hoặc video người khác chưa công khai
func LikedVideosQuery(names global.MongoDB_CollectionName, userID primitive.ObjectID, page feed.Pagination) feed.ListQuery {
	inner := []bson.M{{"$match": feed.VisibleVideo(&userID)}}
	inner = append(inner, feed.OwnerJoin(names.Users).Stages()...)

	stages := []bson.M{
		{"$match": bson.M{"video": bson.M{"$ne": nil}}},
		{"$replaceRoot": bson.M{"newRoot": "$video"}},
	}
	stages = append(stages, feed.LikeStats(names.Likes, "video", &userID)...)

	return feed.ListQuery{
		Match: bson.M{"likedBy": userID, "video": bson.M{"$exists": true}},
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Joins: []feed.JoinSpec{{
			From:         names.Videos,
			LocalField:   "video",
			ForeignField: "_id",
			As:           "video",
			Single:       true,
			Pipeline:     inner,
		}},
		Stages:     stages,
		Pagination: page,
	}
}

// LikedVideos trả về các video user đã thích
func (s *LikeService) LikedVideos(ctx context.Context, userID primitive.ObjectID, page feed.Pagination) (*basemodels.PaginateResult[videomodels.VideoView], error) {
	return feed.List[videomodels.VideoView](ctx, s.Collection(), "liked_videos", LikedVideosQuery(s.names, userID, page))
}
