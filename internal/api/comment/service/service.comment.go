// Package commentsvc - service bình luận trên video.
package commentsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	commentdto "vidtube/internal/api/comment/dto"
	"vidtube/internal/api/comment/models"
	"vidtube/internal/api/feed"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/logger"
)

// CommentService là cấu trúc chứa các phương thức liên quan đến bình luận
type CommentService struct {
	*basesvc.BaseServiceMongoImpl[models.Comment]
	videos *mongo.Collection
	likes  *mongo.Collection
	names  global.MongoDB_CollectionName
}

// NewCommentService tạo mới CommentService từ registry collection
func NewCommentService() (*CommentService, error) {
	comments, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Comments)
	if !exist {
		return nil, fmt.Errorf("failed to get comments collection: %v", common.ErrNotFound)
	}
	videos, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %v", common.ErrNotFound)
	}
	likes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %v", common.ErrNotFound)
	}
	return NewCommentServiceWith(comments, videos, likes, global.MongoDB_ColNames), nil
}

// NewCommentServiceWith tạo CommentService với các collection cho trước
func NewCommentServiceWith(comments, videos, likes *mongo.Collection, names global.MongoDB_CollectionName) *CommentService {
	return &CommentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Comment](comments),
		videos:               videos,
		likes:                likes,
		names:                names,
	}
}

func (s *CommentService) joins() []feed.JoinSpec {
	return []feed.JoinSpec{feed.OwnerJoin(s.names.Users)}
}

// List trả về bình luận của video, mới nhất trước. Không có bình luận nào trả common.ErrNoComments.
func (s *CommentService) List(ctx context.Context, videoID primitive.ObjectID, viewer *primitive.ObjectID, page feed.Pagination) (*basemodels.PaginateResult[models.CommentView], error) {
	if err := s.ensureVideoVisible(ctx, videoID, viewer); err != nil {
		return nil, err
	}
	result, err := feed.List[models.CommentView](ctx, s.Collection(), "comments", feed.ListQuery{
		Match:      bson.M{"video": videoID},
		Sort:       bson.D{{Key: "createdAt", Value: -1}},
		Joins:      s.joins(),
		Stages:     feed.LikeStats(s.names.Likes, "comment", viewer),
		Pagination: page,
	})
	if err != nil {
		return nil, err
	}
	if result.TotalCount == 0 {
		return nil, common.ErrNoComments
	}
	return result, nil
}

// ensureVideoVisible trả common.ErrVideoNotFound khi video không tồn tại hoặc viewer không được xem
func (s *CommentService) ensureVideoVisible(ctx context.Context, videoID primitive.ObjectID, viewer *primitive.ObjectID) error {
	err := s.videos.FindOne(ctx, feed.VisibleVideoByID(videoID, viewer),
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.ErrVideoNotFound
		}
		return common.ConvertMongoError(err)
	}
	return nil
}

// Add thêm bình luận vào video mà owner xem được rồi trả về bản đã làm giàu.
// Không đọc lại được thì xóa bình luận vừa chèn.
func (s *CommentService) Add(ctx context.Context, owner primitive.ObjectID, input *commentdto.AddCommentInput) (*models.CommentView, error) {
	videoID, err := primitive.ObjectIDFromHex(input.VideoID)
	if err != nil {
		return nil, common.ErrInvalidID
	}

	if err := s.ensureVideoVisible(ctx, videoID, &owner); err != nil {
		return nil, err
	}

	comment, err := s.InsertOne(ctx, models.Comment{
		Content: strings.TrimSpace(input.Content),
		Video:   videoID,
		Owner:   owner,
	})
	if err != nil {
		return nil, err
	}

	view, err := s.enriched(ctx, comment.ID, &owner)
	if err != nil {
		if _, delErr := s.DeleteOne(ctx, bson.M{"_id": comment.ID}); delErr != nil {
			logger.WithModule("comment").WithError(delErr).WithField("comment_id", comment.ID.Hex()).
				Error("Không xóa được bình luận sau khi đọc lại thất bại")
		}
		return nil, err
	}
	return view, nil
}

func (s *CommentService) enriched(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*models.CommentView, error) {
	view, err := feed.FindOneEnriched[models.CommentView](ctx, s.Collection(), "comment",
		bson.M{"_id": id}, s.joins(), feed.LikeStats(s.names.Likes, "comment", viewer))
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrCommentNotFound
		}
		return nil, err
	}
	return &view, nil
}

// Update sửa nội dung bình luận của owner
func (s *CommentService) Update(ctx context.Context, id, owner primitive.ObjectID, input *commentdto.UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.UpdateOwned(ctx, id, owner, basesvc.UpdateData{
		Set: map[string]interface{}{"content": strings.TrimSpace(input.Content)},
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete xóa bình luận của owner và các lượt thích của nó
func (s *CommentService) Delete(ctx context.Context, id, owner primitive.ObjectID) (*models.Comment, error) {
	comment, err := s.DeleteOwned(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if _, err := s.likes.DeleteMany(ctx, bson.M{"comment": id}); err != nil {
		logger.WithModule("comment").WithError(err).WithField("comment_id", id.Hex()).
			Warn("Không xóa được lượt thích của bình luận")
	}
	return &comment, nil
}

// Exists kiểm tra bình luận tồn tại
func (s *CommentService) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.DocumentExists(ctx, bson.M{"_id": id})
}
