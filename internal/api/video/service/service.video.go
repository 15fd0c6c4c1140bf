// Package videosvc - service video: feed, xem, đăng, sửa, xóa, bật/tắt công khai.
package videosvc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/api/feed"
	videodto "vidtube/internal/api/video/dto"
	"vidtube/internal/api/video/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/logger"
)

// sortFields là các trường được phép sắp xếp feed
var sortFields = map[string]bool{
	"createdAt": true,
	"duration":  true,
	"title":     true,
}

// VideoService là cấu trúc chứa các phương thức liên quan đến video
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[models.Video]
	comments *mongo.Collection
	likes    *mongo.Collection
	users    *mongo.Collection
	names    global.MongoDB_CollectionName
}

// NewVideoService tạo mới VideoService từ registry collection
func NewVideoService() (*VideoService, error) {
	colls := make([]*mongo.Collection, 0, 4)
	for _, name := range []string{
		global.MongoDB_ColNames.Videos,
		global.MongoDB_ColNames.Comments,
		global.MongoDB_ColNames.Likes,
		global.MongoDB_ColNames.Users,
	} {
		coll, exist := global.RegistryCollections.Get(name)
		if !exist {
			return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
		}
		colls = append(colls, coll)
	}
	return NewVideoServiceWith(colls[0], colls[1], colls[2], colls[3], global.MongoDB_ColNames), nil
}

// NewVideoServiceWith tạo VideoService với các collection cho trước
func NewVideoServiceWith(videos, comments, likes, users *mongo.Collection, names global.MongoDB_CollectionName) *VideoService {
	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Video](videos),
		comments:             comments,
		likes:                likes,
		users:                users,
		names:                names,
	}
}

// FeedSort chuyển sortBy/sortType thành tiêu chí sắp xếp, giá trị lạ dùng mặc định createdAt giảm dần
func FeedSort(sortBy, sortType string) bson.D {
	if !sortFields[sortBy] {
		sortBy = "createdAt"
	}
	dir := -1
	if strings.EqualFold(sortType, "asc") {
		dir = 1
	}
	return bson.D{{Key: sortBy, Value: dir}}
}

// FeedMatch dựng bộ lọc feed: chỉ video công khai, lọc theo chủ kênh và chuỗi tìm kiếm
func FeedMatch(q *videodto.FeedQuery) bson.M {
	match := bson.M{"isPublished": true}
	if q.Owner != nil {
		match["owner"] = *q.Owner
	}
	if text := strings.TrimSpace(q.Query); text != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
		match["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return match
}

// Feed trả về trang video công khai kèm hồ sơ chủ kênh và số liệu like của viewer
func (s *VideoService) Feed(ctx context.Context, q *videodto.FeedQuery, viewer *primitive.ObjectID) (*basemodels.PaginateResult[models.VideoView], error) {
	return feed.List[models.VideoView](ctx, s.Collection(), "videos", feed.ListQuery{
		Match:      FeedMatch(q),
		Sort:       FeedSort(q.SortBy, q.SortType),
		Joins:      []feed.JoinSpec{feed.OwnerJoin(s.names.Users)},
		Stages:     feed.LikeStats(s.names.Likes, "video", viewer),
		Pagination: q.Pagination,
	})
}

// GetByID trả về video đã làm giàu. Video chưa công khai chỉ chủ sở hữu xem được.
// Lượt xem thành công được thêm vào lịch sử xem của viewer.
func (s *VideoService) GetByID(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*models.VideoView, error) {
	view, err := s.enriched(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if viewer != nil {
		s.recordView(ctx, id, *viewer)
	}
	return view, nil
}

func (s *VideoService) enriched(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*models.VideoView, error) {
	match := feed.VisibleVideo(viewer)
	match["_id"] = id

	view, err := feed.FindOneEnriched[models.VideoView](ctx, s.Collection(), "video", match,
		[]feed.JoinSpec{feed.OwnerJoin(s.names.Users)},
		feed.LikeStats(s.names.Likes, "video", viewer))
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrVideoNotFound
		}
		return nil, err
	}
	return &view, nil
}

// recordView thêm video vào watchHistory, lỗi chỉ được ghi log
func (s *VideoService) recordView(ctx context.Context, id, viewer primitive.ObjectID) {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": viewer},
		bson.M{"$addToSet": bson.M{"watchHistory": id}})
	if err != nil {
		logger.WithModule("video").WithError(err).WithFields(map[string]interface{}{
			"video_id": id.Hex(),
			"user_id":  viewer.Hex(),
		}).Warn("Không cập nhật được lịch sử xem")
	}
}

// Publish lưu video mới rồi trả về bản đã làm giàu.
// Không đọc lại được thì xóa bản ghi vừa chèn và báo lỗi.
func (s *VideoService) Publish(ctx context.Context, owner primitive.ObjectID, input *videodto.PublishVideoInput, videoURL, thumbnailURL string, duration float64) (*models.VideoView, error) {
	video, err := s.InsertOne(ctx, models.Video{
		Owner:       owner,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Duration:    duration,
		IsPublished: true,
	})
	if err != nil {
		return nil, err
	}

	view, err := s.enriched(ctx, video.ID, &owner)
	if err != nil {
		if _, delErr := s.DeleteOne(ctx, bson.M{"_id": video.ID}); delErr != nil {
			logger.WithModule("video").WithError(delErr).WithField("video_id", video.ID.Hex()).
				Error("Không xóa được video sau khi đọc lại thất bại")
		}
		return nil, err
	}
	return view, nil
}

// UpdateDetails sửa tiêu đề, mô tả và thumbnail (nếu có) của video thuộc owner
func (s *VideoService) UpdateDetails(ctx context.Context, id, owner primitive.ObjectID, input *videodto.UpdateVideoInput, thumbnailURL string) (*models.Video, error) {
	set := map[string]interface{}{}
	if title := strings.TrimSpace(input.Title); title != "" {
		set["title"] = title
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		set["description"] = desc
	}
	if thumbnailURL != "" {
		set["thumbnail"] = thumbnailURL
	}
	if len(set) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Cần ít nhất một trường để cập nhật", common.StatusBadRequest, nil)
	}

	video, err := s.UpdateOwned(ctx, id, owner, basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Delete xóa video thuộc owner cùng bình luận và lượt thích liên quan.
// Dọn dữ liệu liên quan thất bại chỉ được ghi log.
func (s *VideoService) Delete(ctx context.Context, id, owner primitive.ObjectID) (*models.Video, error) {
	video, err := s.DeleteOwned(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	s.cascade(ctx, id)
	return &video, nil
}

func (s *VideoService) cascade(ctx context.Context, videoID primitive.ObjectID) {
	log := logger.WithModule("video").WithField("video_id", videoID.Hex())

	commentIDs, err := s.commentIDs(ctx, videoID)
	if err != nil {
		log.WithError(err).Warn("Không đọc được bình luận của video đã xóa")
	}
	if len(commentIDs) > 0 {
		if _, err := s.likes.DeleteMany(ctx, bson.M{"comment": bson.M{"$in": commentIDs}}); err != nil {
			log.WithError(err).Warn("Không xóa được lượt thích bình luận")
		}
	}
	if _, err := s.comments.DeleteMany(ctx, bson.M{"video": videoID}); err != nil {
		log.WithError(err).Warn("Không xóa được bình luận")
	}
	if _, err := s.likes.DeleteMany(ctx, bson.M{"video": videoID}); err != nil {
		log.WithError(err).Warn("Không xóa được lượt thích video")
	}
}

func (s *VideoService) commentIDs(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := s.comments.Distinct(ctx, "_id", bson.M{"video": videoID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// TogglePublish đảo isPublished trong một thao tác cập nhật
func (s *VideoService) TogglePublish(ctx context.Context, id, owner primitive.ObjectID) (*models.Video, error) {
	video, err := s.UpdateOwnedPipeline(ctx, id, owner, []bson.M{
		{"$set": bson.M{"isPublished": bson.M{"$not": bson.A{"$isPublished"}}}},
	})
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Exists kiểm tra video tồn tại và viewer xem được
func (s *VideoService) Exists(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (bool, error) {
	filter := feed.VisibleVideo(viewer)
	filter["_id"] = id
	return s.DocumentExists(ctx, filter)
}
