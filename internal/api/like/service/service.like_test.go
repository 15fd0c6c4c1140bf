package likesvc

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"vidtube/internal/api/feed"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/metrics"
)

var names = global.MongoDB_CollectionName{
	Users: "users", Videos: "videos", Comments: "comments", Likes: "likes", Subscriptions: "subscriptions",
}

func newService(mt *mtest.T) *LikeService {
	return NewLikeServiceWith(mt.Coll, mt.DB.Collection("videos"), mt.DB.Collection("comments"), names)
}

func found(id primitive.ObjectID) bson.D {
	return mtest.CreateCursorResponse(0, "db.videos", mtest.FirstBatch, bson.D{{Key: "_id", Value: id}})
}

func TestToggleVideoLike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("✅ Chưa thích thì thích", func(mt *mtest.T) {
		svc := newService(mt)
		videoID := primitive.NewObjectID()
		before := testutil.ToFloat64(metrics.ToggleTotal.WithLabelValues("video", "on"))
		mt.AddMockResponses(
			found(videoID),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		liked, err := svc.ToggleVideoLike(ctx, videoID, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, liked)
		assert.Equal(mt, before+1, testutil.ToFloat64(metrics.ToggleTotal.WithLabelValues("video", "on")))
	})

	mt.Run("✅ Đã thích thì bỏ thích", func(mt *mtest.T) {
		svc := newService(mt)
		videoID, user := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			found(videoID),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()}, {Key: "video", Value: videoID}, {Key: "likedBy", Value: user},
			}}),
		)

		liked, err := svc.ToggleVideoLike(ctx, videoID, user)
		require.NoError(mt, err)
		assert.False(mt, liked)
	})

	mt.Run("✅ Trùng khóa khi chèn nghĩa là đã thích", func(mt *mtest.T) {
		svc := newService(mt)
		videoID := primitive.NewObjectID()
		mt.AddMockResponses(
			found(videoID),
			mtest.CreateSuccessResponse(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		liked, err := svc.ToggleVideoLike(ctx, videoID, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, liked)
	})

	mt.Run("❌ Video không tồn tại", func(mt *mtest.T) {
		svc := newService(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.videos", mtest.FirstBatch))

		_, err := svc.ToggleVideoLike(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, common.ErrVideoNotFound)
	})
}

func commentOn(commentID, videoID primitive.ObjectID) bson.D {
	return mtest.CreateCursorResponse(0, "db.comments", mtest.FirstBatch,
		bson.D{{Key: "_id", Value: commentID}, {Key: "video", Value: videoID}})
}

func TestToggleCommentLike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("✅ Thích bình luận", func(mt *mtest.T) {
		svc := newService(mt)
		commentID, videoID, user := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(commentOn(commentID, videoID), found(videoID), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		liked, err := svc.ToggleCommentLike(ctx, commentID, user)
		require.NoError(mt, err)
		assert.True(mt, liked)

		mt.GetStartedEvent()
		videoFind := mt.GetStartedEvent()
		require.NotNil(mt, videoFind)
		assert.Equal(mt, "find", videoFind.CommandName)
		assert.Equal(mt, videoID, videoFind.Command.Lookup("filter", "_id").ObjectID())
		or, err := videoFind.Command.Lookup("filter", "$or").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, or, 2)
		assert.Equal(mt, user, or[1].Document().Lookup("owner").ObjectID())
	})

	mt.Run("❌ Bình luận không tồn tại", func(mt *mtest.T) {
		svc := newService(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.comments", mtest.FirstBatch))

		_, err := svc.ToggleCommentLike(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, common.ErrCommentNotFound)
	})

	mt.Run("❌ Bình luận dưới video chưa công khai của người khác", func(mt *mtest.T) {
		svc := newService(mt)
		commentID := primitive.NewObjectID()
		mt.AddMockResponses(commentOn(commentID, primitive.NewObjectID()), mtest.CreateCursorResponse(0, "db.videos", mtest.FirstBatch))

		_, err := svc.ToggleCommentLike(ctx, commentID, primitive.NewObjectID())
		assert.ErrorIs(mt, err, common.ErrCommentNotFound)
		assert.Equal(mt, common.StatusNotFound, common.StatusOf(err))
	})
}

func TestLikedVideosQuery(t *testing.T) {
	user := primitive.NewObjectID()
	q := LikedVideosQuery(names, user, feed.Pagination{Page: 1, Limit: 10})

	t.Run("✅ Chỉ lượt thích video của user", func(t *testing.T) {
		assert.Equal(t, user, q.Match["likedBy"])
		assert.Equal(t, bson.M{"$exists": true}, q.Match["video"])
	})

	t.Run("✅ Join video lồng hồ sơ chủ kênh", func(t *testing.T) {
		require.Len(t, q.Joins, 1)
		j := q.Joins[0]
		assert.Equal(t, "videos", j.From)
		assert.True(t, j.Single)
		require.NotEmpty(t, j.Pipeline)
		assert.Contains(t, j.Pipeline[0], "$match")
		lookup := j.Pipeline[1]["$lookup"].(bson.M)
		assert.Equal(t, "users", lookup["from"])
	})

	t.Run("✅ Bỏ video đã xóa rồi thay root", func(t *testing.T) {
		assert.Equal(t, bson.M{"$match": bson.M{"video": bson.M{"$ne": nil}}}, q.Stages[0])
		assert.Equal(t, bson.M{"$replaceRoot": bson.M{"newRoot": "$video"}}, q.Stages[1])
	})

	t.Run("✅ Pipeline kết thúc bằng $facet", func(t *testing.T) {
		p := feed.BuildListPipeline(q)
		assert.Contains(t, p[len(p)-1], "$facet")
	})
}

func TestLikedVideos(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("✅ Trả video đã thích", func(mt *mtest.T) {
		svc := newService(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.likes", mtest.FirstBatch, bson.D{
			{Key: "items", Value: bson.A{bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "title", Value: "Video hay"},
				{Key: "isLiked", Value: true},
				{Key: "likesCount", Value: int32(5)},
			}}},
			{Key: "totalCount", Value: bson.A{bson.D{{Key: "count", Value: int32(1)}}}},
		}))

		res, err := svc.LikedVideos(context.Background(), primitive.NewObjectID(), feed.Pagination{Page: 1, Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, res.Items, 1)
		assert.True(mt, res.Items[0].IsLiked)
		assert.Equal(mt, int64(5), res.Items[0].LikesCount)
	})

	mt.Run("✅ Aggregate lọc theo người thích, trang 2 và nhánh $count riêng", func(mt *mtest.T) {
		svc := newService(mt)
		user := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.likes", mtest.FirstBatch, bson.D{
			{Key: "items", Value: bson.A{}},
			{Key: "totalCount", Value: bson.A{bson.D{{Key: "count", Value: int32(12)}}}},
		}))

		_, err := svc.LikedVideos(context.Background(), user, feed.Pagination{Page: 2, Limit: 10})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "aggregate", evt.CommandName)
		stages, err := evt.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		require.NotEmpty(mt, stages)
		match := stages[0].Document().Lookup("$match").Document()
		assert.Equal(mt, user, match.Lookup("likedBy").ObjectID())
		assert.True(mt, match.Lookup("video", "$exists").Boolean())

		// video lồng trong $lookup chỉ lấy bản công khai hoặc của chính user
		var inner bson.Raw
		for _, st := range stages {
			if lookup, ok := st.Document().Lookup("$lookup").DocumentOK(); ok && lookup.Lookup("from").StringValue() == "videos" {
				inner = lookup
			}
		}
		require.NotNil(mt, inner)
		innerStages, err := inner.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		require.NotEmpty(mt, innerStages)
		or, err := innerStages[0].Document().Lookup("$match", "$or").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, or, 2)
		assert.True(mt, or[0].Document().Lookup("isPublished").Boolean())
		assert.Equal(mt, user, or[1].Document().Lookup("owner").ObjectID())

		facet := stages[len(stages)-1].Document().Lookup("$facet").Document()
		paged, err := facet.Lookup("items").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, paged, 2)
		assert.Equal(mt, int64(10), paged[0].Document().Lookup("$skip").AsInt64())
		assert.Equal(mt, int64(10), paged[1].Document().Lookup("$limit").AsInt64())
		count, err := facet.Lookup("totalCount").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, count, 1)
		assert.Equal(mt, "count", count[0].Document().Lookup("$count").StringValue())
	})
}
