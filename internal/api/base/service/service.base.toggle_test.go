package basesvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"vidtube/internal/common"
)

type mark struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Video   primitive.ObjectID `bson:"video"`
	LikedBy primitive.ObjectID `bson:"likedBy"`
}

func TestToggle(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	video, user := primitive.NewObjectID(), primitive.NewObjectID()
	filter := bson.M{"video": video, "likedBy": user}
	doc := mark{Video: video, LikedBy: user}

	mt.Run("✅ Chưa có thì chèn => true", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[mark](mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		on, err := svc.Toggle(ctx, filter, doc)
		require.NoError(mt, err)
		assert.True(mt, on)
	})

	mt.Run("✅ Đã có thì xóa => false", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[mark](mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "video", Value: video},
			{Key: "likedBy", Value: user},
		}}))

		on, err := svc.Toggle(ctx, filter, doc)
		require.NoError(mt, err)
		assert.False(mt, on)
	})

	mt.Run("✅ Chèn trùng khóa do request song song => true", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[mark](mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		on, err := svc.Toggle(ctx, filter, doc)
		require.NoError(mt, err)
		assert.True(mt, on)
	})

	mt.Run("❌ Lỗi database được trả về", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[mark](mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 501, Message: "boom"}))

		_, err := svc.Toggle(ctx, filter, doc)
		assert.Equal(mt, common.StatusInternalServerError, common.StatusOf(err))
	})
}
