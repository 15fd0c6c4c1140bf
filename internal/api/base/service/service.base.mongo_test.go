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

type clip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       primitive.ObjectID `bson:"owner"`
	Title       string             `bson:"title"`
	IsPublished bool               `bson:"isPublished"`
	CreatedAt   int64              `bson:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt"`
}

func TestBaseServiceMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("✅ InsertOne gán _id và timestamps", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := svc.InsertOne(ctx, clip{Owner: primitive.NewObjectID(), Title: "intro"})
		require.NoError(t, err)
		assert.False(t, created.ID.IsZero())
		assert.NotZero(t, created.CreatedAt)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
		assert.Equal(t, "intro", created.Title)
	})

	mt.Run("❌ InsertOne trùng khóa trả Conflict", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := svc.InsertOne(ctx, clip{Title: "dup"})
		assert.Equal(t, common.StatusConflict, common.StatusOf(err))
	})

	mt.Run("✅ FindOneById không có document trả NotFound", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.coll", mtest.FirstBatch))

		_, err := svc.FindOneById(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	mt.Run("✅ DocumentExists", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.coll", mtest.FirstBatch, bson.D{{Key: "_id", Value: id}}),
			mtest.CreateCursorResponse(0, "db.coll", mtest.FirstBatch),
		)

		ok, err := svc.DocumentExists(ctx, bson.M{"_id": id})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.DocumentExists(ctx, bson.M{"_id": primitive.NewObjectID()})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestOwnershipGuard(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("✅ Chủ sở hữu cập nhật được", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "owner", Value: owner},
			{Key: "title", Value: "mới"},
		}}))

		updated, err := svc.UpdateOwned(ctx, id, owner, UpdateData{Set: map[string]interface{}{"title": "mới"}})
		require.NoError(t, err)
		assert.Equal(t, "mới", updated.Title)
	})

	mt.Run("❌ Không phải chủ sở hữu trả 404 và không có thay đổi", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := svc.UpdateOwned(ctx, primitive.NewObjectID(), primitive.NewObjectID(), UpdateData{Set: map[string]interface{}{"title": "hack"}})
		assert.ErrorIs(t, err, common.ErrNotOwnerOrNotFound)
		assert.Equal(t, common.StatusNotFound, common.StatusOf(err))
	})

	mt.Run("❌ DeleteOwned với người khác trả 404", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := svc.DeleteOwned(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(t, err, common.ErrNotOwnerOrNotFound)
	})

	mt.Run("✅ Đảo trạng thái publish bằng pipeline", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[clip](mt.Coll)
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "owner", Value: owner},
			{Key: "isPublished", Value: false},
		}}))

		res, err := svc.UpdateOwnedPipeline(ctx, id, owner, []bson.M{{"$set": bson.M{"isPublished": bson.M{"$not": "$isPublished"}}}})
		require.NoError(t, err)
		assert.False(t, res.IsPublished)
	})
}

func TestOwnedFilter(t *testing.T) {
	id, owner := primitive.NewObjectID(), primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": id, "owner": owner}, OwnedFilter(id, owner))
}
