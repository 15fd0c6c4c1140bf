// package basesvc cung cấp các service cơ bản cho việc tương tác với MongoDB
package basesvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/common"
	"vidtube/internal/utility"
)

// UpdateData gom các toán tử update của MongoDB
type UpdateData struct {
	Set      map[string]interface{} `bson:"$set,omitempty"`
	Unset    map[string]interface{} `bson:"$unset,omitempty"`
	AddToSet map[string]interface{} `bson:"$addToSet,omitempty"`
	Pull     map[string]interface{} `bson:"$pull,omitempty"`
}

// ====================================

// BaseServiceMongo định nghĩa interface chứa các phương thức cơ bản cho việc tương tác với MongoDB
type BaseServiceMongo[Model any] interface {
	// 1.1 Thao tác Insert
	InsertOne(ctx context.Context, data Model) (Model, error)

	// 1.2 Thao tác Find
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)

	// 1.3 Thao tác Update
	UpdateOne(ctx context.Context, filter interface{}, update UpdateData) (int64, error)

	// 1.4 Thao tác Delete
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)

	// 1.5 Thao tác Atomic
	FindOneAndUpdate(ctx context.Context, filter interface{}, update UpdateData) (Model, error)
	FindOneAndDelete(ctx context.Context, filter interface{}) (Model, error)

	// 1.6 Các thao tác khác
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)

	// 1.7 Thao tác có kiểm tra chủ sở hữu
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update UpdateData) (Model, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (Model, error)
}

// BaseServiceMongoImpl triển khai BaseServiceMongo trên một collection
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection MongoDB (dùng khi cần aggregate trực tiếp)
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// ====================================
// NHÓM 1: CÁC HÀM CHUẨN MONGODB DRIVER
// ====================================

// 1.1 Thao tác Insert
// -------------------

// InsertOne tạo mới một bản ghi. _id và timestamps được gán trước khi ghi
// nên bản ghi trả về chính là bản ghi đã lưu, không cần đọc lại.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	if id, ok := dataMap["_id"].(primitive.ObjectID); !ok || id.IsZero() {
		dataMap["_id"] = primitive.NewObjectID()
	}
	now := utility.CurrentTimeInMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now

	if _, err := s.collection.InsertOne(ctx, dataMap); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	created, err := utility.FromMap[T](dataMap)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	return *created, nil
}

// 1.2 Thao tác Find
// ----------------

// FindOne tìm một document theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	var result T

	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm document theo _id
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm tất cả bản ghi theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// 1.3 Thao tác Update
// ------------------

// UpdateOne cập nhật một document, trả về số document khớp bộ lọc
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update UpdateData) (int64, error) {
	res, err := s.collection.UpdateOne(ctx, filter, withUpdatedAt(update))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.MatchedCount, nil
}

// 1.4 Thao tác Delete
// ------------------

// DeleteOne xóa một document, trả về số document đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	res, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.DeletedCount, nil
}

// DeleteMany xóa nhiều document
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.DeletedCount, nil
}

// 1.5 Thao tác Atomic
// ------------------

// FindOneAndUpdate cập nhật và trả về document sau khi cập nhật.
// Không đọc trước: điều kiện lọc được đánh giá cùng lúc với thao tác ghi.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update UpdateData) (T, error) {
	var zero T
	var result T

	if err := s.collection.FindOneAndUpdate(ctx, filter, withUpdatedAt(update), findOneAndUpdateAfter()).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneAndDelete xóa và trả về document đã xóa
func (s *BaseServiceMongoImpl[T]) FindOneAndDelete(ctx context.Context, filter interface{}) (T, error) {
	var zero T
	var result T

	if err := s.collection.FindOneAndDelete(ctx, filter).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// 1.6 Các thao tác khác
// --------------------

// DocumentExists kiểm tra xem có document khớp bộ lọc không (chỉ đọc _id)
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := s.collection.FindOne(ctx, filter, opts).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, common.ConvertMongoError(err)
}

// withUpdatedAt luôn gán updatedAt khi có thao tác cập nhật
func withUpdatedAt(update UpdateData) UpdateData {
	if update.Set == nil {
		update.Set = make(map[string]interface{})
	}
	update.Set["updatedAt"] = utility.CurrentTimeInMilli()
	return update
}

func findOneAndUpdateAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
