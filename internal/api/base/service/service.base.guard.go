package basesvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/utility"
)

// OwnedFilter là bộ lọc {_id, owner}: chỉ khớp khi tài nguyên tồn tại VÀ thuộc về owner
func OwnedFilter(id, owner primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "owner": owner}
}

// UpdateOwned cập nhật tài nguyên của owner trong một thao tác duy nhất.
// Không tồn tại và không phải chủ sở hữu đều trả common.ErrNotOwnerOrNotFound (404).
func (s *BaseServiceMongoImpl[T]) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update UpdateData) (T, error) {
	result, err := s.FindOneAndUpdate(ctx, OwnedFilter(id, owner), update)
	if common.IsNotFound(err) {
		return result, common.ErrNotOwnerOrNotFound
	}
	return result, err
}

// DeleteOwned xóa tài nguyên của owner và trả về bản ghi đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (T, error) {
	result, err := s.FindOneAndDelete(ctx, OwnedFilter(id, owner))
	if common.IsNotFound(err) {
		return result, common.ErrNotOwnerOrNotFound
	}
	return result, err
}

// UpdateOwnedPipeline cập nhật bằng aggregation pipeline (ví dụ đảo cờ boolean) có kiểm tra chủ sở hữu
func (s *BaseServiceMongoImpl[T]) UpdateOwnedPipeline(ctx context.Context, id, owner primitive.ObjectID, pipeline []bson.M) (T, error) {
	var result T
	stages := append(append([]bson.M{}, pipeline...), bson.M{"$set": bson.M{"updatedAt": utility.CurrentTimeInMilli()}})
	err := s.collection.FindOneAndUpdate(ctx, OwnedFilter(id, owner), stages, findOneAndUpdateAfter()).Decode(&result)
	if err != nil {
		if common.IsNotFound(common.ConvertMongoError(err)) {
			return result, common.ErrNotOwnerOrNotFound
		}
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}
