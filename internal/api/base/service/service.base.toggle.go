package basesvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"vidtube/internal/common"
)

// Toggle xóa document khớp filter nếu có (trả false), ngược lại chèn doc (trả true).
// Xóa bằng FindOneAndDelete nên hai request đồng thời không cùng xóa một bản ghi.
// Chèn bị trùng khóa nghĩa là request khác vừa chèn cùng cặp: coi như đã bật.
func (s *BaseServiceMongoImpl[T]) Toggle(ctx context.Context, filter bson.M, doc T) (bool, error) {
	_, err := s.FindOneAndDelete(ctx, filter)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, err
	}

	if _, err := s.InsertOne(ctx, doc); err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
