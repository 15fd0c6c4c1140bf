package utility

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
)

// ParseObjectID chuyển chuỗi thành ObjectID, sai định dạng trả về common.ErrInvalidID
func ParseObjectID(id string) (primitive.ObjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return primitive.NilObjectID, common.ErrInvalidID
	}
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidID
	}
	return objectId, nil
}
