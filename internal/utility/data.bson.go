package utility

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển struct thành map theo bson tag (tôn trọng omitempty)
func ToMap(s interface{}) (map[string]interface{}, error) {
	data, err := bson.Marshal(s)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := bson.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FromMap decode map (hoặc bson.M) ngược lại thành struct T
func FromMap[T any](m map[string]interface{}) (*T, error) {
	data, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}

	var out T
	if err := bson.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
