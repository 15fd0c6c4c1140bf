// Package feed dựng và chạy các aggregation pipeline trả về danh sách đã làm giàu
// (join hồ sơ, đếm like, phân trang) trong một lần truy vấn.
package feed

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ListQuery mô tả một feed có phân trang
type ListQuery struct {
	Match bson.M
	// Sort theo thứ tự khai báo, _id được thêm vào cuối để thứ tự ổn định
	Sort  bson.D
	Joins []JoinSpec
	// Stages chạy sau các join, trước khi phân trang
	Stages []bson.M
	Pagination
}

// BuildListPipeline dựng pipeline: match, sort, join, stages rồi $facet
// để lấy trang và tổng số trong cùng một snapshot.
func BuildListPipeline(q ListQuery) []bson.M {
	pipeline := []bson.M{}

	match := q.Match
	if match == nil {
		match = bson.M{}
	}
	pipeline = append(pipeline, bson.M{"$match": match})
	pipeline = append(pipeline, bson.M{"$sort": stableSort(q.Sort)})

	for _, j := range q.Joins {
		pipeline = append(pipeline, j.Stages()...)
	}
	pipeline = append(pipeline, q.Stages...)

	pipeline = append(pipeline, bson.M{"$facet": bson.M{
		"items": []bson.M{
			{"$skip": q.Skip()},
			{"$limit": q.Limit},
		},
		"totalCount": []bson.M{
			{"$count": "count"},
		},
	}})
	return pipeline
}

// BuildSinglePipeline dựng pipeline cho đúng một document
func BuildSinglePipeline(match bson.M, joins []JoinSpec, stages []bson.M) []bson.M {
	pipeline := []bson.M{
		{"$match": match},
		{"$limit": 1},
	}
	for _, j := range joins {
		pipeline = append(pipeline, j.Stages()...)
	}
	return append(pipeline, stages...)
}

// stableSort thêm _id làm khóa phụ, mặc định createdAt giảm dần
func stableSort(sort bson.D) bson.D {
	out := bson.D{}
	hasID := false
	for _, e := range sort {
		if e.Key == "_id" {
			hasID = true
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		out = append(out, bson.E{Key: "createdAt", Value: -1})
	}
	if !hasID {
		dir := out[len(out)-1].Value
		out = append(out, bson.E{Key: "_id", Value: dir})
	}
	return out
}
