package feed

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileFields là các trường hồ sơ công khai được nhúng vào feed.
// _id giữ lại vì owner/subscriber/channel bị thay bằng hồ sơ, client cần id để mở kênh hay đăng ký.
var ProfileFields = []string{"_id", "fullName", "username", "avatar", "coverImage"}

// JoinSpec mô tả một lần $lookup sang collection khác
type JoinSpec struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	// Project giới hạn các trường lấy từ document được join
	Project []string
	// Single thay mảng kết quả bằng phần tử đầu tiên (hoặc null)
	Single bool
	// Pipeline là các stage bổ sung chạy bên trong $lookup (ví dụ join lồng)
	Pipeline []bson.M
}

// Stages chuyển JoinSpec thành các stage aggregation
func (j JoinSpec) Stages() []bson.M {
	lookup := bson.M{
		"from":         j.From,
		"localField":   j.LocalField,
		"foreignField": j.ForeignField,
		"as":           j.As,
	}

	inner := make([]bson.M, 0, len(j.Pipeline)+1)
	if len(j.Project) > 0 {
		inner = append(inner, bson.M{"$project": projection(j.Project)})
	}
	inner = append(inner, j.Pipeline...)
	if len(inner) > 0 {
		lookup["pipeline"] = inner
	}

	stages := []bson.M{{"$lookup": lookup}}
	if j.Single {
		stages = append(stages, bson.M{"$addFields": bson.M{
			j.As: bson.M{"$ifNull": bson.A{bson.M{"$first": "$" + j.As}, nil}},
		}})
	}
	return stages
}

// ProfileJoin join hồ sơ công khai của người dùng từ localField vào as
func ProfileJoin(users, localField, as string) JoinSpec {
	return JoinSpec{
		From:         users,
		LocalField:   localField,
		ForeignField: "_id",
		As:           as,
		Project:      ProfileFields,
		Single:       true,
	}
}

// OwnerJoin là ProfileJoin phổ biến nhất: trường owner thay bằng hồ sơ chủ sở hữu
func OwnerJoin(users string) JoinSpec {
	return ProfileJoin(users, "owner", "owner")
}

// LikeStats thêm likesCount và isLiked cho từng document.
// foreignField là trường trong likes trỏ về document (video hoặc comment).
// viewer nil nghĩa là khách, isLiked luôn false.
func LikeStats(likes, foreignField string, viewer *primitive.ObjectID) []bson.M {
	var isLiked interface{} = false
	if viewer != nil && !viewer.IsZero() {
		isLiked = bson.M{"$in": bson.A{*viewer, "$likes.likedBy"}}
	}

	return []bson.M{
		{"$lookup": bson.M{
			"from":         likes,
			"localField":   "_id",
			"foreignField": foreignField,
			"as":           "likes",
			"pipeline":     []bson.M{{"$project": bson.M{"likedBy": 1}}},
		}},
		{"$addFields": bson.M{
			"likesCount": bson.M{"$size": "$likes"},
			"isLiked":    isLiked,
		}},
		{"$project": bson.M{"likes": 0}},
	}
}

func projection(fields []string) bson.M {
	p := bson.M{}
	for _, f := range fields {
		p[f] = 1
	}
	return p
}

// VisibleVideo lọc video viewer được xem: video công khai, hoặc video của chính viewer.
// viewer nil chỉ thấy video công khai.
func VisibleVideo(viewer *primitive.ObjectID) bson.M {
	if viewer == nil {
		return bson.M{"isPublished": true}
	}
	return bson.M{"$or": bson.A{bson.M{"isPublished": true}, bson.M{"owner": *viewer}}}
}

// VisibleVideoByID là VisibleVideo kèm điều kiện _id
func VisibleVideoByID(id primitive.ObjectID, viewer *primitive.ObjectID) bson.M {
	filter := VisibleVideo(viewer)
	filter["_id"] = id
	return filter
}
