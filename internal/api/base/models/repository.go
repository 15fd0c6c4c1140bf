// Package models chứa các kiểu dùng chung cho layer repository/base (kết quả phân trang).
package models

// PaginateResult là một trang kết quả kèm tổng số phần tử khớp bộ lọc
type PaginateResult[T any] struct {
	// Trang hiện tại (bắt đầu từ 1)
	Page int64 `json:"page" bson:"page"`
	// Số lượng mục trên mỗi trang
	Limit int64 `json:"limit" bson:"limit"`
	// Số lượng mục trong trang hiện tại
	ItemCount int64 `json:"itemCount" bson:"itemCount"`
	// Danh sách các mục, không bao giờ nil
	Items []T `json:"items" bson:"items"`
	// Tổng số mục khớp bộ lọc, không phụ thuộc trang
	TotalCount int64 `json:"totalCount" bson:"totalCount"`
	// Tổng số trang
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
	// Còn trang sau hay không
	HasNextPage bool `json:"hasNextPage" bson:"hasNextPage"`
}

// NewPaginateResult tính các trường dẫn xuất (itemCount, totalPage, hasNextPage)
func NewPaginateResult[T any](items []T, total, page, limit int64) *PaginateResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPage := int64(0)
	if limit > 0 {
		totalPage = (total + limit - 1) / limit
	}
	return &PaginateResult[T]{
		Page:        page,
		Limit:       limit,
		ItemCount:   int64(len(items)),
		Items:       items,
		TotalCount:  total,
		TotalPage:   totalPage,
		HasNextPage: page < totalPage,
	}
}
