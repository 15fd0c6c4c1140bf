package feed

import (
	"math"
	"strconv"
)

// Limits là giới hạn số phần tử mỗi trang
type Limits struct {
	Default int64
	Max     int64
}

// DefaultLimits dùng khi cấu hình không chỉ định
var DefaultLimits = Limits{Default: 10, Max: 50}

// Pagination là trang đã chuẩn hóa (page >= 1, 1 <= limit <= Max)
type Pagination struct {
	Page  int64
	Limit int64
}

// Skip trả về số phần tử bỏ qua trước trang hiện tại, không bao giờ âm
func (p Pagination) Skip() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64 / p.Limit * p.Limit
	}
	return (p.Page - 1) * p.Limit
}

// ParsePagination chuẩn hóa page/limit từ query string.
// Giá trị không phải số hoặc < 1 được thay bằng mặc định, limit bị chặn ở Max.
func ParsePagination(pageStr, limitStr string, limits Limits) Pagination {
	if limits.Default <= 0 {
		limits.Default = DefaultLimits.Default
	}
	if limits.Max <= 0 {
		limits.Max = DefaultLimits.Max
	}

	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		limit = limits.Default
	}
	if limit > limits.Max {
		limit = limits.Max
	}
	// (page-1)*limit phải nằm trong int64
	if maxPage := math.MaxInt64/limit + 1; page > maxPage {
		page = maxPage
	}

	return Pagination{Page: page, Limit: limit}
}
