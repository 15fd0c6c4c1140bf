package commentdto

// AddCommentInput thêm bình luận vào video
type AddCommentInput struct {
	VideoID string `json:"videoId" validate:"required,objectid"`
	Content string `json:"content" validate:"notblank,no_xss,max=1000"`
}

// UpdateCommentInput sửa nội dung bình luận
type UpdateCommentInput struct {
	Content string `json:"content" validate:"notblank,no_xss,max=1000"`
}
