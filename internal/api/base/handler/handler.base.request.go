package basehdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/api/feed"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/utility"
)

// UserIDLocal là key Locals chứa ID (hex) của người dùng đã xác thực
const UserIDLocal = "user_id"

// ParseRequestBody bind body (JSON hoặc form) vào input rồi chạy validator
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Body(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			"Dữ liệu gửi lên không đúng định dạng hoặc không khớp với cấu trúc yêu cầu",
			common.StatusBadRequest,
			nil,
		)
	}
	return global.ValidateStruct(input)
}

// ParseObjectIDParam đọc path param và parse thành ObjectID (sai định dạng => 400)
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	return utility.ParseObjectID(c.Params(name))
}

// ParseObjectIDQuery giống ParseObjectIDParam nhưng đọc từ query string.
// Query rỗng trả về nil, không lỗi.
func ParseObjectIDQuery(c fiber.Ctx, name string) (*primitive.ObjectID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := utility.ParseObjectID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CurrentUserID trả về ID người dùng đã xác thực, không có => 401
func CurrentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw, ok := c.Locals(UserIDLocal).(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return id, nil
}

// ViewerID trả về con trỏ tới ID người xem, nil khi là khách
func ViewerID(c fiber.Ctx) *primitive.ObjectID {
	id, err := CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &id
}

// ParsePagination đọc page/limit từ query theo giới hạn cấu hình
func ParsePagination(c fiber.Ctx) feed.Pagination {
	limits := feed.DefaultLimits
	if cfg := global.MongoDB_ServerConfig; cfg != nil {
		limits = feed.Limits{Default: cfg.Feed_DefaultLimit, Max: cfg.Feed_MaxLimit}
	}
	return feed.ParsePagination(c.Query("page"), c.Query("limit"), limits)
}
