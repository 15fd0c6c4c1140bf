package basehdl

import (
	"context"
	"mime/multipart"
	"os"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/upload"
)

// Uploader là phần của upload.Bridge mà handler cần
type Uploader interface {
	Upload(ctx context.Context, localPath string, kind upload.Kind) *upload.Result
	Remove(ctx context.Context, objectName string)
	RemoveURL(ctx context.Context, url string)
}

// DefaultUploader trả về bridge toàn cục, lỗi nếu chưa khởi tạo
func DefaultUploader() (Uploader, error) {
	if global.Uploads == nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Kho lưu trữ chưa được khởi tạo", common.StatusInternalServerError, nil)
	}
	return global.Uploads, nil
}

// TempDir trả về thư mục tệp tạm theo cấu hình
func TempDir() string {
	if cfg := global.MongoDB_ServerConfig; cfg != nil && cfg.Upload_TempDir != "" {
		return cfg.Upload_TempDir
	}
	return os.TempDir()
}

// saveFile ghi tệp multipart ra đĩa, thay được trong test
var saveFile = func(c fiber.Ctx, fh *multipart.FileHeader, path string) error {
	return c.SaveFile(fh, path)
}

// SaveFormFile lưu tệp multipart field vào thư mục tạm.
// Không có field trả về "" và required (nếu khác nil).
func SaveFormFile(c fiber.Ctx, field string, required error) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return "", required
	}

	dir := TempDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không tạo được thư mục tạm", common.StatusInternalServerError, nil)
	}

	path := upload.TempPath(dir, fh.Filename)
	if err := saveFile(c, fh, path); err != nil {
		upload.Cleanup(path)
		return "", common.NewError(common.ErrCodeInternalServer, "Không lưu được tệp tạm", common.StatusInternalServerError, nil)
	}
	return path, nil
}
