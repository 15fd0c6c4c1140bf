package upload

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"

	"vidtube/internal/logger"
)

// TempPath trả về đường dẫn tạm <xid><ext> trong dir, ext lấy từ tên tệp gốc
func TempPath(dir, originalName string) string {
	return filepath.Join(dir, xid.New().String()+strings.ToLower(filepath.Ext(originalName)))
}

// Cleanup xóa các tệp tạm còn sót, bỏ qua đường dẫn rỗng và tệp đã bị xóa
func Cleanup(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.WithModule("upload").WithError(err).WithField("path", p).Warn("[UPLOAD] Không xóa được tệp tạm")
		}
	}
}
