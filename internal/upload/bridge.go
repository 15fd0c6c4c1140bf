// Package upload chuyển tệp tạm do client gửi lên sang kho lưu trữ.
// Tệp tạm luôn bị xóa, kể cả khi upload thất bại hoặc request bị hủy.
package upload

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"

	"vidtube/internal/logger"
	"vidtube/internal/metrics"
)

// Kind là loại tệp upload
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Result là kết quả upload thành công
type Result struct {
	URL        string
	ObjectName string
	Duration   float64 // giây, chỉ có với video
}

// Bridge gom kho lưu trữ, prober và circuit breaker
type Bridge struct {
	store   BlobStore
	prober  DurationProber
	breaker *gobreaker.CircuitBreaker[string]
}

// NewBridge tạo Bridge. Breaker mở sau 5 lỗi liên tiếp và thử lại sau 30 giây.
func NewBridge(store BlobStore, prober DurationProber) *Bridge {
	const name = "blobstore"
	metrics.SetBreakerState(name, int(gobreaker.StateClosed))

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(name, int(to))
			logger.WithModule("upload").WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("[UPLOAD] Circuit breaker đổi trạng thái")
		},
	})

	return &Bridge{store: store, prober: prober, breaker: breaker}
}

// Upload đẩy tệp tạm lên kho lưu trữ. Đường dẫn rỗng hoặc bất kỳ lỗi nào trả về nil,
// lỗi được ghi log. Tệp tạm bị xóa trong mọi trường hợp.
func (b *Bridge) Upload(ctx context.Context, localPath string, kind Kind) *Result {
	if localPath == "" {
		return nil
	}
	defer Cleanup(localPath)

	log := logger.WithModule("upload").WithFields(map[string]interface{}{
		"kind": string(kind),
		"path": localPath,
	})

	res, err := b.upload(ctx, localPath, kind)
	metrics.RecordUpload(string(kind), err == nil)
	if err != nil {
		log.WithError(err).Error("[UPLOAD] Upload thất bại")
		return nil
	}
	log.WithField("object", res.ObjectName).Info("[UPLOAD] Upload thành công")
	return res
}

func (b *Bridge) upload(ctx context.Context, localPath string, kind Kind) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithMessage(err, "request đã bị hủy")
	}
	if _, err := os.Stat(localPath); err != nil {
		return nil, errors.WithMessage(err, "đọc tệp tạm")
	}

	res := &Result{ObjectName: objectName(localPath, kind)}
	if kind == KindVideo && b.prober != nil {
		d, err := b.prober.Duration(localPath)
		if err != nil {
			logger.WithModule("upload").WithError(err).Warn("[UPLOAD] Không đọc được thời lượng video")
		} else {
			res.Duration = d
		}
	}

	url, err := b.breaker.Execute(func() (string, error) {
		return b.store.Upload(ctx, localPath, res.ObjectName, contentType(localPath, kind))
	})
	if err != nil {
		return nil, err
	}
	res.URL = url
	return res, nil
}

// Remove xóa object đã upload, lỗi chỉ ghi log
func (b *Bridge) Remove(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	if err := b.store.Remove(ctx, objectName); err != nil {
		logger.WithModule("upload").WithError(err).WithField("object", objectName).Warn("[UPLOAD] Không xóa được object")
	}
}

// urlResolver là store biết đổi URL công khai về tên object
type urlResolver interface {
	ObjectNameFromURL(url string) (string, bool)
}

// RemoveURL xóa object theo URL công khai. URL không thuộc store thì bỏ qua.
func (b *Bridge) RemoveURL(ctx context.Context, url string) {
	r, ok := b.store.(urlResolver)
	if !ok || url == "" {
		return
	}
	if name, ok := r.ObjectNameFromURL(url); ok {
		b.Remove(ctx, name)
	}
}

func objectName(localPath string, kind Kind) string {
	return string(kind) + "s/" + filepath.Base(localPath)
}

func contentType(localPath string, kind Kind) string {
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		return ct
	}
	if kind == KindVideo {
		return "video/mp4"
	}
	return "application/octet-stream"
}
