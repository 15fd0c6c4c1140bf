package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"vidtube/config"
)

// BlobStore là kho lưu trữ tệp, trả về URL công khai của object
type BlobStore interface {
	Upload(ctx context.Context, localPath, objectName, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// MinioStore lưu object vào một bucket MinIO/S3
type MinioStore struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
}

// NewMinioStore kết nối MinIO theo cấu hình. Bucket được tạo khi cần ở lần upload đầu.
func NewMinioStore(cfg *config.Configuration) (*MinioStore, error) {
	client, err := minio.New(cfg.Minio_Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio_AccessKey, cfg.Minio_SecretKey, ""),
		Secure: cfg.Minio_UseSSL,
		Region: cfg.Minio_Region,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "tạo minio client")
	}
	return &MinioStore{
		client:    client,
		bucket:    cfg.Minio_Bucket,
		region:    cfg.Minio_Region,
		publicURL: strings.TrimRight(cfg.Minio_PublicURL, "/"),
	}, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.WithMessage(err, "kiểm tra bucket")
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return errors.WithMessagef(err, "tạo bucket %s", s.bucket)
	}
	return nil
}

// Upload đẩy tệp local lên bucket
func (s *MinioStore) Upload(ctx context.Context, localPath, objectName, contentType string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}
	_, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.WithMessagef(err, "đẩy object %s", objectName)
	}
	return s.URL(objectName), nil
}

// Remove xóa object khỏi bucket
func (s *MinioStore) Remove(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return errors.WithMessagef(err, "xóa object %s", objectName)
	}
	return nil
}

// URL trả về URL công khai của object
func (s *MinioStore) URL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName)
}

// ObjectNameFromURL lấy lại tên object từ URL do store sinh ra
func (s *MinioStore) ObjectNameFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
