package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	err     error
	calls   int
	objects []string
	removed []string
}

func (f *fakeStore) Upload(_ context.Context, localPath, objectName, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.objects = append(f.objects, objectName)
	return "http://blob.local/vidtube/" + objectName, nil
}

func (f *fakeStore) Remove(_ context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	return nil
}

func (f *fakeStore) ObjectNameFromURL(url string) (string, bool) {
	const prefix = "http://blob.local/vidtube/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

type fakeProber struct {
	d   float64
	err error
}

func (f fakeProber) Duration(string) (float64, error) { return f.d, f.err }

func tempFile(t *testing.T, name string) string {
	t.Helper()
	p := TempPath(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))
	return p
}

func TestBridgeUpload(t *testing.T) {
	t.Run("✅ Đường dẫn rỗng trả về nil, không gọi store", func(t *testing.T) {
		store := &fakeStore{}
		assert.Nil(t, NewBridge(store, nil).Upload(context.Background(), "", KindImage))
		assert.Equal(t, 0, store.calls)
	})

	t.Run("✅ Upload video có duration và xóa tệp tạm", func(t *testing.T) {
		store := &fakeStore{}
		p := tempFile(t, "clip.MP4")

		res := NewBridge(store, fakeProber{d: 12.5}).Upload(context.Background(), p, KindVideo)
		require.NotNil(t, res)
		assert.Equal(t, 12.5, res.Duration)
		assert.True(t, strings.HasPrefix(res.ObjectName, "videos/"))
		assert.True(t, strings.HasSuffix(res.ObjectName, ".mp4"))
		assert.Equal(t, "http://blob.local/vidtube/"+res.ObjectName, res.URL)
		assert.NoFileExists(t, p)
	})

	t.Run("✅ Probe lỗi vẫn upload, duration 0", func(t *testing.T) {
		p := tempFile(t, "clip.mp4")
		res := NewBridge(&fakeStore{}, fakeProber{err: errors.New("no ffprobe")}).Upload(context.Background(), p, KindVideo)
		require.NotNil(t, res)
		assert.Zero(t, res.Duration)
	})

	t.Run("❌ Store lỗi trả về nil và vẫn xóa tệp tạm", func(t *testing.T) {
		p := tempFile(t, "avatar.png")
		res := NewBridge(&fakeStore{err: errors.New("minio down")}, nil).Upload(context.Background(), p, KindImage)
		assert.Nil(t, res)
		assert.NoFileExists(t, p)
	})

	t.Run("❌ Context đã hủy: không upload, tệp tạm bị xóa", func(t *testing.T) {
		store := &fakeStore{}
		p := tempFile(t, "avatar.png")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Nil(t, NewBridge(store, nil).Upload(ctx, p, KindImage))
		assert.Equal(t, 0, store.calls)
		assert.NoFileExists(t, p)
	})

	t.Run("❌ Tệp không tồn tại trả về nil", func(t *testing.T) {
		store := &fakeStore{}
		missing := filepath.Join(t.TempDir(), "ghost.png")
		assert.Nil(t, NewBridge(store, nil).Upload(context.Background(), missing, KindImage))
		assert.Equal(t, 0, store.calls)
	})

	t.Run("❌ Breaker mở sau 5 lỗi liên tiếp", func(t *testing.T) {
		store := &fakeStore{err: errors.New("minio down")}
		b := NewBridge(store, nil)
		for i := 0; i < 7; i++ {
			assert.Nil(t, b.Upload(context.Background(), tempFile(t, "a.png"), KindImage))
		}
		assert.Equal(t, 5, store.calls)
	})
}

func TestBridgeRemove(t *testing.T) {
	store := &fakeStore{}
	b := NewBridge(store, nil)
	b.Remove(context.Background(), "")
	b.Remove(context.Background(), "images/x.png")
	assert.Equal(t, []string{"images/x.png"}, store.removed)
}

func TestBridgeRemoveURL(t *testing.T) {
	store := &fakeStore{}
	b := NewBridge(store, nil)
	b.RemoveURL(context.Background(), "http://blob.local/vidtube/videos/a.mp4")
	b.RemoveURL(context.Background(), "https://other.cdn/b.png")
	b.RemoveURL(context.Background(), "")
	assert.Equal(t, []string{"videos/a.mp4"}, store.removed)
}

func TestTempPathAndCleanup(t *testing.T) {
	dir := t.TempDir()
	a, b := TempPath(dir, "Thumb.JPG"), TempPath(dir, "thumb.jpg")
	assert.NotEqual(t, a, b)
	assert.Equal(t, ".jpg", filepath.Ext(a))
	assert.Equal(t, dir, filepath.Dir(a))

	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
	assert.NotPanics(t, func() { Cleanup(a, b, "") })
	assert.NoFileExists(t, a)
}

func TestParseProbeDuration(t *testing.T) {
	d, err := parseProbeDuration(`{"format":{"duration":"63.250000"}}`)
	require.NoError(t, err)
	assert.Equal(t, 63.25, d)

	_, err = parseProbeDuration(`{"format":{}}`)
	assert.Error(t, err)

	_, err = parseProbeDuration(`not json`)
	assert.Error(t, err)
}

func TestMinioStoreURL(t *testing.T) {
	s := &MinioStore{bucket: "vidtube", publicURL: "http://localhost:9000"}
	url := s.URL("videos/abc.mp4")
	assert.Equal(t, "http://localhost:9000/vidtube/videos/abc.mp4", url)

	name, ok := s.ObjectNameFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "videos/abc.mp4", name)

	_, ok = s.ObjectNameFromURL("https://other.cdn/x.png")
	assert.False(t, ok)
}
