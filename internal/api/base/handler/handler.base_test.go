package basehdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/config"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []any           `json:"errors"`
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	assert.Contains(t, res.Header.Get("Content-Type"), "charset=utf-8")
	return res.StatusCode, env
}

type titleInput struct {
	Title string `json:"title" validate:"notblank"`
}

func TestEnvelopes(t *testing.T) {
	global.InitValidator()
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error {
		return SendSuccess(c, common.StatusCreated, fiber.Map{"a": 1}, "Đã tạo")
	})
	app.Get("/fail", func(c fiber.Ctx) error {
		return SendError(c, common.ErrVideoNotFound)
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		return SafeHandler(c, func() error { panic("nổ") })
	})
	app.Post("/body", func(c fiber.Ctx) error {
		var in titleInput
		if err := ParseRequestBody(c, &in); err != nil {
			return SendError(c, err)
		}
		return SendSuccess(c, common.StatusOK, in, "")
	})

	t.Run("✅ Envelope thành công", func(t *testing.T) {
		status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Equal(t, 201, status)
		assert.Equal(t, 201, env.StatusCode)
		assert.True(t, env.Success)
		assert.Equal(t, "Đã tạo", env.Message)
	})

	t.Run("❌ Envelope lỗi có errors rỗng", func(t *testing.T) {
		status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.Equal(t, 404, status)
		assert.False(t, env.Success)
		assert.NotNil(t, env.Errors)
		assert.Empty(t, env.Errors)
	})

	t.Run("❌ Panic thành 500", func(t *testing.T) {
		status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, 500, status)
		assert.False(t, env.Success)
	})

	t.Run("❌ Body chỉ có khoảng trắng bị từ chối với field errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/body", strings.NewReader(`{"title":"   "}`))
		req.Header.Set("Content-Type", "application/json")
		status, env := do(t, app, req)
		assert.Equal(t, 400, status)
		assert.Len(t, env.Errors, 1)
	})

	t.Run("❌ Body sai JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/body", strings.NewReader(`{"title":`))
		req.Header.Set("Content-Type", "application/json")
		status, _ := do(t, app, req)
		assert.Equal(t, 400, status)
	})
}

func TestRequestHelpers(t *testing.T) {
	user := primitive.NewObjectID()
	app := fiber.New()
	app.Get("/v/:videoId", func(c fiber.Ctx) error {
		c.Locals(UserIDLocal, user.Hex())
		id, err := ParseObjectIDParam(c, "videoId")
		if err != nil {
			return SendError(c, err)
		}
		me, err := CurrentUserID(c)
		if err != nil {
			return SendError(c, err)
		}
		p := ParsePagination(c)
		return SendSuccess(c, common.StatusOK, fiber.Map{
			"id": id.Hex(), "me": me.Hex(), "page": p.Page, "limit": p.Limit,
		}, "")
	})
	app.Get("/anon", func(c fiber.Ctx) error {
		if ViewerID(c) != nil {
			return SendSuccess(c, common.StatusOK, nil, "viewer")
		}
		_, err := CurrentUserID(c)
		return SendError(c, err)
	})

	t.Run("✅ Parse param, user, pagination", func(t *testing.T) {
		vid := primitive.NewObjectID()
		status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/v/"+vid.Hex()+"?page=0&limit=999", nil))
		require.Equal(t, 200, status)

		var data struct {
			ID    string `json:"id"`
			Me    string `json:"me"`
			Page  int64  `json:"page"`
			Limit int64  `json:"limit"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, vid.Hex(), data.ID)
		assert.Equal(t, user.Hex(), data.Me)
		assert.Equal(t, int64(1), data.Page)
		assert.Equal(t, int64(50), data.Limit)
	})

	t.Run("❌ ID sai định dạng => 400", func(t *testing.T) {
		status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/v/not-an-id", nil))
		assert.Equal(t, 400, status)
	})

	t.Run("❌ Không có người dùng => 401", func(t *testing.T) {
		status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/anon", nil))
		assert.Equal(t, 401, status)
	})
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("title", "x"))
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSaveFormFile(t *testing.T) {
	dir := t.TempDir()
	prevCfg, prevSave := global.MongoDB_ServerConfig, saveFile
	global.MongoDB_ServerConfig = &config.Configuration{Upload_TempDir: dir}
	t.Cleanup(func() {
		global.MongoDB_ServerConfig = prevCfg
		saveFile = prevSave
	})

	required := common.ErrAvatarRequired
	run := func(t *testing.T, field string) (string, error) {
		t.Helper()
		var path string
		var saveErr error
		app := fiber.New()
		app.Post("/", func(c fiber.Ctx) error {
			path, saveErr = SaveFormFile(c, "avatar", required)
			return c.SendStatus(fiber.StatusOK)
		})
		body, ct := multipartBody(t, field, "a.png", "png-bytes")
		req := httptest.NewRequest(fiber.MethodPost, "/", body)
		req.Header.Set("Content-Type", ct)
		res, err := app.Test(req)
		require.NoError(t, err)
		res.Body.Close()
		return path, saveErr
	}

	t.Run("✅ Lưu tệp vào thư mục tạm", func(t *testing.T) {
		saveFile = prevSave
		path, err := run(t, "avatar")
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(path))
		assert.FileExists(t, path)
		require.NoError(t, os.Remove(path))
	})

	t.Run("❌ Thiếu field trả lỗi required", func(t *testing.T) {
		path, err := run(t, "")
		assert.Empty(t, path)
		assert.ErrorIs(t, err, required)
	})

	t.Run("❌ Ghi dở thì tệp tạm bị xóa", func(t *testing.T) {
		saveFile = func(_ fiber.Ctx, _ *multipart.FileHeader, path string) error {
			require.NoError(t, os.WriteFile(path, []byte("nửa"), 0o644))
			return errors.New("disk full")
		}
		path, err := run(t, "avatar")
		assert.Empty(t, path)
		assert.Equal(t, common.StatusInternalServerError, common.StatusOf(err))

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}
