package userhdl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"vidtube/config"
	usersvc "vidtube/internal/api/user/service"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/upload"
	"vidtube/internal/utility"
)

type fakeUploader struct {
	calls   int
	removed []string
}

func (f *fakeUploader) Upload(_ context.Context, localPath string, kind upload.Kind) *upload.Result {
	f.calls++
	return &upload.Result{URL: "http://blob/" + localPath, ObjectName: string(kind) + "s/x"}
}

func (f *fakeUploader) Remove(_ context.Context, objectName string) {
	f.removed = append(f.removed, objectName)
}

func (f *fakeUploader) RemoveURL(_ context.Context, url string) {
	f.removed = append(f.removed, url)
}

func setup(mt *mtest.T, up *fakeUploader) *fiber.App {
	global.InitValidator()
	global.MongoDB_ServerConfig = &config.Configuration{Upload_TempDir: mt.TempDir()}

	tokens, err := utility.NewTokenService("access-secret-0123456789", "refresh-secret-0123456789", "vidtube", time.Minute, time.Hour)
	require.NoError(mt, err)
	names := global.MongoDB_CollectionName{Users: "users", Videos: "videos", Likes: "likes", Subscriptions: "subscriptions"}
	h := &UserHandler{
		UserService:  usersvc.NewUserServiceWith(mt.Coll, mt.DB.Collection("videos"), names, tokens),
		Uploads:      up,
		SecureCookie: true,
	}

	app := fiber.New()
	app.Post("/users/register", h.HandleRegister)
	app.Post("/users/login", h.HandleLogin)
	app.Post("/users/logout", h.HandleLogout)
	return app
}

func registerRequest(t *testing.T, fields map[string]string, withAvatar bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withAvatar {
		part, err := w.CreateFormFile("avatar", "me.jpg")
		require.NoError(t, err)
		_, _ = part.Write([]byte("jpeg"))
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/users/register", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func status(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	var env map[string]any
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return res, env
}

func TestHandleRegister(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	valid := map[string]string{"username": "an", "email": "an@example.com", "fullName": "Nguyễn An", "password": "secret123"}

	mt.Run("❌ Trường trống bị chặn, không upload", func(mt *mtest.T) {
		up := &fakeUploader{}
		app := setup(mt, up)
		fields := map[string]string{"username": "an", "email": "an@example.com", "fullName": "  ", "password": "secret123"}

		res, env := status(mt.T, app, registerRequest(mt.T, fields, true))
		assert.Equal(mt, common.StatusBadRequest, res.StatusCode)
		assert.Equal(mt, false, env["success"])
		assert.NotEmpty(mt, env["errors"])
		assert.Zero(mt, up.calls)
	})

	mt.Run("❌ Trùng username => 409, không upload", func(mt *mtest.T) {
		up := &fakeUploader{}
		app := setup(mt, up)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{{Key: "_id", Value: primitive.NewObjectID()}}))

		res, _ := status(mt.T, app, registerRequest(mt.T, valid, true))
		assert.Equal(mt, common.StatusConflict, res.StatusCode)
		assert.Zero(mt, up.calls)
	})

	mt.Run("❌ Thiếu avatar => 400", func(mt *mtest.T) {
		up := &fakeUploader{}
		app := setup(mt, up)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		res, env := status(mt.T, app, registerRequest(mt.T, valid, false))
		assert.Equal(mt, common.StatusBadRequest, res.StatusCode)
		assert.Equal(mt, "Ảnh đại diện là bắt buộc", env["message"])
		assert.Zero(mt, up.calls)
	})

	mt.Run("✅ Đăng ký thành công, không trả mật khẩu", func(mt *mtest.T) {
		up := &fakeUploader{}
		app := setup(mt, up)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		res, env := status(mt.T, app, registerRequest(mt.T, valid, true))
		require.Equal(mt, common.StatusCreated, res.StatusCode, env["message"])
		data := env["data"].(map[string]any)
		assert.Equal(mt, "an", data["username"])
		assert.NotContains(mt, data, "password")
		assert.NotContains(mt, data, "refreshToken")
		assert.Equal(mt, 1, up.calls)
	})

	mt.Run("❌ Ghi DB lỗi thì gỡ ảnh đã upload", func(mt *mtest.T) {
		up := &fakeUploader{}
		app := setup(mt, up)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		res, _ := status(mt.T, app, registerRequest(mt.T, valid, true))
		assert.Equal(mt, common.StatusConflict, res.StatusCode)
		assert.Contains(mt, up.removed, "images/x")
	})
}

func TestHandleLogin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("✅ Đăng nhập đặt cookie httpOnly", func(mt *mtest.T) {
		app := setup(mt, &fakeUploader{})
		hash, err := utility.HashPassword("secret123")
		require.NoError(mt, err)
		id := primitive.NewObjectID()
		doc := bson.D{{Key: "_id", Value: id}, {Key: "username", Value: "an"}, {Key: "password", Value: hash}}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, doc),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}),
		)

		req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{"username":"an","password":"secret123"}`))
		req.Header.Set("Content-Type", "application/json")
		res, env := status(mt.T, app, req)
		require.Equal(mt, common.StatusOK, res.StatusCode, env["message"])

		cookies := strings.Join(res.Header.Values("Set-Cookie"), "\n")
		assert.Contains(mt, cookies, "accessToken=")
		assert.Contains(mt, cookies, "refreshToken=")
		assert.Contains(mt, strings.ToLower(cookies), "httponly")
		assert.Contains(mt, strings.ToLower(cookies), "secure")
	})

	mt.Run("❌ Thiếu cả username và email => 400", func(mt *mtest.T) {
		app := setup(mt, &fakeUploader{})
		req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{"password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		res, _ := status(mt.T, app, req)
		assert.Equal(mt, common.StatusBadRequest, res.StatusCode)
	})
}

func TestHandleLogout(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("❌ Không có người dùng trong request => 401", func(mt *mtest.T) {
		app := setup(mt, &fakeUploader{})
		res, _ := status(mt.T, app, httptest.NewRequest(http.MethodPost, "/users/logout", nil))
		assert.Equal(mt, common.StatusUnauthorized, res.StatusCode)
	})
}
