// Package usersvc - service người dùng: đăng ký, đăng nhập, token, hồ sơ kênh.
package usersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/api/feed"
	userdto "vidtube/internal/api/user/dto"
	"vidtube/internal/api/user/models"
	videomodels "vidtube/internal/api/video/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/utility"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	videos *mongo.Collection
	names  global.MongoDB_CollectionName
	tokens *utility.TokenService
}

// NewUserService tạo mới UserService từ registry collection
func NewUserService() (*UserService, error) {
	users, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	videos, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %v", common.ErrNotFound)
	}
	if global.Tokens == nil {
		return nil, errors.New("token service chưa được khởi tạo")
	}
	return NewUserServiceWith(users, videos, global.MongoDB_ColNames, global.Tokens), nil
}

// NewUserServiceWith tạo UserService với collection và token service cho trước
func NewUserServiceWith(users, videos *mongo.Collection, names global.MongoDB_CollectionName, tokens *utility.TokenService) *UserService {
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](users),
		videos:               videos,
		names:                names,
		tokens:               tokens,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EnsureAvailable kiểm tra username/email chưa được dùng, gọi trước khi upload ảnh
func (s *UserService) EnsureAvailable(ctx context.Context, username, email string) error {
	exists, err := s.DocumentExists(ctx, bson.M{"$or": bson.A{
		bson.M{"username": normalize(username)},
		bson.M{"email": normalize(email)},
	}})
	if err != nil {
		return err
	}
	if exists {
		return common.ErrUserExists
	}
	return nil
}

// Register tạo người dùng mới. Unique index bắt các đăng ký song song cùng username/email.
func (s *UserService) Register(ctx context.Context, input *userdto.RegisterInput, avatarURL, coverURL string) (*models.User, error) {
	hash, err := utility.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không mã hóa được mật khẩu", common.StatusInternalServerError, nil)
	}

	user, err := s.InsertOne(ctx, models.User{
		Username:   normalize(input.Username),
		Email:      normalize(input.Email),
		FullName:   strings.TrimSpace(input.FullName),
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Password:   hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// Login kiểm tra thông tin đăng nhập và cấp cặp token mới
func (s *UserService) Login(ctx context.Context, input *userdto.LoginInput) (*userdto.AuthResult, error) {
	filter := bson.M{"username": normalize(input.Username)}
	if input.Username == "" {
		filter = bson.M{"email": normalize(input.Email)}
	}

	user, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	if !utility.CheckPassword(user.Password, input.Password) {
		return nil, common.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, &user, "")
}

// issueTokens ký cặp token và lưu refresh token. previous khác rỗng nghĩa là đang
// xoay vòng: chỉ cập nhật khi refresh token đang lưu đúng bằng previous.
func (s *UserService) issueTokens(ctx context.Context, user *models.User, previous string) (*userdto.AuthResult, error) {
	access, err := s.tokens.GenerateAccess(user.ID.Hex(), user.Username, user.Email)
	if err != nil {
		return nil, common.NewError(common.ErrCodeAuthToken, "Không tạo được token", common.StatusInternalServerError, nil)
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID.Hex())
	if err != nil {
		return nil, common.NewError(common.ErrCodeAuthToken, "Không tạo được token", common.StatusInternalServerError, nil)
	}

	filter := bson.M{"_id": user.ID}
	if previous != "" {
		filter["refreshToken"] = previous
	}
	updated, err := s.FindOneAndUpdate(ctx, filter, basesvc.UpdateData{
		Set: map[string]interface{}{"refreshToken": refresh},
	})
	if err != nil {
		if common.IsNotFound(err) && previous != "" {
			return nil, common.ErrRefreshTokenReused
		}
		return nil, err
	}
	return &userdto.AuthResult{User: &updated, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh xác thực refresh token rồi xoay vòng cặp token
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*userdto.AuthResult, error) {
	if refreshToken == "" {
		return nil, common.ErrTokenMissing
	}
	claims, err := s.tokens.Validate(utility.RefreshToken, refreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrTokenInvalid
		}
		return nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, common.ErrRefreshTokenReused
	}
	return s.issueTokens(ctx, &user, refreshToken)
}

// Logout thu hồi refresh token đang lưu
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": userID}, basesvc.UpdateData{
		Unset: map[string]interface{}{"refreshToken": ""},
	})
	return err
}

// ChangePassword đổi mật khẩu sau khi kiểm tra mật khẩu cũ
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *userdto.ChangePasswordInput) error {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utility.CheckPassword(user.Password, input.OldPassword) {
		return common.ErrWrongPassword
	}
	hash, err := utility.HashPassword(input.NewPassword)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không mã hóa được mật khẩu", common.StatusInternalServerError, nil)
	}
	_, err = s.UpdateOne(ctx, bson.M{"_id": userID}, basesvc.UpdateData{
		Set: map[string]interface{}{"password": hash},
	})
	return err
}

// CurrentUser trả về người dùng theo ID
func (s *UserService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAccount cập nhật họ tên và email
func (s *UserService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, input *userdto.UpdateAccountInput) (*models.User, error) {
	return s.updateFields(ctx, userID, map[string]interface{}{
		"fullName": strings.TrimSpace(input.FullName),
		"email":    normalize(input.Email),
	})
}

// UpdateImage thay avatar hoặc coverImage
func (s *UserService) UpdateImage(ctx context.Context, userID primitive.ObjectID, field, url string) (*models.User, error) {
	if field != "avatar" && field != "coverImage" {
		return nil, common.ErrInvalidInput
	}
	return s.updateFields(ctx, userID, map[string]interface{}{field: url})
}

func (s *UserService) updateFields(ctx context.Context, userID primitive.ObjectID, set map[string]interface{}) (*models.User, error) {
	user, err := s.FindOneAndUpdate(ctx, bson.M{"_id": userID}, basesvc.UpdateData{Set: set})
	if err != nil {
		switch {
		case common.IsNotFound(err):
			return nil, common.ErrUserNotFound
		case errors.Is(err, common.ErrMongoDuplicate):
			return nil, common.ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// ChannelProfile trả về trang kênh theo username kèm số người đăng ký,
// số kênh đã đăng ký và viewer đã đăng ký kênh này chưa
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*models.ChannelProfile, error) {
	joins := []feed.JoinSpec{
		{From: s.names.Subscriptions, LocalField: "_id", ForeignField: "channel", As: "subscribers", Project: []string{"subscriber"}},
		{From: s.names.Subscriptions, LocalField: "_id", ForeignField: "subscriber", As: "subscribedTo", Project: []string{"channel"}},
	}
	stages := []bson.M{
		{"$addFields": bson.M{
			"subscribersCount":          bson.M{"$size": "$subscribers"},
			"channelsSubscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribed":              bson.M{"$in": bson.A{viewer, "$subscribers.subscriber"}},
		}},
		{"$project": bson.M{
			"username": 1, "fullName": 1, "email": 1, "avatar": 1, "coverImage": 1, "createdAt": 1,
			"subscribersCount": 1, "channelsSubscribedToCount": 1, "isSubscribed": 1,
		}},
	}

	profile, err := feed.FindOneEnriched[models.ChannelProfile](ctx, s.Collection(), "channel_profile",
		bson.M{"username": normalize(username)}, joins, stages)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrChannelNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// WatchHistory trả về các video trong lịch sử xem, video chưa công khai chỉ hiện với chủ sở hữu
func (s *UserService) WatchHistory(ctx context.Context, userID primitive.ObjectID, page feed.Pagination) (*basemodels.PaginateResult[videomodels.VideoView], error) {
	opts := options.FindOne().SetProjection(bson.M{"watchHistory": 1})
	user, err := s.FindOne(ctx, bson.M{"_id": userID}, opts)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	ids := user.WatchHistory
	if ids == nil {
		ids = []primitive.ObjectID{}
	}
	return feed.List[videomodels.VideoView](ctx, s.videos, "watch_history", feed.ListQuery{
		Match: bson.M{
			"_id": bson.M{"$in": ids},
			"$or": bson.A{bson.M{"isPublished": true}, bson.M{"owner": userID}},
		},
		Sort:       bson.D{{Key: "createdAt", Value: -1}},
		Joins:      []feed.JoinSpec{feed.OwnerJoin(s.names.Users)},
		Stages:     feed.LikeStats(s.names.Likes, "video", &userID),
		Pagination: page,
	})
}
