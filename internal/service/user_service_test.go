package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"VidTube/internal/apperr"
	"VidTube/internal/auth"
	"VidTube/internal/model"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (UserService, *fakeUserRepo, *fakeSubRepo, *fakeMediaStore) {
	userRepo := newFakeUserRepo()
	subRepo := newFakeSubRepo()
	media := &fakeMediaStore{}
	tokens := auth.NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewUserService(userRepo, subRepo, media, tokens), userRepo, subRepo, media
}

func registerInput(username, email string) RegisterInput {
	return RegisterInput{
		Username:   username,
		Email:      email,
		Password:   "password123",
		FullName:   "Test User",
		AvatarPath: "/tmp/avatar.png",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("Alice", "alice@test.com"))
	require.NoError(t, err)
	// 用户名统一存小写
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.Password)
	assert.NotEmpty(t, user.AvatarURL)

	loggedIn, pair, err := svc.Login(ctx, "alice", "", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, pair.AccessToken)
	// 刷新令牌签发后要落到用户记录上
	assert.Equal(t, pair.RefreshToken, loggedIn.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("bob", "bob@test.com"))
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "bob", "", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("carol", "carol@test.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("carol", "other@test.com"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestRegisterRollsBackUploadsOnCreateFailure(t *testing.T) {
	svc, userRepo, _, media := newTestUserService()
	ctx := context.Background()

	// 并发注册时查重通过但插入撞唯一索引
	userRepo.createErr = &mysql.MySQLError{Number: 1062}

	input := registerInput("dave", "dave@test.com")
	input.CoverPath = "/tmp/cover.png"
	_, err := svc.Register(ctx, input)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	// 头像和封面都传上去了，失败后必须都删掉
	assert.Equal(t, 2, media.uploads)
	assert.Len(t, media.deleted, 2)
}

func TestRefreshRejectsReplayedToken(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("erin", "erin@test.com"))
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, "erin", "", "password123")
	require.NoError(t, err)

	// 模拟令牌已经被轮换掉：库里存的和提交的不一致
	userRepo.users[user.ID].RefreshToken = "rotated-away"

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
	assert.EqualError(t, err, "刷新令牌已过期或已被使用")
}

func TestRefreshWithGarbageToken(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
}

func TestLogoutClearsRefreshToken(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("frank", "frank@test.com"))
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, "frank", "", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))
	assert.Empty(t, userRepo.users[user.ID].RefreshToken)

	// 退出后旧的刷新令牌立刻失效
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("grace", "grace@test.com"))
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong", "newpassword")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "password123", "newpassword"))
	assert.True(t, auth.VerifyPassword(userRepo.users[user.ID].Password, "newpassword"))
}

func TestGetChannelProfile(t *testing.T) {
	svc, userRepo, subRepo, _ := newTestUserService()
	ctx := context.Background()

	channel := &model.User{Username: "henry", Email: "henry@test.com"}
	viewer := &model.User{Username: "ivy", Email: "ivy@test.com"}
	third := &model.User{Username: "jack", Email: "jack@test.com"}
	require.NoError(t, userRepo.Create(channel))
	require.NoError(t, userRepo.Create(viewer))
	require.NoError(t, userRepo.Create(third))

	// viewer和third订阅了channel，channel订阅了third
	require.NoError(t, subRepo.Create(viewer.ID, channel.ID))
	require.NoError(t, subRepo.Create(third.ID, channel.ID))
	require.NoError(t, subRepo.Create(channel.ID, third.ID))

	profile, err := svc.GetChannelProfile(ctx, "HENRY", viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.SubscribersCount)
	assert.Equal(t, int64(1), profile.SubscribedCount)
	assert.True(t, profile.IsSubscribed)

	// 未登录访问者一律视为未订阅
	profile, err = svc.GetChannelProfile(ctx, "henry", 0)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = svc.GetChannelProfile(ctx, "nobody", viewer.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
