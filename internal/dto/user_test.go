package dto

import (
	"encoding/json"
	"testing"

	"VidTube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 响应形状里绝不能出现密码哈希、刷新令牌和媒体删除句柄
func TestUserResponseOmitsSecrets(t *testing.T) {
	user := &model.User{
		Username:     "alice",
		Email:        "alice@test.com",
		FullName:     "Alice",
		Password:     "$2a$10$secret-hash",
		RefreshToken: "refresh-jwt",
		AvatarURL:    "https://cdn.test/a.png",
		AvatarKey:    "a.png",
		CoverURL:     "https://cdn.test/c.png",
		CoverKey:     "c.png",
	}
	user.ID = 1

	body, err := json.Marshal(ToUserResponse(user))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))

	assert.NotContains(t, string(body), "secret-hash")
	assert.NotContains(t, string(body), "refresh-jwt")
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "refreshToken")
	assert.NotContains(t, fields, "avatarKey")

	assert.Equal(t, "alice", fields["username"])
	assert.Equal(t, "https://cdn.test/a.png", fields["avatar"])
	assert.Equal(t, "https://cdn.test/c.png", fields["coverImage"])
}

func TestToVideoResponseOwnerFallback(t *testing.T) {
	video := &model.Video{OwnerID: 7, Title: "t"}
	video.ID = 3

	resp := ToVideoResponse(video)
	// Owner没Preload时至少要带上ID
	assert.Equal(t, uint64(7), resp.Owner.ID)
	assert.Empty(t, resp.Owner.Username)

	video.Owner = model.User{Username: "bob", FullName: "Bob"}
	video.Owner.ID = 7
	resp = ToVideoResponse(video)
	assert.Equal(t, "bob", resp.Owner.Username)
}
