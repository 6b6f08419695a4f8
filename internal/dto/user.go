package dto

import (
	"time"

	"VidTube/internal/model"
)

// UserResponse 是对外安全的用户形状
// 密码哈希、刷新令牌、媒体删除句柄一律不出现
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Avatar    string    `json:"avatar"`
	Cover     string    `json:"coverImage"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerInfo 是挂在视频/评论上的作者摘要
type OwnerInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// ChannelProfileResponse 是频道主页聚合的结果
type ChannelProfileResponse struct {
	ID               uint64 `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	Cover            string `json:"coverImage"`
	SubscribersCount int64  `json:"subscribersCount"`
	SubscribedCount  int64  `json:"channelsSubscribedToCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Avatar:    user.AvatarURL,
		Cover:     user.CoverURL,
		CreatedAt: user.CreatedAt,
	}
}

func ToOwnerInfo(user *model.User) OwnerInfo {
	return OwnerInfo{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.AvatarURL,
	}
}
