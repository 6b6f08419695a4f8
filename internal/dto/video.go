package dto

import (
	"time"

	"VidTube/internal/model"
	"VidTube/internal/query"
)

type VideoResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       uint64    `json:"views"`
	Owner       OwnerInfo `json:"owner"`
}

// DetailOwner 在作者摘要上追加频道维度的聚合字段
type DetailOwner struct {
	OwnerInfo
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

// VideoDetailResponse 是详情页聚合：视频 + 点赞 + 作者频道信息
type VideoDetailResponse struct {
	ID          uint64      `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	VideoURL    string      `json:"video_url"`
	Thumbnail   string      `json:"thumbnail"`
	Duration    float64     `json:"duration"`
	Views       uint64      `json:"views"`
	LikesCount  int64       `json:"likesCount"`
	IsLiked     bool        `json:"isLiked"`
	Owner       DetailOwner `json:"owner"`
}

// ToVideoResponse 把DB模型转换为API响应模型，Owner未Preload时退化为只带ID
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		Thumbnail:   video.ThumbnailURL,
		Duration:    video.Duration,
		Views:       video.Views,
	}
	if video.Owner.ID != 0 {
		resp.Owner = ToOwnerInfo(&video.Owner)
	} else {
		resp.Owner.ID = video.OwnerID
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	response := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, ToVideoResponse(&videos[i]))
	}
	return response
}

// ToVideoPage 逐项转换分页结果，分页元数据原样带过去
func ToVideoPage(page query.Page[model.Video]) query.Page[VideoResponse] {
	return query.Page[VideoResponse]{
		Docs:       ToVideoResponses(page.Docs),
		TotalDocs:  page.TotalDocs,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func ToVideoDetailResponse(video *model.Video, likesCount int64, isLiked bool, subscribersCount int64, isSubscribed bool) VideoDetailResponse {
	resp := VideoDetailResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		Thumbnail:   video.ThumbnailURL,
		Duration:    video.Duration,
		Views:       video.Views,
		LikesCount:  likesCount,
		IsLiked:     isLiked,
	}
	if video.Owner.ID != 0 {
		resp.Owner.OwnerInfo = ToOwnerInfo(&video.Owner)
	} else {
		resp.Owner.ID = video.OwnerID
	}
	resp.Owner.SubscribersCount = subscribersCount
	resp.Owner.IsSubscribed = isSubscribed
	return resp
}
