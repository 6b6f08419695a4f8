package service

import (
	"context"
	"net/http"
	"testing"

	"VidTube/internal/apperr"
	"VidTube/internal/model"
	"VidTube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVideoService() (VideoService, *fakeVideoRepo, *fakeLikeRepo, *fakeSubRepo, *fakeMediaStore) {
	videoRepo := newFakeVideoRepo()
	likeRepo := newFakeLikeRepo()
	subRepo := newFakeSubRepo()
	media := &fakeMediaStore{}
	// MQ传nil：观看事件直接跳过，不影响读取结果
	svc := NewVideoService(videoRepo, likeRepo, subRepo, media, nil)
	return svc, videoRepo, likeRepo, subRepo, media
}

func TestPublishRollsBackVideoOnThumbnailFailure(t *testing.T) {
	svc, _, _, _, media := newTestVideoService()
	media.failOn = 2 // 视频传成功，封面失败

	_, err := svc.Publish(context.Background(), PublishInput{
		OwnerID:       1,
		Title:         "t",
		VideoPath:     "/tmp/v.mp4",
		ThumbnailPath: "/tmp/t.jpg",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	// 已经传上去的视频要删掉
	assert.Equal(t, []string{"asset-1"}, media.deleted)
}

func TestGetFeedPaginatesPublishedVideos(t *testing.T) {
	svc, videoRepo, _, _, _ := newTestVideoService()

	for i := 0; i < 3; i++ {
		require.NoError(t, videoRepo.Create(&model.Video{OwnerID: 1, Title: "cats", IsPublished: true}))
	}
	// 未发布的不进feed，总数也不算它
	require.NoError(t, videoRepo.Create(&model.Video{OwnerID: 1, Title: "draft"}))

	opts := repository.FeedOptions{Query: "cats", SortBy: "views", SortType: "asc", Page: 1, Limit: 2}
	page, err := svc.GetFeed(opts)
	require.NoError(t, err)

	// 查询参数原样下传给repository，过滤和排序在那一层完成
	assert.Equal(t, opts, videoRepo.lastFeed)
	assert.Len(t, page.Docs, 2)
	assert.Equal(t, int64(3), page.TotalDocs)
	assert.Equal(t, 2, page.TotalPages)
}

func TestGetVideoDetailNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestVideoService()

	_, err := svc.GetVideoDetail(context.Background(), 42, 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestGetVideoDetailAggregates(t *testing.T) {
	svc, videoRepo, likeRepo, subRepo, _ := newTestVideoService()
	ctx := context.Background()

	video := &model.Video{OwnerID: 2, Title: "t", IsPublished: true}
	require.NoError(t, videoRepo.Create(video))

	// 用户3和4赞了视频，用户3订阅了作者
	require.NoError(t, likeRepo.CreateVideoLike(3, video.ID))
	require.NoError(t, likeRepo.CreateVideoLike(4, video.ID))
	require.NoError(t, subRepo.Create(3, 2))

	detail, err := svc.GetVideoDetail(ctx, video.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.LikesCount)
	assert.True(t, detail.IsLiked)
	assert.Equal(t, int64(1), detail.Owner.SubscribersCount)
	assert.True(t, detail.Owner.IsSubscribed)

	// 换个没赞过没订阅的访问者
	detail, err = svc.GetVideoDetail(ctx, video.ID, 5)
	require.NoError(t, err)
	assert.False(t, detail.IsLiked)
	assert.False(t, detail.Owner.IsSubscribed)

	// 未登录访客
	detail, err = svc.GetVideoDetail(ctx, video.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.LikesCount)
	assert.False(t, detail.IsLiked)
}

func TestUpdateVideoOnlyByOwner(t *testing.T) {
	svc, videoRepo, _, _, _ := newTestVideoService()
	ctx := context.Background()

	video := &model.Video{OwnerID: 1, Title: "old", IsPublished: true}
	require.NoError(t, videoRepo.Create(video))

	_, err := svc.UpdateVideo(ctx, video.ID, 2, "new", "", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	updated, err := svc.UpdateVideo(ctx, video.ID, 1, "new", "", "")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
}

func TestUpdateVideoReplacesThumbnail(t *testing.T) {
	svc, videoRepo, _, _, media := newTestVideoService()
	ctx := context.Background()

	video := &model.Video{OwnerID: 1, Title: "t", ThumbnailKey: "old-thumb", IsPublished: true}
	require.NoError(t, videoRepo.Create(video))

	updated, err := svc.UpdateVideo(ctx, video.ID, 1, "", "", "/tmp/new.jpg")
	require.NoError(t, err)
	assert.Equal(t, "asset-1", updated.ThumbnailKey)
	// 旧封面被释放
	assert.Contains(t, media.deleted, "old-thumb")
}
