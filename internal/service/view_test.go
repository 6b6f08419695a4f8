package service

import (
	"testing"

	"VidTube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 访客观看：播放量+1，但不产生观看历史
func TestHandleViewAnonymousViewer(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	userRepo := newFakeUserRepo()
	require.NoError(t, videoRepo.Create(&model.Video{OwnerID: 1, Title: "t", IsPublished: true}))

	handler := NewViewEventHandler(videoRepo, userRepo)
	require.NoError(t, handler.Handle(ViewMessage{VideoID: 1, ViewerID: 0}))

	assert.EqualValues(t, 1, videoRepo.videos[1].Views)
	assert.Empty(t, userRepo.history)
}

// MQ是至少一次投递，同一条消息消费两次：播放量会多算，但历史只留一行
func TestHandleViewDuplicateDelivery(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	userRepo := newFakeUserRepo()
	require.NoError(t, videoRepo.Create(&model.Video{OwnerID: 1, Title: "t", IsPublished: true}))

	handler := NewViewEventHandler(videoRepo, userRepo)
	msg := ViewMessage{VideoID: 1, ViewerID: 9}
	require.NoError(t, handler.Handle(msg))
	require.NoError(t, handler.Handle(msg))

	assert.EqualValues(t, 2, videoRepo.videos[1].Views)
	require.Len(t, userRepo.history, 1)
	assert.Equal(t, idPair{9, 1}, userRepo.history[0])
}
