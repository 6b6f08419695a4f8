package service

import (
	"net/http"
	"testing"

	"VidTube/internal/apperr"
	"VidTube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService() (CommentService, *fakeCommentRepo, *fakeLikeRepo, *fakeVideoRepo) {
	commentRepo := newFakeCommentRepo()
	likeRepo := newFakeLikeRepo()
	videoRepo := newFakeVideoRepo()
	uow := &fakeUnitOfWork{commentRepo: commentRepo, likeRepo: likeRepo}
	svc := NewCommentService(commentRepo, likeRepo, videoRepo, uow)
	return svc, commentRepo, likeRepo, videoRepo
}

func TestCreateCommentUnknownVideo(t *testing.T) {
	svc, _, _, _ := newTestCommentService()

	_, err := svc.CreateComment(1, 99, "hello")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestUpdateCommentOnlyByAuthor(t *testing.T) {
	svc, _, _, videoRepo := newTestCommentService()

	video := &model.Video{OwnerID: 1, IsPublished: true}
	require.NoError(t, videoRepo.Create(video))

	comment, err := svc.CreateComment(2, video.ID, "original")
	require.NoError(t, err)

	_, err = svc.UpdateComment(3, comment.ID, "hacked")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	updated, err := svc.UpdateComment(2, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteCommentCascadesLikes(t *testing.T) {
	svc, commentRepo, likeRepo, videoRepo := newTestCommentService()

	video := &model.Video{OwnerID: 1, IsPublished: true}
	require.NoError(t, videoRepo.Create(video))

	comment, err := svc.CreateComment(2, video.ID, "to delete")
	require.NoError(t, err)
	require.NoError(t, likeRepo.CreateCommentLike(3, comment.ID))
	require.NoError(t, likeRepo.CreateCommentLike(4, comment.ID))

	// 非作者删不掉
	err = svc.DeleteComment(3, comment.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	require.NoError(t, svc.DeleteComment(2, comment.ID))
	_, err = commentRepo.FindByID(comment.ID)
	assert.Error(t, err)
	// 评论上的点赞一并消失
	assert.Empty(t, likeRepo.commentLikes)
}

func TestGetCommentsAggregatesLikes(t *testing.T) {
	svc, _, likeRepo, videoRepo := newTestCommentService()

	video := &model.Video{OwnerID: 1, IsPublished: true}
	require.NoError(t, videoRepo.Create(video))

	first, err := svc.CreateComment(2, video.ID, "first")
	require.NoError(t, err)
	second, err := svc.CreateComment(3, video.ID, "second")
	require.NoError(t, err)

	require.NoError(t, likeRepo.CreateCommentLike(4, first.ID))
	require.NoError(t, likeRepo.CreateCommentLike(5, first.ID))
	require.NoError(t, likeRepo.CreateCommentLike(4, second.ID))

	page, err := svc.GetComments(video.ID, 4, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Docs, 2)
	assert.Equal(t, int64(2), page.TotalDocs)

	// 最新的在前
	assert.Equal(t, second.ID, page.Docs[0].ID)
	assert.Equal(t, int64(1), page.Docs[0].LikesCount)
	assert.True(t, page.Docs[0].IsLiked)

	assert.Equal(t, first.ID, page.Docs[1].ID)
	assert.Equal(t, int64(2), page.Docs[1].LikesCount)
	assert.True(t, page.Docs[1].IsLiked)

	// 没赞过的访问者
	page, err = svc.GetComments(video.ID, 6, 1, 10)
	require.NoError(t, err)
	assert.False(t, page.Docs[0].IsLiked)
}
