package handler

import (
	"net/http"

	"VidTube/internal/dto"
	"VidTube/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// 三个toggle共用一个响应形状：操作后的点赞状态
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}

	liked, err := h.likeService.ToggleVideoLike(currentUserID(c), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, gin.H{"isLiked": liked}, "操作成功")
}

func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	liked, err := h.likeService.ToggleCommentLike(currentUserID(c), commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, gin.H{"isLiked": liked}, "操作成功")
}

func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweetId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的推文ID")
		return
	}

	liked, err := h.likeService.ToggleTweetLike(currentUserID(c), tweetID)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, gin.H{"isLiked": liked}, "操作成功")
}

func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	videos, err := h.likeService.GetLikedVideos(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToVideoResponses(videos), "获取点赞视频成功")
}
