package handler

import (
	"net/http"

	"VidTube/internal/dto"
	"VidTube/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

type tweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "推文内容不能为空")
		return
	}

	tweet, err := h.tweetService.CreateTweet(currentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusCreated, dto.ToTweetResponse(tweet), "推文发布成功")
}

func (h *TweetHandler) GetUserTweets(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	tweets, err := h.tweetService.GetUserTweets(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToTweetResponses(tweets), "获取用户推文成功")
}
