package handler

import (
	"net/http"
	"strconv"

	"VidTube/internal/dto"
	"VidTube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// GetComments 评论列表，可选认证：登录用户能看到自己赞过哪些评论
func (h *CommentHandler) GetComments(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	commentPage, err := h.commentService.GetComments(videoID, currentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, commentPage, "获取评论列表成功")
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "评论内容不能为空")
		return
	}

	comment, err := h.commentService.CreateComment(currentUserID(c), videoID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusCreated, dto.ToCommentResponse(comment), "评论发布成功")
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的评论ID")
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "评论内容不能为空")
		return
	}

	comment, err := h.commentService.UpdateComment(currentUserID(c), commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToCommentResponse(comment), "评论更新成功")
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	if err := h.commentService.DeleteComment(currentUserID(c), commentID); err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, nil, "评论删除成功")
}
