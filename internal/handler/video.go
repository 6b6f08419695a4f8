package handler

import (
	"net/http"
	"strconv"

	"VidTube/internal/config"
	"VidTube/internal/dto"
	"VidTube/internal/repository"
	"VidTube/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService service.VideoService
	cfg          config.Config
}

func NewVideoHandler(videoService service.VideoService, cfg config.Config) *VideoHandler {
	return &VideoHandler{videoService: videoService, cfg: cfg}
}

// GetFeed feed流：支持文本搜索、按作者过滤、排序和分页
// 参数不合法时的兜底都在query包里做，这里只负责解析
func (h *VideoHandler) GetFeed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var ownerID uint64
	if userIDStr := c.Query("userId"); userIDStr != "" {
		parsed, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			sendErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
			return
		}
		ownerID = parsed
	}

	videoPage, err := h.videoService.GetFeed(repository.FeedOptions{
		Query:    c.Query("query"),
		OwnerID:  ownerID,
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToVideoPage(videoPage), "获取视频列表成功")
}

// CreateVideo 发布视频，multipart表单：标题+描述+时长 + 视频文件和封面
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		sendErrorResponse(c, http.StatusBadRequest, "标题是必填项")
		return
	}
	description := c.PostForm("description")

	var duration float64
	if durationStr := c.PostForm("duration"); durationStr != "" {
		parsed, err := strconv.ParseFloat(durationStr, 64)
		if err != nil || parsed < 0 {
			sendErrorResponse(c, http.StatusBadRequest, "无效的视频时长")
			return
		}
		duration = parsed
	}

	// 两个文件都确认存在之后才开始落盘
	if _, err := c.FormFile("videoFile"); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "视频文件是必传项")
		return
	}
	if _, err := c.FormFile("thumbnail"); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "封面是必传项")
		return
	}

	videoPath, err := saveTempFile(c, "videoFile", h.cfg.TempDir)
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件接收失败")
		return
	}
	defer removeTempFile(videoPath)

	thumbnailPath, err := saveTempFile(c, "thumbnail", h.cfg.TempDir)
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件接收失败")
		return
	}
	defer removeTempFile(thumbnailPath)

	video, err := h.videoService.Publish(c.Request.Context(), service.PublishInput{
		OwnerID:       currentUserID(c),
		Title:         title,
		Description:   description,
		Duration:      duration,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusCreated, dto.ToVideoResponse(video), "视频发布成功")
}

// GetVideoByID 详情页，可选认证：登录用户能看到自己的点赞/订阅状态
func (h *VideoHandler) GetVideoByID(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}

	detail, err := h.videoService.GetVideoDetail(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, detail, "获取视频详情成功")
}

// UpdateVideo 更新标题/描述，可以顺带换封面
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")

	thumbnailPath := ""
	if _, err := c.FormFile("thumbnail"); err == nil {
		thumbnailPath, err = saveTempFile(c, "thumbnail", h.cfg.TempDir)
		if err != nil {
			sendErrorResponse(c, http.StatusInternalServerError, "文件接收失败")
			return
		}
		defer removeTempFile(thumbnailPath)
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), videoID, currentUserID(c), title, description, thumbnailPath)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToVideoResponse(video), "视频更新成功")
}
