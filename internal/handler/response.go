package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"VidTube/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response 是统一的成功响应信封
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 是统一的错误响应信封
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func sendResponse(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// sendErrorResponse 发送标准格式的错误响应并中断后续handler
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		StatusCode: code,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// respondError 是错误的统一出口：带状态码的业务错误原样翻译，
// 其余一律按500处理，内部细节不能漏给调用方
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		sendErrorResponse(c, appErr.Code, appErr.Message)
		return
	}
	sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
}

// currentUserID 从认证中间件写入的context里取用户ID，0表示未登录
func currentUserID(c *gin.Context) uint64 {
	v, exists := c.Get("userID")
	if !exists {
		return 0
	}
	userID, ok := v.(uint64)
	if !ok {
		return 0
	}
	return userID
}

// parseIDParam 解析路径里的数字ID，格式不对直接在入口挡掉，不去查库
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// saveTempFile 把上传的文件落到临时目录，文件名用uuid避免互相覆盖
// 返回的路径交给媒体存储上传，上传侧负责删掉它
func saveTempFile(c *gin.Context, field, tempDir string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", err
	}
	localPath := filepath.Join(tempDir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}

// removeTempFile 兜底清理，正常流程里文件已被上传侧删掉，这里删不到也无所谓
func removeTempFile(localPath string) {
	if localPath != "" {
		_ = os.Remove(localPath)
	}
}
