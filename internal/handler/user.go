package handler

import (
	"net/http"

	"VidTube/internal/config"
	"VidTube/internal/dto"
	"VidTube/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	cfg         config.Config
}

func NewUserHandler(userService service.UserService, cfg config.Config) *UserHandler {
	return &UserHandler{userService: userService, cfg: cfg}
}

// setAuthCookies 两个令牌都走httpOnly cookie，前端js拿不到
func (h *UserHandler) setAuthCookies(c *gin.Context, pair service.TokenPair) {
	c.SetCookie("accessToken", pair.AccessToken, int(h.cfg.AccessTokenTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	c.SetCookie("refreshToken", pair.RefreshToken, int(h.cfg.RefreshTokenTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", h.cfg.CookieSecure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.cfg.CookieSecure, true)
}

// Register 注册接口，multipart表单：文本字段 + 头像（必传）+ 封面（可选）
// 所有校验都在落盘和上传之前做完，校验不过不产生任何副作用
func (h *UserHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	fullName := c.PostForm("fullName")
	if username == "" || email == "" || password == "" || fullName == "" {
		sendErrorResponse(c, http.StatusBadRequest, "所有字段都是必填的")
		return
	}

	// 头像必传，先确认文件在不在再落盘
	if _, err := c.FormFile("avatar"); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "头像是必传项")
		return
	}

	avatarPath, err := saveTempFile(c, "avatar", h.cfg.TempDir)
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件接收失败")
		return
	}
	defer removeTempFile(avatarPath)

	coverPath := ""
	if _, err := c.FormFile("coverImage"); err == nil {
		coverPath, err = saveTempFile(c, "coverImage", h.cfg.TempDir)
		if err != nil {
			sendErrorResponse(c, http.StatusInternalServerError, "文件接收失败")
			return
		}
		defer removeTempFile(coverPath)
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Username:   username,
		Email:      email,
		Password:   password,
		FullName:   fullName,
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	sendResponse(c, http.StatusCreated, dto.ToUserResponse(user), "用户注册成功")
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的请求参数")
		return
	}
	if req.Username == "" && req.Email == "" {
		sendErrorResponse(c, http.StatusBadRequest, "用户名和邮箱至少填一个")
		return
	}

	user, pair, err := h.userService.Login(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	sendResponse(c, http.StatusOK, gin.H{
		"user":         dto.ToUserResponse(user),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "登录成功")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	h.clearAuthCookies(c)
	sendResponse(c, http.StatusOK, nil, "退出登录成功")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken 刷新令牌可以来自cookie，也可以放在请求体里
func (h *UserHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie("refreshToken")
	if refreshToken == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		sendErrorResponse(c, http.StatusUnauthorized, "请求未包含刷新令牌")
		return
	}

	pair, err := h.userService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	sendResponse(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "令牌刷新成功")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "新旧密码都是必填的")
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), currentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, nil, "密码修改成功")
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToUserResponse(user), "获取当前用户成功")
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的请求参数")
		return
	}

	user, err := h.userService.UpdateAccount(c.Request.Context(), currentUserID(c), req.FullName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToUserResponse(user), "账户信息更新成功")
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	if _, err := c.FormFile("avatar"); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "头像是必传项")
		return
	}
	localPath, err := saveTempFile(c, "avatar", h.cfg.TempDir)
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件接收失败")
		return
	}
	defer removeTempFile(localPath)

	user, err := h.userService.UpdateAvatar(c.Request.Context(), currentUserID(c), localPath)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToUserResponse(user), "头像更新成功")
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	if _, err := c.FormFile("coverImage"); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "封面是必传项")
		return
	}
	localPath, err := saveTempFile(c, "coverImage", h.cfg.TempDir)
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件接收失败")
		return
	}
	defer removeTempFile(localPath)

	user, err := h.userService.UpdateCover(c.Request.Context(), currentUserID(c), localPath)
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToUserResponse(user), "封面更新成功")
}

func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		sendErrorResponse(c, http.StatusBadRequest, "用户名不能为空")
		return
	}

	profile, err := h.userService.GetChannelProfile(c.Request.Context(), username, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, profile, "获取频道信息成功")
}

func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	videos, err := h.userService.GetWatchHistory(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sendResponse(c, http.StatusOK, dto.ToVideoResponses(videos), "获取观看历史成功")
}
