package handler

import (
	"context"
	"net/http"
	"time"

	"Vidtube/internal/apperror"
	"Vidtube/internal/auth"
	"Vidtube/internal/dto"
	"Vidtube/internal/middleware"
	"Vidtube/internal/model"
	"Vidtube/internal/service"
	"Vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	RefreshToken(c *gin.Context)
	Logout(c *gin.Context)
	ChangePassword(c *gin.Context)

	CurrentUser(c *gin.Context)
	UpdateAccount(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	UpdateCover(c *gin.Context)

	ChannelProfile(c *gin.Context)
	WatchHistory(c *gin.Context)
}

type userHandler struct {
	userService  service.UserService
	uploadDir    string
	cookieSecure bool
}

func NewUserHandler(userService service.UserService, uploadDir string, cookieSecure bool) UserHandler {
	return &userHandler{
		userService:  userService,
		uploadDir:    uploadDir,
		cookieSecure: cookieSecure,
	}
}

type RegisterRequest struct {
	FullName string `form:"fullName" json:"fullName" binding:"required,notblank,trimmed_min=3"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Username string `form:"username" json:"username" binding:"required,notblank,trimmed_min=3"`
	Password string `form:"password" json:"password" binding:"required,min=8,has_upper,has_digit,has_special"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" binding:"required,min=8,has_upper,has_digit,has_special"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" form:"fullName" binding:"required,notblank,trimmed_min=3"`
	Email    string `json:"email" form:"email" binding:"required,email"`
}

// 注册：1、校验表单字段 2、头像和封面落到临时目录 3、service层上传并创建用户 4、返回不含密码的用户
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}
	paths, err := saveUploads(c, h.uploadDir, "avatar", "coverImage")
	if err != nil {
		fail(c, err)
		return
	}
	defer removeTemp(paths...)

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		AvatarPath: paths[0],
		CoverPath:  paths[1],
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

// 登录：1、邮箱或用户名加密码 2、签发一对令牌 3、令牌同时写进HttpOnly cookie和响应体
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}
	user, pair, err := h.userService.Login(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Log.WithField("user_id", user.ID).WithField("ip", c.ClientIP()).Info("用户登录成功")

	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// 刷新令牌：cookie优先，其次请求体里的refreshToken
func (h *userHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)
	if refreshToken == "" {
		var req RefreshTokenRequest
		_ = c.ShouldBind(&req)
		refreshToken = req.RefreshToken
	}
	if refreshToken == "" {
		fail(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	pair, err := h.userService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

func (h *userHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.userService.Logout(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	h.clearAuthCookies(c)
	respond(c, http.StatusOK, gin.H{}, "User logged out")
}

func (h *userHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !bind(c, &req) {
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *userHandler) CurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToUserResponse(user), "User fetched successfully")
}

func (h *userHandler) UpdateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req UpdateAccountRequest
	if !bind(c, &req) {
		return
	}
	user, err := h.userService.UpdateAccount(c.Request.Context(), userID, req.FullName, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToUserResponse(user), "Account details updated successfully")
}

func (h *userHandler) UpdateAvatar(c *gin.Context) {
	h.replaceImage(c, "avatar", h.userService.UpdateAvatar, "Avatar updated successfully")
}

func (h *userHandler) UpdateCover(c *gin.Context) {
	h.replaceImage(c, "coverImage", h.userService.UpdateCover, "Cover image updated successfully")
}

type imageUpdater func(ctx context.Context, userID uint64, localPath string) (*model.User, error)

func (h *userHandler) replaceImage(c *gin.Context, field string, update imageUpdater, message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	path, err := saveUpload(c, h.uploadDir, field)
	if err != nil {
		fail(c, err)
		return
	}
	defer removeTemp(path)

	user, err := update(c.Request.Context(), userID, path)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToUserResponse(user), message)
}

func (h *userHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userService.ChannelProfile(c.Request.Context(), c.Param("username"), viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToChannelProfileResponse(profile), "User channel fetched successfully")
}

func (h *userHandler) WatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.userService.WatchHistory(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponses(videos), "Watch history fetched successfully")
}

// 两个令牌都是HttpOnly，前端脚本读不到；Secure由配置决定，本地http开发时可以关掉
func (h *userHandler) setAuthCookies(c *gin.Context, pair auth.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, maxAge(pair.AccessExpiresAt), "/", "", h.cookieSecure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken, maxAge(pair.RefreshExpiresAt), "/", "", h.cookieSecure, true)
}

func (h *userHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookieSecure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.cookieSecure, true)
}

func maxAge(expiresAt time.Time) int {
	if secs := int(time.Until(expiresAt).Seconds()); secs > 0 {
		return secs
	}
	return -1
}
