package service

import (
	"context"
	"errors"
	"strings"

	"Vidtube/internal/apperror"
	"Vidtube/internal/auth"
	"Vidtube/internal/media"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/pkg/logger"

	"gorm.io/gorm"
)

// TokenIssuer 签发和校验令牌
type TokenIssuer interface {
	IssuePair(userID uint64, username, email string) (auth.TokenPair, error)
	ParseRefresh(tokenString string) (*auth.RefreshClaims, error)
}

// RegisterInput 注册表单，头像和封面是已经落到本地临时目录的文件路径
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	AvatarPath string
	CoverPath  string
}

// 用户服务接口：1、注册登录和令牌生命周期 2、资料修改 3、频道主页和观看记录
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, username, password string) (*model.User, auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
	Logout(ctx context.Context, userID uint64) error
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error

	CurrentUser(ctx context.Context, userID uint64) (*model.User, error)
	UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error)
	UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error)

	ChannelProfile(ctx context.Context, username string, viewerID uint64) (*repository.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID uint64) ([]model.Video, error)
}

// 用户服务包装
type userService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	uploader media.Uploader
	janitor  MediaJanitor
}

func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer, uploader media.Uploader, janitor MediaJanitor) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		uploader: uploader,
		janitor:  janitor,
	}
}

// 注册逻辑：1、规整输入并检查邮箱/用户名是否已占用 2、头像必传 3、上传头像和可选封面 4、密码加密后入库
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	logCtx := logger.Log.WithField("email", email).WithField("username", username)

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("Email or username already exists")
	}
	if in.AvatarPath == "" {
		return nil, apperror.BadRequest("Avatar is required")
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.uploader.Upload(ctx, in.AvatarPath, media.KindAvatar)
	if err != nil {
		return nil, apperror.Upstream("Avatar upload failed", err)
	}
	var coverURL string
	if in.CoverPath != "" {
		cover, err := s.uploader.Upload(ctx, in.CoverPath, media.KindCover)
		if err != nil {
			s.janitor.Discard("register rollback", avatar.URL)
			return nil, apperror.Upstream("Cover image upload failed", err)
		}
		coverURL = cover.URL
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		FullName:  strings.TrimSpace(in.FullName),
		Password:  hashed,
		AvatarURL: avatar.URL,
		CoverURL:  coverURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 检查和插入之间被别人抢注，唯一索引兜底
		s.janitor.Discard("register rollback", avatar.URL, coverURL)
		if apperror.IsDuplicateKey(err) {
			return nil, apperror.Conflict("Email or username already exists")
		}
		return nil, err
	}
	logCtx.WithField("user_id", user.ID).Info("用户注册成功")
	return user, nil
}

// 登录逻辑：1、邮箱或用户名至少一个 2、查用户并比对密码，对外统一提示 3、签发一对令牌，refresh token落库
func (s *userService) Login(ctx context.Context, email, username, password string) (*model.User, auth.TokenPair, error) {
	email = normalizeEmail(email)
	username = strings.ToLower(strings.TrimSpace(username))
	if email == "" && username == "" {
		return nil, auth.TokenPair{}, apperror.BadRequest("Username or email is required")
	}

	user, err := s.userRepo.FindByLogin(ctx, email, username)
	if err != nil {
		// 用户不存在和密码错误用同一个模糊提示，更安全
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.TokenPair{}, apperror.Unauthorized("Invalid user credentials")
		}
		return nil, auth.TokenPair{}, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, auth.TokenPair{}, apperror.Unauthorized("Invalid user credentials")
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// 刷新令牌：1、校验签名和过期 2、用户还在 3、签发新的一对，用CAS替换库里的旧值，旧值对不上说明已经被用过
// 任何校验失败都收窄成401
func (s *userService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		logger.Log.WithError(err).Info("refresh token校验失败")
		return auth.TokenPair{}, apperror.Unauthorized("Invalid refresh token")
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.TokenPair{}, apperror.Unauthorized("Invalid refresh token")
		}
		return auth.TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Username, user.Email)
	if err != nil {
		return auth.TokenPair{}, err
	}
	swapped, err := s.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if !swapped {
		logger.Log.WithField("user_id", user.ID).Warn("refresh token已失效或已被使用")
		return auth.TokenPair{}, apperror.Unauthorized("Refresh token is expired or used")
	}
	return pair, nil
}

func (s *userService) Logout(ctx context.Context, userID uint64) error {
	return s.userRepo.SetRefreshToken(ctx, userID, "")
}

func (s *userService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	if !auth.CheckPassword(user.Password, oldPassword) {
		return apperror.BadRequest("Invalid old password")
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

func (s *userService) CurrentUser(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return user, nil
}

// 修改资料：邮箱被别人占用返回409
func (s *userService) UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*model.User, error) {
	email = normalizeEmail(email)
	taken, err := s.userRepo.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("Email already in use")
	}
	if err := s.userRepo.UpdateAccount(ctx, userID, strings.TrimSpace(fullName), email); err != nil {
		if apperror.IsDuplicateKey(err) {
			return nil, apperror.Conflict("Email already in use")
		}
		return nil, err
	}
	return s.CurrentUser(ctx, userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	return s.replaceImage(ctx, userID, localPath, media.KindAvatar)
}

func (s *userService) UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	return s.replaceImage(ctx, userID, localPath, media.KindCover)
}

// replaceImage 换头像/封面：1、上传新图 2、更新库 3、旧图交给清理队列
func (s *userService) replaceImage(ctx context.Context, userID uint64, localPath string, kind media.Kind) (*model.User, error) {
	field, update := "Avatar", s.userRepo.UpdateAvatar
	if kind == media.KindCover {
		field, update = "Cover image", s.userRepo.UpdateCover
	}
	if localPath == "" {
		return nil, apperror.BadRequest(field + " file is missing")
	}

	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldURL := user.AvatarURL
	if kind == media.KindCover {
		oldURL = user.CoverURL
	}

	asset, err := s.uploader.Upload(ctx, localPath, kind)
	if err != nil {
		return nil, apperror.Upstream("Error while uploading "+strings.ToLower(field), err)
	}
	if err := update(ctx, userID, asset.URL); err != nil {
		s.janitor.Discard("update rollback", asset.URL)
		return nil, err
	}
	s.janitor.Discard(string(kind)+" replaced", oldURL)

	return s.CurrentUser(ctx, userID)
}

func (s *userService) ChannelProfile(ctx context.Context, username string, viewerID uint64) (*repository.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperror.BadRequest("Username is missing")
	}
	profile, err := s.userRepo.ChannelProfileByUsername(ctx, username, viewerID)
	if err != nil {
		return nil, notFoundOr(err, "Channel does not exist")
	}
	return profile, nil
}

func (s *userService) WatchHistory(ctx context.Context, userID uint64) ([]model.Video, error) {
	return s.userRepo.WatchHistory(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
