package repository

import (
	"context"
	"time"

	"Vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChannelProfile 频道主页：用户公开字段加上订阅相关的聚合
type ChannelProfile struct {
	ID                        uint64
	Username                  string
	FullName                  string
	Email                     string
	AvatarURL                 string
	CoverURL                  string
	CreatedAt                 time.Time
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// 用户仓库接口：1、注册和登录查询 2、refresh token的保存和轮换 3、资料修改 4、频道主页聚合和观看记录
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID uint64) (*model.User, error)
	FindByLogin(ctx context.Context, email, username string) (*model.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, userID uint64) (bool, error)

	SetRefreshToken(ctx context.Context, userID uint64, token string) error
	RotateRefreshToken(ctx context.Context, userID uint64, oldToken, newToken string) (bool, error)
	UpdatePassword(ctx context.Context, userID uint64, hashed string) error
	UpdateAccount(ctx context.Context, userID uint64, fullName, email string) error
	UpdateAvatar(ctx context.Context, userID uint64, url string) error
	UpdateCover(ctx context.Context, userID uint64, url string) error

	ChannelProfileByUsername(ctx context.Context, username string, viewerID uint64) (*ChannelProfile, error)
	ChannelProfileByID(ctx context.Context, channelID, viewerID uint64) (*ChannelProfile, error)

	WatchHistory(ctx context.Context, userID uint64) ([]model.Video, error)
	RecordWatch(ctx context.Context, userID, videoID uint64, at time.Time) error
	DeleteWatchHistoryByVideo(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) UserRepository
}

// 数据库接口封装
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, userID uint64) (*model.User, error) {
	var result model.User
	if err := r.db.WithContext(ctx).First(&result, userID).Error; err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

// FindByLogin 邮箱或用户名登录，哪个不为空就按哪个查
func (r *userRepository) FindByLogin(ctx context.Context, email, username string) (*model.User, error) {
	var result model.User
	err := r.byEmailOrUsername(ctx, email, username).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.byEmailOrUsername(ctx, email, username).Model(&model.User{}).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) byEmailOrUsername(ctx context.Context, email, username string) *gorm.DB {
	db := r.db.WithContext(ctx)
	switch {
	case email != "" && username != "":
		return db.Where("email = ? OR username = ?", email, username)
	case email != "":
		return db.Where("email = ?", email)
	default:
		return db.Where("username = ?", username)
	}
}

func (r *userRepository) EmailTakenByOther(ctx context.Context, email string, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

// SetRefreshToken 登录时覆盖，登出时清空
func (r *userRepository) SetRefreshToken(ctx context.Context, userID uint64, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error
}

// RotateRefreshToken 比较并交换：只有库里存的还是oldToken才换成newToken，返回是否换成功
// UPDATE `users` SET `refresh_token` = ? WHERE id = ? AND refresh_token = ?
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID uint64, oldToken, newToken string) (bool, error) {
	if oldToken == "" {
		return false, nil
	}
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", userID, oldToken).
		Update("refresh_token", newToken)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint64, hashed string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hashed).Error
}

func (r *userRepository) UpdateAccount(ctx context.Context, userID uint64, fullName, email string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"full_name": fullName, "email": email}).Error
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID uint64, url string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error
}

func (r *userRepository) UpdateCover(ctx context.Context, userID uint64, url string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("cover_url", url).Error
}

// 频道主页只用一条SQL：两个相关子查询做计数，EXISTS判断当前访问者是否已订阅；匿名访问时viewerID为0，EXISTS恒为假
const channelProfileSQL = `
SELECT u.id, u.username, u.full_name, u.email, u.avatar_url, u.cover_url, u.created_at,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_to_count,
	EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = @viewer) AS is_subscribed
FROM users u
WHERE u.deleted_at IS NULL AND `

func (r *userRepository) ChannelProfileByUsername(ctx context.Context, username string, viewerID uint64) (*ChannelProfile, error) {
	return r.channelProfile(ctx, "u.username = @target", username, viewerID)
}

func (r *userRepository) ChannelProfileByID(ctx context.Context, channelID, viewerID uint64) (*ChannelProfile, error) {
	return r.channelProfile(ctx, "u.id = @target", channelID, viewerID)
}

func (r *userRepository) channelProfile(ctx context.Context, cond string, target interface{}, viewerID uint64) (*ChannelProfile, error) {
	var profile ChannelProfile
	result := r.db.WithContext(ctx).
		Raw(channelProfileSQL+cond+" LIMIT 1", map[string]interface{}{"viewer": viewerID, "target": target}).
		Scan(&profile)
	if result.Error != nil {
		return nil, result.Error
	}
	// Raw+Scan查不到不会报ErrRecordNotFound，要自己判断
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

// WatchHistory 观看记录：视频join观看表，最近看的排前面，作者只预加载公开字段，两条查询没有N+1
func (r *userRepository) WatchHistory(ctx context.Context, userID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Joins("JOIN watch_histories wh ON wh.video_id = videos.id AND wh.user_id = ?", userID).
		Preload("Owner", publicUserColumns).
		Order("wh.watched_at DESC").
		Find(&videos).Error
	return videos, err
}

// RecordWatch 追加观看记录，同一个视频再看只刷新时间
func (r *userRepository) RecordWatch(ctx context.Context, userID, videoID uint64, at time.Time) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: at}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(entry).Error
}

func (r *userRepository) DeleteWatchHistoryByVideo(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.WatchHistory{}).Error
}
