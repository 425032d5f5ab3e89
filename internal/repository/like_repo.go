package repository

import (
	"context"

	"Vidtube/internal/model"
	"Vidtube/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Toggle 有就删、没有就建，返回操作之后是否处于点赞状态
	Toggle(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error)
	DeleteByTargets(ctx context.Context, targetType model.LikeTargetType, targetIDs []uint64) error
	LikedVideos(ctx context.Context, userID uint64) ([]model.Video, error)

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

// Toggle 先删后插：1、DELETE命中一行说明原来点过赞，这次是取消 2、否则INSERT ... ON DUPLICATE KEY无操作，唯一索引兜住并发的重复插入
// 两个并发的取消只有一个能删到行，另一个会变成一次点赞，不会出现重复记录
func (r *likeRepository) Toggle(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	// gorm的Where+Delete碰到零值条件会翻译出意外的SQL，这里直接写原生语句
	result := r.db.WithContext(ctx).Exec(
		"DELETE FROM likes WHERE liked_by = ? AND target_type = ? AND target_id = ?",
		userID, target.Type, target.ID,
	)
	if result.Error != nil {
		logger.Log.WithError(result.Error).Error("MySQL删除点赞失败")
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	like := &model.Like{LikedBy: userID, TargetType: target.Type, TargetID: target.ID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
		logger.Log.WithError(err).Error("MySQL添加点赞失败")
		return false, err
	}
	return true, nil
}

func (r *likeRepository) DeleteByTargets(ctx context.Context, targetType model.LikeTargetType, targetIDs []uint64) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&model.Like{}).Error
}

// LikedVideos 用户点过赞的视频，最近点的在前；别人未发布的视频不展示
func (r *likeRepository) LikedVideos(ctx context.Context, userID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Joins("JOIN likes l ON l.target_id = videos.id AND l.target_type = ? AND l.liked_by = ?", model.LikeTargetVideo, userID).
		Scopes(visibleTo(userID)).
		Preload("Owner", publicUserColumns).
		Order("l.created_at DESC").
		Order("l.id DESC").
		Find(&videos).Error
	return videos, err
}
