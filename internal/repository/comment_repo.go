package repository

import (
	"context"

	"Vidtube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	// 分页获取视频的评论，新的在前
	ListByVideo(ctx context.Context, videoID uint64, page Pagination) ([]model.Comment, int64, error)
	UpdateContent(ctx context.Context, commentID uint64, content string) error
	Delete(ctx context.Context, commentID uint64) error

	// 删视频时级联用
	IDsByVideo(ctx context.Context, videoID uint64) ([]uint64, error)
	DeleteByVideo(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// 利用commentID找comment，并顺便将作者Preload进去
func (r *commentRepository) FindByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.WithContext(ctx).Preload("Owner", publicUserColumns).First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint64, page Pagination) ([]model.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Comment{}, 0, nil
	}

	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Owner", publicUserColumns). // 预加载评论的作者信息
		Where("video_id = ?", videoID).
		Order("created_at desc").
		Order("id desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) UpdateContent(ctx context.Context, commentID uint64, content string) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).Update("content", content).Error
}

func (r *commentRepository) Delete(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

func (r *commentRepository) IDsByVideo(ctx context.Context, videoID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).Pluck("id", &ids).Error
	return ids, err
}

func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.Comment{}).Error
}
