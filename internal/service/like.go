package service

import (
	"context"
	"fmt"

	"Vidtube/internal/apperror"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/pkg/logger"
)

type LikeService interface {
	// Toggle 点赞/取消点赞，返回操作后是否处于点赞状态
	Toggle(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error)
	LikedVideos(ctx context.Context, userID uint64) ([]model.Video, error)
}

// 点赞前要确认目标存在，三种目标各用各的仓库
type likeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// 点赞切换：1、检查目标是否存在 2、仓库里先删后插完成切换
func (s *likeService) Toggle(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	if err := s.ensureTarget(ctx, userID, target); err != nil {
		return false, err
	}
	liked, err := s.likeRepo.Toggle(ctx, userID, target)
	if err != nil {
		return false, err
	}
	logger.Log.WithField("user_id", userID).
		WithField("target_type", target.Type).
		WithField("target_id", target.ID).
		WithField("liked", liked).
		Info("点赞状态切换")
	return liked, nil
}

func (s *likeService) ensureTarget(ctx context.Context, userID uint64, target model.LikeTarget) error {
	switch target.Type {
	case model.LikeTargetVideo:
		video, err := s.videoRepo.FindByID(ctx, target.ID)
		if err != nil {
			return notFoundOr(err, "Video not found")
		}
		if !video.IsPublished && video.OwnerID != userID {
			return apperror.NotFound("Video not found")
		}
	case model.LikeTargetComment:
		if _, err := s.commentRepo.FindByID(ctx, target.ID); err != nil {
			return notFoundOr(err, "Comment not found")
		}
	case model.LikeTargetTweet:
		if _, err := s.tweetRepo.FindByID(ctx, target.ID); err != nil {
			return notFoundOr(err, "Tweet not found")
		}
	default:
		return fmt.Errorf("unknown like target type %q", target.Type)
	}
	return nil
}

func (s *likeService) LikedVideos(ctx context.Context, userID uint64) ([]model.Video, error) {
	return s.likeRepo.LikedVideos(ctx, userID)
}
