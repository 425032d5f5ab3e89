package service

import (
	"context"
	"strings"

	"Vidtube/internal/apperror"
	"Vidtube/internal/data"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/pkg/logger"
)

type CommentService interface {
	// 分页获取一个视频的评论，未发布的视频只有作者能看评论
	GetComments(ctx context.Context, videoID, viewerID uint64, page, limit int) ([]model.Comment, int64, repository.Pagination, error)
	CreateComment(ctx context.Context, videoID, userID uint64, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, commentID, userID uint64, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	uow         data.UnitOfWork
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, uow data.UnitOfWork) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		uow:         uow,
	}
}

// visibleVideo 视频存在，并且已发布或者是作者本人
func (s *commentService) visibleVideo(ctx context.Context, videoID, viewerID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, notFoundOr(err, "Video not found")
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperror.NotFound("Video not found")
	}
	return video, nil
}

func (s *commentService) GetComments(ctx context.Context, videoID, viewerID uint64, page, limit int) ([]model.Comment, int64, repository.Pagination, error) {
	p := repository.NewPagination(page, limit)
	if _, err := s.visibleVideo(ctx, videoID, viewerID); err != nil {
		return nil, 0, p, err
	}
	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, p)
	return comments, total, p, err
}

// 创建评论：1、视频可见 2、创建 3、带着作者再查出来
func (s *commentService) CreateComment(ctx context.Context, videoID, userID uint64, content string) (*model.Comment, error) {
	if _, err := s.visibleVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: userID,
		Content: strings.TrimSpace(content),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	logger.Log.WithField("user_id", userID).WithField("video_id", videoID).WithField("comment_id", comment.ID).Info("评论创建成功")
	return s.commentRepo.FindByID(ctx, comment.ID)
}

func (s *commentService) ownedComment(ctx context.Context, commentID, userID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	if comment.OwnerID != userID {
		return nil, apperror.Forbidden("You are not allowed to modify this comment")
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, commentID, userID uint64, content string) (*model.Comment, error) {
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateContent(ctx, commentID, strings.TrimSpace(content)); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(ctx, commentID)
}

// 删除评论和它上面的点赞放在同一个事务里
func (s *commentService) DeleteComment(ctx context.Context, commentID, userID uint64) error {
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return err
	}
	return s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTargets(ctx, model.LikeTargetComment, []uint64{commentID}); err != nil {
			return err
		}
		return repos.CommentRepo.Delete(ctx, commentID)
	})
}
