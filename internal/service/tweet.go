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

type TweetService interface {
	Create(ctx context.Context, ownerID uint64, content string) (*model.Tweet, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Tweet, error)
	Update(ctx context.Context, tweetID, actorID uint64, content string) (*model.Tweet, error)
	Delete(ctx context.Context, tweetID, actorID uint64) error
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	uow       data.UnitOfWork
}

func NewTweetService(tweetRepo repository.TweetRepository, uow data.UnitOfWork) TweetService {
	return &tweetService{tweetRepo: tweetRepo, uow: uow}
}

func (s *tweetService) Create(ctx context.Context, ownerID uint64, content string) (*model.Tweet, error) {
	tweet := &model.Tweet{OwnerID: ownerID, Content: strings.TrimSpace(content)}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	logger.Log.WithField("owner_id", ownerID).WithField("tweet_id", tweet.ID).Info("推文发布成功")
	return s.tweetRepo.FindByID(ctx, tweet.ID)
}

func (s *tweetService) ListByUser(ctx context.Context, userID uint64) ([]model.Tweet, error) {
	return s.tweetRepo.ListByOwner(ctx, userID)
}

func (s *tweetService) owned(ctx context.Context, tweetID, actorID uint64) error {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return notFoundOr(err, "Tweet not found")
	}
	if tweet.OwnerID != actorID {
		return apperror.Forbidden("You are not allowed to modify this tweet")
	}
	return nil
}

func (s *tweetService) Update(ctx context.Context, tweetID, actorID uint64, content string) (*model.Tweet, error) {
	if err := s.owned(ctx, tweetID, actorID); err != nil {
		return nil, err
	}
	if err := s.tweetRepo.UpdateContent(ctx, tweetID, strings.TrimSpace(content)); err != nil {
		return nil, err
	}
	return s.tweetRepo.FindByID(ctx, tweetID)
}

// 推文和它上面的点赞一起删
func (s *tweetService) Delete(ctx context.Context, tweetID, actorID uint64) error {
	if err := s.owned(ctx, tweetID, actorID); err != nil {
		return err
	}
	return s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTargets(ctx, model.LikeTargetTweet, []uint64{tweetID}); err != nil {
			return err
		}
		return repos.TweetRepo.Delete(ctx, tweetID)
	})
}
