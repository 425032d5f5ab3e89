package service

import (
	"context"

	"Vidtube/internal/apperror"
	"Vidtube/internal/model"
	"Vidtube/internal/repository"
	"Vidtube/pkg/logger"
)

type SubscriptionService interface {
	// Toggle 返回操作后是否处于订阅状态
	Toggle(ctx context.Context, subscriberID, channelID uint64) (bool, error)
	// ChannelSubscribers 频道主页（带当前访问者是否已订阅）和订阅者列表
	ChannelSubscribers(ctx context.Context, channelID, viewerID uint64) (*repository.ChannelProfile, []model.Subscription, error)
	SubscribedChannels(ctx context.Context, subscriberID uint64) ([]model.Subscription, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// 订阅切换：1、不能订阅自己 2、频道必须存在 3、先删后插
func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	if subscriberID == channelID {
		return false, apperror.BadRequest("You cannot subscribe to your own channel")
	}
	if _, err := s.userRepo.FindByID(ctx, channelID); err != nil {
		return false, notFoundOr(err, "Channel not found")
	}
	subscribed, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	logger.Log.WithField("subscriber_id", subscriberID).
		WithField("channel_id", channelID).
		WithField("subscribed", subscribed).
		Info("订阅状态切换")
	return subscribed, nil
}

func (s *subscriptionService) ChannelSubscribers(ctx context.Context, channelID, viewerID uint64) (*repository.ChannelProfile, []model.Subscription, error) {
	profile, err := s.userRepo.ChannelProfileByID(ctx, channelID, viewerID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Channel not found")
	}
	subs, err := s.subRepo.Subscribers(ctx, channelID)
	if err != nil {
		return nil, nil, err
	}
	return profile, subs, nil
}

func (s *subscriptionService) SubscribedChannels(ctx context.Context, subscriberID uint64) ([]model.Subscription, error) {
	if _, err := s.userRepo.FindByID(ctx, subscriberID); err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return s.subRepo.SubscribedChannels(ctx, subscriberID)
}
