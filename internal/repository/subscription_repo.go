package repository

import (
	"context"

	"Vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	// Toggle 返回操作之后是否处于订阅状态
	Toggle(ctx context.Context, subscriberID, channelID uint64) (bool, error)
	Subscribers(ctx context.Context, channelID uint64) ([]model.Subscription, error)
	SubscribedChannels(ctx context.Context, subscriberID uint64) ([]model.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle 和点赞一样先删后插，(subscriber_id, channel_id)的唯一索引保证最多一条
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?",
		subscriberID, channelID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Subscribers 频道的订阅者，只带公开字段
func (r *subscriptionRepository) Subscribers(ctx context.Context, channelID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.WithContext(ctx).
		Preload("Subscriber", publicUserColumns).
		Where("channel_id = ?", channelID).
		Order("created_at desc").
		Find(&subs).Error
	return subs, err
}

// SubscribedChannels 某个用户订阅的频道
func (r *subscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.WithContext(ctx).
		Preload("Channel", publicUserColumns).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at desc").
		Find(&subs).Error
	return subs, err
}
