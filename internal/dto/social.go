package dto

import (
	"time"

	"Vidtube/internal/model"
)

type LikeToggleResponse struct {
	Liked bool `json:"liked"`
}

type SubscriptionToggleResponse struct {
	Subscribed bool `json:"subscribed"`
}

// SubscriptionResponse 订阅关系，按查询方向只填subscriber或channel中的一个
type SubscriptionResponse struct {
	ID         uint64    `json:"id"`
	Subscriber *UserInfo `json:"subscriber,omitempty"`
	Channel    *UserInfo `json:"channel,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChannelSubscribersResponse 频道主页加上订阅者列表
type ChannelSubscribersResponse struct {
	Channel     ChannelProfileResponse `json:"channel"`
	Subscribers []SubscriptionResponse `json:"subscribers"`
}

func ToSubscriberResponses(subs []model.Subscription) []SubscriptionResponse {
	resp := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		resp = append(resp, SubscriptionResponse{
			ID:         subs[i].ID,
			Subscriber: ownerInfo(&subs[i].Subscriber),
			CreatedAt:  subs[i].CreatedAt,
		})
	}
	return resp
}

func ToSubscribedChannelResponses(subs []model.Subscription) []SubscriptionResponse {
	resp := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		resp = append(resp, SubscriptionResponse{
			ID:        subs[i].ID,
			Channel:   ownerInfo(&subs[i].Channel),
			CreatedAt: subs[i].CreatedAt,
		})
	}
	return resp
}
