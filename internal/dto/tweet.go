package dto

import (
	"time"

	"Vidtube/internal/model"
)

type TweetResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	OwnerID   uint64    `json:"ownerId"`
	Owner     *UserInfo `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToTweetResponse(tweet *model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        tweet.ID,
		Content:   tweet.Content,
		OwnerID:   tweet.OwnerID,
		Owner:     ownerInfo(&tweet.Owner),
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
	}
}

func ToTweetResponses(tweets []model.Tweet) []TweetResponse {
	resp := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		resp = append(resp, ToTweetResponse(&tweets[i]))
	}
	return resp
}
