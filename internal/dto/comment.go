package dto

import (
	"time"

	"Vidtube/internal/model"
)

type CommentResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	VideoID   uint64    `json:"videoId"`
	OwnerID   uint64    `json:"ownerId"`
	Owner     *UserInfo `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		VideoID:   comment.VideoID,
		OwnerID:   comment.OwnerID,
		Owner:     ownerInfo(&comment.Owner),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, ToCommentResponse(&comments[i]))
	}
	return resp
}
