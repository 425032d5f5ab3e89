package dto

import (
	"time"

	"Vidtube/internal/model"
	"Vidtube/internal/repository"
)

type VideoResponse struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     float64   `json:"duration"`
	Views        uint64    `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	OwnerID      uint64    `json:"ownerId"`
	Owner        *UserInfo `json:"owner"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToVideoResponse 把DB模型转换为API响应模型，作者没有preload时owner为null
func ToVideoResponse(video *model.Video) VideoResponse {
	return VideoResponse{
		ID:           video.ID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.Views,
		IsPublished:  video.IsPublished,
		OwnerID:      video.OwnerID,
		Owner:        ownerInfo(&video.Owner),
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	// 空列表也要序列化成[]而不是null
	resp := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		resp = append(resp, ToVideoResponse(&videos[i]))
	}
	return resp
}

type ChannelStatsResponse struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

func ToChannelStatsResponse(s *repository.ChannelStats) ChannelStatsResponse {
	return ChannelStatsResponse{
		TotalVideos:      s.TotalVideos,
		TotalViews:       s.TotalViews,
		TotalSubscribers: s.TotalSubscribers,
		TotalLikes:       s.TotalLikes,
	}
}
