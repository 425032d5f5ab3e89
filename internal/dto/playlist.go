package dto

import (
	"time"

	"Vidtube/internal/model"
)

type PlaylistResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistDetailResponse 单个歌单详情，带作者和按加入顺序排列的视频
type PlaylistDetailResponse struct {
	PlaylistResponse
	Owner  *UserInfo       `json:"owner"`
	Videos []VideoResponse `json:"videos"`
}

func ToPlaylistResponse(p *model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPlaylistResponses(playlists []model.Playlist) []PlaylistResponse {
	resp := make([]PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		resp = append(resp, ToPlaylistResponse(&playlists[i]))
	}
	return resp
}

func ToPlaylistDetailResponse(p *model.Playlist) PlaylistDetailResponse {
	return PlaylistDetailResponse{
		PlaylistResponse: ToPlaylistResponse(p),
		Owner:            ownerInfo(&p.Owner),
		Videos:           ToVideoResponses(p.Videos),
	}
}
