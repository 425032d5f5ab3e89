package handler

import (
	"context"
	"net/http"

	"Vidtube/internal/apperror"
	"Vidtube/internal/dto"
	"Vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler interface {
	CreatePlaylist(c *gin.Context)
	UserPlaylists(c *gin.Context)
	GetPlaylist(c *gin.Context)
	UpdatePlaylist(c *gin.Context)
	DeletePlaylist(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
}

type playlistHandler struct {
	playlistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) PlaylistHandler {
	return &playlistHandler{playlistService: playlistService}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" form:"name" binding:"required,notblank"`
	Description string `json:"description" form:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name" form:"name" binding:"omitempty,notblank"`
	Description *string `json:"description" form:"description"`
}

func (h *playlistHandler) CreatePlaylist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req CreatePlaylistRequest
	if !bind(c, &req) {
		return
	}
	playlist, err := h.playlistService.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToPlaylistResponse(playlist), "Playlist created successfully")
}

func (h *playlistHandler) UserPlaylists(c *gin.Context) {
	userID, ok := parseID(c, "userId", "user")
	if !ok {
		return
	}
	playlists, err := h.playlistService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistResponses(playlists), "Playlists fetched successfully")
}

func (h *playlistHandler) GetPlaylist(c *gin.Context) {
	playlistID, ok := parseID(c, "playlistId", "playlist")
	if !ok {
		return
	}
	playlist, err := h.playlistService.Get(c.Request.Context(), playlistID, viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistDetailResponse(playlist), "Playlist fetched successfully")
}

func (h *playlistHandler) UpdatePlaylist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, ok := parseID(c, "playlistId", "playlist")
	if !ok {
		return
	}
	var req UpdatePlaylistRequest
	if !bind(c, &req) {
		return
	}
	if req.Name == nil && req.Description == nil {
		fail(c, apperror.BadRequest("Nothing to update"))
		return
	}
	playlist, err := h.playlistService.Update(c.Request.Context(), playlistID, userID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "Playlist updated successfully")
}

func (h *playlistHandler) DeletePlaylist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, ok := parseID(c, "playlistId", "playlist")
	if !ok {
		return
	}
	if err := h.playlistService.Delete(c.Request.Context(), playlistID, userID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}

func (h *playlistHandler) AddVideo(c *gin.Context) {
	h.membership(c, h.playlistService.AddVideo, "Video added to playlist")
}

func (h *playlistHandler) RemoveVideo(c *gin.Context) {
	h.membership(c, h.playlistService.RemoveVideo, "Video removed from playlist")
}

type membershipChange func(ctx context.Context, playlistID, videoID, actorID uint64) error

// 加入和移出共用：路径是 /:videoId/:playlistId，完成后返回最新的歌单详情
func (h *playlistHandler) membership(c *gin.Context, change membershipChange, message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, ok := parseID(c, "videoId", "video")
	if !ok {
		return
	}
	playlistID, ok := parseID(c, "playlistId", "playlist")
	if !ok {
		return
	}
	if err := change(c.Request.Context(), playlistID, videoID, userID); err != nil {
		fail(c, err)
		return
	}
	playlist, err := h.playlistService.Get(c.Request.Context(), playlistID, userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToPlaylistDetailResponse(playlist), message)
}
