package handler

import (
	"net/http"

	"Vidtube/internal/dto"
	"Vidtube/internal/model"
	"Vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	LikedVideos(c *gin.Context)
}

type likeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{likeService: likeService}
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetVideo, "videoId", "video")
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetComment, "commentId", "comment")
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetTweet, "tweetId", "tweet")
}

// 三种目标共用一个切换流程，返回切换后的状态
func (h *likeHandler) toggle(c *gin.Context, targetType model.LikeTargetType, param, name string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, param, name)
	if !ok {
		return
	}
	liked, err := h.likeService.Toggle(c.Request.Context(), userID, model.LikeTarget{Type: targetType, ID: targetID})
	if err != nil {
		fail(c, err)
		return
	}
	message := "Like removed"
	if liked {
		message = "Like added"
	}
	respond(c, http.StatusOK, dto.LikeToggleResponse{Liked: liked}, message)
}

func (h *likeHandler) LikedVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.likeService.LikedVideos(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponses(videos), "Liked videos fetched successfully")
}
