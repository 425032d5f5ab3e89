package handler

import (
	"net/http"

	"Vidtube/internal/dto"
	"Vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler interface {
	CreateTweet(c *gin.Context)
	UserTweets(c *gin.Context)
	UpdateTweet(c *gin.Context)
	DeleteTweet(c *gin.Context)
}

type tweetHandler struct {
	tweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{tweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content" form:"content" binding:"required,notblank"`
}

func (h *tweetHandler) CreateTweet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req TweetRequest
	if !bind(c, &req) {
		return
	}
	tweet, err := h.tweetService.Create(c.Request.Context(), userID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToTweetResponse(tweet), "Tweet created successfully")
}

func (h *tweetHandler) UserTweets(c *gin.Context) {
	userID, ok := parseID(c, "userId", "user")
	if !ok {
		return
	}
	tweets, err := h.tweetService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToTweetResponses(tweets), "Tweets fetched successfully")
}

func (h *tweetHandler) UpdateTweet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tweetID, ok := parseID(c, "tweetId", "tweet")
	if !ok {
		return
	}
	var req TweetRequest
	if !bind(c, &req) {
		return
	}
	tweet, err := h.tweetService.Update(c.Request.Context(), tweetID, userID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToTweetResponse(tweet), "Tweet updated successfully")
}

func (h *tweetHandler) DeleteTweet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tweetID, ok := parseID(c, "tweetId", "tweet")
	if !ok {
		return
	}
	if err := h.tweetService.Delete(c.Request.Context(), tweetID, userID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}
