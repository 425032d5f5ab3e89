package handler

import (
	"net/http"

	"Vidtube/internal/dto"
	"Vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler interface {
	ToggleSubscription(c *gin.Context)
	ChannelSubscribers(c *gin.Context)
	SubscribedChannels(c *gin.Context)
}

type subscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{subscriptionService: subscriptionService}
}

// 订阅切换：新订阅返回201，取消订阅返回200
func (h *subscriptionHandler) ToggleSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	channelID, ok := parseID(c, "channelId", "channel")
	if !ok {
		return
	}
	subscribed, err := h.subscriptionService.Toggle(c.Request.Context(), userID, channelID)
	if err != nil {
		fail(c, err)
		return
	}
	if subscribed {
		respond(c, http.StatusCreated, dto.SubscriptionToggleResponse{Subscribed: true}, "Subscribed successfully")
		return
	}
	respond(c, http.StatusOK, dto.SubscriptionToggleResponse{Subscribed: false}, "Unsubscribed successfully")
}

func (h *subscriptionHandler) ChannelSubscribers(c *gin.Context) {
	channelID, ok := parseID(c, "channelId", "channel")
	if !ok {
		return
	}
	profile, subs, err := h.subscriptionService.ChannelSubscribers(c.Request.Context(), channelID, viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ChannelSubscribersResponse{
		Channel:     dto.ToChannelProfileResponse(profile),
		Subscribers: dto.ToSubscriberResponses(subs),
	}, "Subscribers fetched successfully")
}

func (h *subscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, ok := parseID(c, "subscriberId", "subscriber")
	if !ok {
		return
	}
	subs, err := h.subscriptionService.SubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToSubscribedChannelResponses(subs), "Subscribed channels fetched successfully")
}
