package handler

import (
	"net/http"

	"Vidtube/internal/dto"
	"Vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler interface {
	ChannelStats(c *gin.Context)
	ChannelVideos(c *gin.Context)
}

type dashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService}
}

func (h *dashboardHandler) ChannelStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := h.dashboardService.Stats(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToChannelStatsResponse(stats), "Channel stats fetched successfully")
}

// 面板里是作者自己的全部视频，包括未发布的
func (h *dashboardHandler) ChannelVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.dashboardService.Videos(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponses(videos), "Channel videos fetched successfully")
}
