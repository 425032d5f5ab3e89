package handler

import (
	"net/http"
	"strings"

	"Vidtube/internal/apperror"
	"Vidtube/internal/dto"
	"Vidtube/internal/repository"
	"Vidtube/internal/service"
	"Vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	ListVideos(c *gin.Context)
	PublishVideo(c *gin.Context)
	GetVideoByID(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	TogglePublish(c *gin.Context)
}

type videoHandler struct {
	videoService service.VideoService
	uploadDir    string
}

func NewVideoHandler(videoService service.VideoService, uploadDir string) VideoHandler {
	return &videoHandler{videoService: videoService, uploadDir: uploadDir}
}

type ListVideosRequest struct {
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	Limit    int    `form:"limit" binding:"omitempty,gte=1"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType" binding:"omitempty,oneof=asc desc"`
	UserID   uint64 `form:"userId"`
}

type PublishVideoRequest struct {
	Title       string `form:"title" binding:"required,notblank"`
	Description string `form:"description" binding:"required,notblank"`
}

// 修改时每个字段都可以不传
type UpdateVideoRequest struct {
	Title       *string `form:"title" json:"title" binding:"omitempty,notblank"`
	Description *string `form:"description" json:"description"`
}

// 视频列表：1、解析分页、搜索和排序参数 2、service层只查已发布的视频 3、包成分页结构返回
func (h *videoHandler) ListVideos(c *gin.Context) {
	var req ListVideosRequest
	if !bindQuery(c, &req) {
		return
	}
	if req.SortBy != "" && !repository.IsVideoSortField(req.SortBy) {
		fail(c, apperror.BadRequest("sortBy must be one of createdAt, views, duration, title"))
		return
	}

	q := repository.VideoListQuery{
		Pagination: repository.NewPagination(req.Page, req.Limit),
		Query:      strings.TrimSpace(req.Query),
		SortBy:     req.SortBy,
		SortType:   req.SortType,
		OwnerID:    req.UserID,
	}
	videos, total, err := h.videoService.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.NewPage(dto.ToVideoResponses(videos), total, q.Page, q.Limit), "Videos fetched successfully")
}

// 发布视频：1、校验标题和描述 2、视频文件和封面落到临时目录 3、service层上传、探测时长并入库
func (h *videoHandler) PublishVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req PublishVideoRequest
	if !bind(c, &req) {
		return
	}
	paths, err := saveUploads(c, h.uploadDir, "videoFile", "thumbnail")
	if err != nil {
		fail(c, err)
		return
	}
	defer removeTemp(paths...)

	// 蛇形命名法（日志聚合平台ELK、前端JavaScript）
	logCtx := logger.Log.WithField("author_id", userID)
	logCtx.Info("开始处理发布视频请求")

	video, err := h.videoService.Publish(c.Request.Context(), service.PublishVideoInput{
		OwnerID:       userID,
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     paths[0],
		ThumbnailPath: paths[1],
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToVideoResponse(video), "Video published successfully")
}

func (h *videoHandler) GetVideoByID(c *gin.Context) {
	videoID, ok := parseID(c, "videoId", "video")
	if !ok {
		return
	}
	video, err := h.videoService.GetVideoByID(c.Request.Context(), videoID, viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponse(video), "Video fetched successfully")
}

func (h *videoHandler) UpdateVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, ok := parseID(c, "videoId", "video")
	if !ok {
		return
	}
	var req UpdateVideoRequest
	if !bind(c, &req) {
		return
	}
	thumbnail, err := saveUpload(c, h.uploadDir, "thumbnail")
	if err != nil {
		fail(c, err)
		return
	}
	defer removeTemp(thumbnail)

	if req.Title == nil && req.Description == nil && thumbnail == "" {
		fail(c, apperror.BadRequest("Nothing to update"))
		return
	}
	video, err := h.videoService.Update(c.Request.Context(), service.UpdateVideoInput{
		VideoID:       videoID,
		ActorID:       userID,
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: thumbnail,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponse(video), "Video updated successfully")
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, ok := parseID(c, "videoId", "video")
	if !ok {
		return
	}
	if err := h.videoService.Delete(c.Request.Context(), videoID, userID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

func (h *videoHandler) TogglePublish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, ok := parseID(c, "videoId", "video")
	if !ok {
		return
	}
	video, err := h.videoService.TogglePublish(c.Request.Context(), videoID, userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToVideoResponse(video), "Publish status toggled successfully")
}
