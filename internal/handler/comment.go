package handler

import (
	"net/http"

	"Vidtube/internal/dto"
	"Vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	GetComments(c *gin.Context)
	CreateComment(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type commentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{commentService: commentService}
}

type PageRequest struct {
	Page  int `form:"page" binding:"omitempty,gte=1"`
	Limit int `form:"limit" binding:"omitempty,gte=1"`
}

type CommentRequest struct {
	Content string `json:"content" form:"content" binding:"required,notblank"`
}

// 获取评论：1、解析视频ID和分页参数 2、service层分页查询（带作者） 3、包成分页结构返回
func (h *commentHandler) GetComments(c *gin.Context) {
	videoID, ok := parseID(c, "videoId", "video")
	if !ok {
		return
	}
	var req PageRequest
	if !bindQuery(c, &req) {
		return
	}
	comments, total, page, err := h.commentService.GetComments(c.Request.Context(), videoID, viewerID(c), req.Page, req.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.NewPage(dto.ToCommentResponses(comments), total, page.Page, page.Limit), "Comments fetched successfully")
}

func (h *commentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, ok := parseID(c, "videoId", "video")
	if !ok {
		return
	}
	var req CommentRequest
	if !bind(c, &req) {
		return
	}
	comment, err := h.commentService.CreateComment(c.Request.Context(), videoID, userID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.ToCommentResponse(comment), "Comment added successfully")
}

func (h *commentHandler) UpdateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId", "comment")
	if !ok {
		return
	}
	var req CommentRequest
	if !bind(c, &req) {
		return
	}
	comment, err := h.commentService.UpdateComment(c.Request.Context(), commentID, userID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToCommentResponse(comment), "Comment updated successfully")
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId", "comment")
	if !ok {
		return
	}
	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}
