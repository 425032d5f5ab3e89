package middleware

import (
	"net/http"
	"time"

	"Vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextRequestIDKey = "requestID"
	RequestIDHeader     = "X-Request-ID"
)

// RequestLogger 给每个请求一个request_id，请求结束后记录方法、路径、状态码、耗时和IP
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		logCtx := logger.Log.WithField("request_id", requestID).
			WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", status).
			WithField("latency_ms", time.Since(start).Milliseconds()).
			WithField("ip", c.ClientIP())
		if userID, ok := CurrentUserID(c); ok {
			logCtx = logCtx.WithField("user_id", userID)
		}
		switch {
		case status >= http.StatusInternalServerError:
			logCtx.Error("请求完成")
		case status >= http.StatusBadRequest:
			logCtx.Warn("请求完成")
		default:
			logCtx.Info("请求完成")
		}
	}
}

// BodyLimit 限制请求体大小，超出后读取body会得到*http.MaxBytesError
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
