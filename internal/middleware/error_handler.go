package middleware

import (
	"fmt"
	"net/http"

	"Vidtube/internal/apperror"
	"Vidtube/internal/dto"
	"Vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler 是唯一写失败响应的地方：handler和其他中间件只调用c.Error再Abort，这里在链路返回后统一输出
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteFailure(c, c.Errors.Last().Err)
	}
}

// WriteFailure 把任意错误归一后写成失败信封，5xx把原因记进日志，原因本身不会返回给客户端
func WriteFailure(c *gin.Context, err error) {
	appErr := apperror.From(err)
	logCtx := logger.Log.WithField("method", c.Request.Method).
		WithField("path", c.Request.URL.Path).
		WithField("status", appErr.StatusCode)
	if id, ok := c.Get(ContextRequestIDKey); ok {
		logCtx = logCtx.WithField("request_id", id)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		logCtx.WithError(err).Error("请求处理失败")
	} else {
		logCtx.WithField("message", appErr.Message).Info("请求被拒绝")
	}
	c.AbortWithStatusJSON(appErr.StatusCode, dto.Failure(appErr))
}

// Recovery panic也走失败信封
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		WriteFailure(c, apperror.Internal(fmt.Errorf("panic: %v", recovered)))
	})
}

func NoRoute(c *gin.Context) {
	WriteFailure(c, apperror.NotFound("Route not found"))
}

func NoMethod(c *gin.Context) {
	WriteFailure(c, apperror.New(http.StatusMethodNotAllowed, "Method not allowed"))
}
