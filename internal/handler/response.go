package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Vidtube/internal/apperror"
	"Vidtube/internal/dto"
	"Vidtube/internal/middleware"
	"Vidtube/internal/validation"

	"github.com/gin-gonic/gin"
)

// respond 写成功信封
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, dto.Success(status, data, message))
}

// fail 登记错误并中断，失败信封由middleware.ErrorHandler统一写
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// parseID 路径参数里的ID必须是正整数，否则400 "Invalid <name> id"
func parseID(c *gin.Context, param, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		fail(c, apperror.BadRequest("Invalid "+name+" id"))
		return 0, false
	}
	return id, true
}

// bind 按Content-Type绑定body（JSON或表单）并校验，失败时第一条违反的规则作为message
func bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		fail(c, bindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		fail(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	if msgs := validation.Messages(err); len(msgs) > 0 {
		return apperror.BadRequest(msgs[0], msgs...)
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.New(http.StatusRequestEntityTooLarge, "Request body too large")
	}
	return apperror.BadRequest("Invalid request body").Wrap(err)
}

// viewerID 可选认证下的访问者，匿名是0
func viewerID(c *gin.Context) uint64 {
	id, _ := middleware.CurrentUserID(c)
	return id
}

// currentUserID 必须认证的接口取用户ID，路由没挂认证中间件时按未认证处理
func currentUserID(c *gin.Context) (uint64, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		fail(c, apperror.Unauthorized("Unauthorized request"))
		return 0, false
	}
	return id, true
}
