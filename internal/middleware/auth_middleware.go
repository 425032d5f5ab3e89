package middleware

import (
	"context"
	"errors"
	"strings"

	"Vidtube/internal/apperror"
	"Vidtube/internal/auth"
	"Vidtube/internal/model"
	"Vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// ContextUserIDKey 认证通过后用户ID在gin.Context里的键，值是uint64
	ContextUserIDKey = "userID"
	// AccessTokenCookie 和 RefreshTokenCookie 是登录时下发的两个cookie名
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// AccessTokenParser 校验access token
type AccessTokenParser interface {
	ParseAccess(tokenString string) (*auth.AccessClaims, error)
}

// UserLoader 令牌合法之后还要确认用户仍然存在
type UserLoader interface {
	FindByID(ctx context.Context, userID uint64) (*model.User, error)
}

// 必须登录的中间件
// 流程：1、从cookie和"Authorization: Bearer [token]"中取出令牌 2、校验签名和过期，cookie里的不合法再试header 3、确认用户还存在 4、把用户ID放入context
func Auth(tokens AccessTokenParser, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates := extractTokens(c)
		if len(candidates) == 0 {
			abort(c, apperror.Unauthorized("Unauthorized request"))
			return
		}
		userID, err := authenticate(c, tokens, users, candidates)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth 公开接口用：带了合法令牌就识别出用户，没带或者不合法都按匿名访问放行
func OptionalAuth(tokens AccessTokenParser, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates := extractTokens(c)
		if len(candidates) == 0 {
			c.Next()
			return
		}
		userID, err := authenticate(c, tokens, users, candidates)
		if err != nil {
			logger.Log.WithError(err).WithField("path", c.FullPath()).Debug("可选认证失败，按匿名访问处理")
			c.Next()
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 取出认证中间件放进去的用户ID，匿名请求返回false
func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok && id != 0
}

// extractTokens 按cookie、header的顺序返回请求里带的令牌
func extractTokens(c *gin.Context) []string {
	var candidates []string
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		candidates = append(candidates, cookie)
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return candidates
	}
	// 通常Token的格式是 "Bearer [token]"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return candidates
	}
	return append(candidates, parts[1])
}

// authenticate 取第一个能通过校验的令牌；过期的cookie不能挡住header里合法的令牌
func authenticate(c *gin.Context, tokens AccessTokenParser, users UserLoader, candidates []string) (uint64, error) {
	var claims *auth.AccessClaims
	for _, tokenString := range candidates {
		parsed, err := tokens.ParseAccess(tokenString)
		if err == nil {
			claims = parsed
			break
		}
	}
	if claims == nil {
		return 0, apperror.Unauthorized("Invalid access token")
	}
	user, err := users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.Unauthorized("Invalid access token")
		}
		return 0, err
	}
	return user.ID, nil
}

// abort 只登记错误并中断，响应由ErrorHandler统一写
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
