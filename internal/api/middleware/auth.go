package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"softdesk/internal/dto"
	"softdesk/internal/pkg/jwt"
	"softdesk/pkg/constants"
	"softdesk/pkg/responses"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.ErrorWithCode(c, 401, "缺少Authorization Header")
			c.Abort()
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.ErrorWithCode(c, 401, "Authorization格式错误")
			c.Abort()
			return
		}

		// 提取Token
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		// 验证Token
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		// 检查Token类型(必须是AccessToken)
		if claims.Type != constants.JWTTypeAccess {
			responses.ErrorWithCode(c, 401, "无效的Token类型")
			c.Abort()
			return
		}

		// 将用户信息存入context
		userInfo := &dto.UserInfo{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			AuthType: claims.AuthType,
		}
		c.Set(constants.ContextUserKey, userInfo)

		c.Next()
	}
}

// CurrentUser 获取当前认证用户
func CurrentUser(c *gin.Context) (*dto.UserInfo, bool) {
	value, exists := c.Get(constants.ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*dto.UserInfo)
	return user, ok
}
