package middleware

import (
	"net/http"
	"strings"

	"VidTube/internal/auth"

	"github.com/gin-gonic/gin"
)

// extractToken 先看cookie再看Authorization头，两条路都支持
// 浏览器端走httpOnly cookie，API调用方走"Bearer [token]"
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireAuth 认证中间件工厂：没有有效访问令牌就拦下请求
// 验证通过后把用户信息放进context供后续handler使用
func RequireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"message":    "请求未包含授权令牌",
				"success":    false,
				"errors":     []string{},
			})
			return
		}

		claims, err := tokens.ParseAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"message":    "无效的授权令牌",
				"success":    false,
				"errors":     []string{},
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuth 可选认证：令牌有效就带上身份，没有或无效也放行
// 详情页这类公开接口需要“知道你是谁但不强求登录”
func OptionalAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := tokens.ParseAccessToken(tokenString); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}
