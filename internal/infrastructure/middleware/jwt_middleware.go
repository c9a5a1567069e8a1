package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aethorias_chronicle_server/pkg/errorx"
	"aethorias_chronicle_server/pkg/util/jwt"
)

// JWTAuth 接口认证中间件
// 校验 Bearer 格式的 Access Token，通过后把 user_id 写入上下文，
// 业务 Handler 从上下文取身份，不再各自解析令牌
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "请先登录")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Token 格式错误，请使用 Bearer Token")
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Token 已过期或无效，请重新登录")
			return
		}

		// Refresh Token 不能当 Access Token 用
		if claims.Subject != "access_token" {
			abortUnauthorized(c, "请使用 Access Token 访问此接口")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthorized,
		"msg":  msg,
	})
}
