package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// TlsHandler HTTP 到 HTTPS 的重定向中间件
// 由 Nginx 等反向代理终结 SSL 时可不挂载
func TlsHandler(host string, port int) gin.HandlerFunc {
	// secure 实例在闭包外创建一次，所有请求共用
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect: true,
		SSLHost:     host + ":" + strconv.Itoa(port),
	})

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			// 中间件里不能用 Fatal，否则服务会整体退出
			zap.L().Error("HTTPS 重定向失败", zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	}
}
