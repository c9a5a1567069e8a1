package router

import (
	"github.com/gin-gonic/gin"

	"aethorias_chronicle_server/internal/infrastructure/middleware"
)

// registerAuthRoutes 注册认证相关路由
func (rt *Router) registerAuthRoutes(r *gin.Engine) {
	// 公开接口 (无需认证)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.User.Register)
		authGroup.POST("/login", rt.handlers.User.Login)
		authGroup.POST("/refresh", rt.handlers.User.RefreshToken)
	}

	// 需要认证的接口
	authedGroup := r.Group("/auth")
	authedGroup.Use(middleware.JWTAuth())
	{
		authedGroup.POST("/logout", rt.handlers.User.Logout)
	}
}
