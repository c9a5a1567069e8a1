package router

import (
	"github.com/gin-gonic/gin"

	"aethorias_chronicle_server/internal/infrastructure/middleware"
)

// registerUserRoutes 注册用户相关路由
func (rt *Router) registerUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/users")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/me", rt.handlers.User.GetMe)
		userGroup.GET("/:uuid", rt.handlers.User.GetUserInfo)
	}
}
