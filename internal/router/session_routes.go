package router

import (
	"github.com/gin-gonic/gin"

	"aethorias_chronicle_server/internal/infrastructure/middleware"
)

// registerSessionRoutes 注册跑团场次相关路由
// 场次的创建挂在战役路由下，场次内操作以 /sessions/:uuid 为根
func (rt *Router) registerSessionRoutes(r *gin.Engine) {
	sessionGroup := r.Group("/sessions")
	sessionGroup.Use(middleware.JWTAuth())
	{
		sessionGroup.GET("/:uuid", rt.handlers.GameSession.Get)
		sessionGroup.POST("/:uuid/end", rt.handlers.GameSession.End)
		sessionGroup.POST("/:uuid/initiative", rt.handlers.GameSession.AddInitiativeEntry)
		sessionGroup.GET("/:uuid/initiative", rt.handlers.GameSession.GetInitiativeOrder)
		sessionGroup.DELETE("/:uuid/initiative", rt.handlers.GameSession.ClearInitiative)
		sessionGroup.PUT("/:uuid/map", rt.handlers.GameSession.UpdateMapState)
	}
}
