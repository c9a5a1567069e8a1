// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"aethorias_chronicle_server/internal/handler"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 构造函数
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用，按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.registerAuthRoutes(r)      // 认证路由（注册/登录/令牌刷新）
	rt.registerUserRoutes(r)      // 用户路由
	rt.registerCharacterRoutes(r) // 角色与进阶路由
	rt.registerCampaignRoutes(r)  // 战役、成员与实时通道路由
	rt.registerSessionRoutes(r)   // 跑团场次路由
}
