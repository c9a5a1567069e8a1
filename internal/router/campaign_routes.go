package router

import (
	"github.com/gin-gonic/gin"

	"aethorias_chronicle_server/internal/infrastructure/middleware"
)

// registerCampaignRoutes 注册战役、成员状态机与实时通道路由
func (rt *Router) registerCampaignRoutes(r *gin.Engine) {
	campaignGroup := r.Group("/campaigns")
	campaignGroup.Use(middleware.JWTAuth())
	{
		campaignGroup.POST("", rt.handlers.Campaign.Create)
		campaignGroup.GET("", rt.handlers.Campaign.ListMine)
		campaignGroup.GET("/:uuid", rt.handlers.Campaign.Get)
		campaignGroup.PUT("/:uuid", rt.handlers.Campaign.Update)
		campaignGroup.DELETE("/:uuid", rt.handlers.Campaign.Delete)

		// 成员状态机
		campaignGroup.POST("/:uuid/join", rt.handlers.Membership.RequestJoin)
		campaignGroup.DELETE("/:uuid/join", rt.handlers.Membership.CancelOwnRequest)
		campaignGroup.POST("/:uuid/leave", rt.handlers.Membership.Leave)
		campaignGroup.GET("/:uuid/members", rt.handlers.Membership.ListMembers)
		campaignGroup.POST("/:uuid/members", rt.handlers.Membership.DmAdd)
		campaignGroup.POST("/:uuid/members/:userUuid/approve", rt.handlers.Membership.Approve)
		campaignGroup.POST("/:uuid/members/:userUuid/reject", rt.handlers.Membership.Reject)
		campaignGroup.DELETE("/:uuid/members/:userUuid", rt.handlers.Membership.DmRemove)

		// 场次
		campaignGroup.POST("/:uuid/sessions", rt.handlers.GameSession.Start)

		// 实时通道
		campaignGroup.GET("/:uuid/messages", rt.handlers.Chat.GetMessageList)
		campaignGroup.GET("/:uuid/ws", rt.handlers.Chat.WsJoin)
	}
}
