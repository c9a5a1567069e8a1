package router

import (
	"github.com/gin-gonic/gin"

	"aethorias_chronicle_server/internal/infrastructure/middleware"
)

// registerCharacterRoutes 注册角色与进阶相关路由
// 进阶状态机的每个写操作以 /characters/:uuid 下的子资源呈现
func (rt *Router) registerCharacterRoutes(r *gin.Engine) {
	characterGroup := r.Group("/characters")
	characterGroup.Use(middleware.JWTAuth())
	{
		characterGroup.POST("", rt.handlers.Character.Create)
		characterGroup.GET("", rt.handlers.Character.ListMine)
		characterGroup.GET("/:uuid", rt.handlers.Character.Get)
		characterGroup.DELETE("/:uuid", rt.handlers.Character.Delete)

		// 进阶状态机
		characterGroup.POST("/:uuid/xp", rt.handlers.Progression.AwardXp)
		characterGroup.POST("/:uuid/levelup/hp", rt.handlers.Progression.ConfirmHp)
		characterGroup.POST("/:uuid/levelup/asi", rt.handlers.Progression.ApplyAsi)
		characterGroup.POST("/:uuid/levelup/spells", rt.handlers.Progression.ApplySpells)
		characterGroup.POST("/:uuid/levelup/expertise", rt.handlers.Progression.ApplyExpertise)
		characterGroup.POST("/:uuid/levelup/archetype", rt.handlers.Progression.ApplyArchetype)

		// 休整与濒死
		characterGroup.POST("/:uuid/hitdice/spend", rt.handlers.Progression.SpendHitDie)
		characterGroup.POST("/:uuid/deathsaves", rt.handlers.Progression.RecordDeathSave)

		// 管理员直设等级
		characterGroup.POST("/:uuid/admin/level", rt.handlers.Progression.AdminSetLevel)
	}
}
