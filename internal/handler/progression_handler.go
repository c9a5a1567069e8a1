// Package handler 提供 HTTP 请求处理器
// 本文件处理角色进阶状态机相关的 API 请求
// 所有写操作以 /characters/:uuid 下的子资源呈现，每步返回完整角色聚合
package handler

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgressionHandler 角色进阶请求处理器
type ProgressionHandler struct {
	svc service.ProgressionService
}

// NewProgressionHandler 构造函数
func NewProgressionHandler(svc service.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{svc: svc}
}

// AwardXp 发放经验值
// POST /characters/:uuid/xp
// 请求体: request.AwardXpRequest
func (h *ProgressionHandler) AwardXp(c *gin.Context) {
	var req request.AwardXpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.AwardXp(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ConfirmHp 确认升级生命值
// POST /characters/:uuid/levelup/hp
// 请求体: request.ConfirmHpRequest（method 为 average 或 roll）
func (h *ProgressionHandler) ConfirmHp(c *gin.Context) {
	var req request.ConfirmHpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.ConfirmHpIncrease(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApplyAsi 应用属性值提升
// POST /characters/:uuid/levelup/asi
func (h *ProgressionHandler) ApplyAsi(c *gin.Context) {
	var req request.ApplyAsiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.ApplyAsi(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApplySpells 应用法术选择
// POST /characters/:uuid/levelup/spells
func (h *ProgressionHandler) ApplySpells(c *gin.Context) {
	var req request.ApplySpellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.ApplySpellSelections(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApplyExpertise 应用技能专精选择
// POST /characters/:uuid/levelup/expertise
func (h *ProgressionHandler) ApplyExpertise(c *gin.Context) {
	var req request.ApplyExpertiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.ApplyExpertise(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApplyArchetype 应用子职业选择
// POST /characters/:uuid/levelup/archetype
func (h *ProgressionHandler) ApplyArchetype(c *gin.Context) {
	var req request.ApplyArchetypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.ApplyArchetype(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SpendHitDie 消耗生命骰恢复生命值
// POST /characters/:uuid/hitdice/spend
func (h *ProgressionHandler) SpendHitDie(c *gin.Context) {
	var req request.SpendHitDieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.SpendHitDie(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RecordDeathSave 记录一次死亡豁免
// POST /characters/:uuid/deathsaves
func (h *ProgressionHandler) RecordDeathSave(c *gin.Context) {
	var req request.DeathSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.RecordDeathSave(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminSetLevel 管理员直设等级
// POST /characters/:uuid/admin/level
func (h *ProgressionHandler) AdminSetLevel(c *gin.Context) {
	var req request.AdminSetLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.AdminSetLevel(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
