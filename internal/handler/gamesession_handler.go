// Package handler 提供 HTTP 请求处理器
// 本文件处理跑团场次与先攻追踪相关的 API 请求
package handler

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GameSessionHandler 跑团场次请求处理器
type GameSessionHandler struct {
	svc service.GameSessionService
}

// NewGameSessionHandler 构造函数
func NewGameSessionHandler(svc service.GameSessionService) *GameSessionHandler {
	return &GameSessionHandler{svc: svc}
}

// Start 开始场次（仅 DM）
// POST /campaigns/:uuid/sessions
func (h *GameSessionHandler) Start(c *gin.Context) {
	data, err := h.svc.StartSession(c.GetString("user_id"), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// End 结束场次（仅 DM，幂等）
// POST /sessions/:uuid/end
func (h *GameSessionHandler) End(c *gin.Context) {
	data, err := h.svc.EndSession(c.GetString("user_id"), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get 获取场次详情（含先攻序列）
// GET /sessions/:uuid
func (h *GameSessionHandler) Get(c *gin.Context) {
	data, err := h.svc.GetSession(c.GetString("user_id"), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddInitiativeEntry 添加先攻条目（仅 DM）
// POST /sessions/:uuid/initiative
// 请求体: request.AddInitiativeEntryRequest
func (h *GameSessionHandler) AddInitiativeEntry(c *gin.Context) {
	var req request.AddInitiativeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.AddInitiativeEntry(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetInitiativeOrder 获取先攻顺序
// GET /sessions/:uuid/initiative
func (h *GameSessionHandler) GetInitiativeOrder(c *gin.Context) {
	data, err := h.svc.GetInitiativeOrder(c.GetString("user_id"), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ClearInitiative 清空先攻条目（仅 DM）
// DELETE /sessions/:uuid/initiative
func (h *GameSessionHandler) ClearInitiative(c *gin.Context) {
	if err := h.svc.ClearInitiative(c.GetString("user_id"), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpdateMapState 更新地图状态（仅 DM）
// PUT /sessions/:uuid/map
// 请求体: request.UpdateMapStateRequest
func (h *GameSessionHandler) UpdateMapState(c *gin.Context) {
	var req request.UpdateMapStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.UpdateMapState(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
