// Package handler 提供 HTTP 请求处理器
// 本文件处理战役元数据相关的 API 请求，成员管理见 membership_handler.go
package handler

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CampaignHandler 战役请求处理器
type CampaignHandler struct {
	svc service.CampaignService
}

// NewCampaignHandler 构造函数
func NewCampaignHandler(svc service.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// Create 创建战役
// POST /campaigns
// 创建者成为 DM 并自动持有 active 成员行
func (h *CampaignHandler) Create(c *gin.Context) {
	var req request.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.CreateCampaign(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get 获取战役信息
// GET /campaigns/:uuid
func (h *CampaignHandler) Get(c *gin.Context) {
	data, err := h.svc.GetCampaign(c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMine 列出自己作为 DM 的战役
// GET /campaigns
func (h *CampaignHandler) ListMine(c *gin.Context) {
	data, err := h.svc.ListMyCampaigns(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Update 更新战役元数据（仅 DM）
// PUT /campaigns/:uuid
func (h *CampaignHandler) Update(c *gin.Context) {
	var req request.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.UpdateCampaign(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Delete 删除战役（仅 DM，级联成员与场次）
// DELETE /campaigns/:uuid
func (h *CampaignHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteCampaign(c.GetString("user_id"), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
