// Package handler 提供 HTTP 请求处理器
// 本文件处理战役成员状态机相关的 API 请求
package handler

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/service"

	"github.com/gin-gonic/gin"
)

// MembershipHandler 战役成员请求处理器
type MembershipHandler struct {
	svc service.MembershipService
}

// NewMembershipHandler 构造函数
func NewMembershipHandler(svc service.MembershipService) *MembershipHandler {
	return &MembershipHandler{svc: svc}
}

// RequestJoin 申请加入战役
// POST /campaigns/:uuid/join
// 请求体: request.JoinCampaignRequest（可选绑定角色）
func (h *MembershipHandler) RequestJoin(c *gin.Context) {
	var req request.JoinCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.RequestJoin(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Approve DM 批准加入申请
// POST /campaigns/:uuid/members/:userUuid/approve
func (h *MembershipHandler) Approve(c *gin.Context) {
	data, err := h.svc.Approve(c.GetString("user_id"), c.Param("uuid"), c.Param("userUuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Reject DM 拒绝加入申请
// POST /campaigns/:uuid/members/:userUuid/reject
func (h *MembershipHandler) Reject(c *gin.Context) {
	data, err := h.svc.Reject(c.GetString("user_id"), c.Param("uuid"), c.Param("userUuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CancelOwnRequest 撤回自己的待审申请
// DELETE /campaigns/:uuid/join
func (h *MembershipHandler) CancelOwnRequest(c *gin.Context) {
	if err := h.svc.CancelOwnRequest(c.GetString("user_id"), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Leave 成员主动退出战役
// POST /campaigns/:uuid/leave
func (h *MembershipHandler) Leave(c *gin.Context) {
	if err := h.svc.Leave(c.GetString("user_id"), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DmAdd DM 直接拉人入战役
// POST /campaigns/:uuid/members
// 请求体: request.DmAddMemberRequest
func (h *MembershipHandler) DmAdd(c *gin.Context) {
	var req request.DmAddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.DmAdd(c.GetString("user_id"), c.Param("uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DmRemove DM 移除成员
// DELETE /campaigns/:uuid/members/:userUuid
func (h *MembershipHandler) DmRemove(c *gin.Context) {
	if err := h.svc.DmRemove(c.GetString("user_id"), c.Param("uuid"), c.Param("userUuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListMembers 列出战役全部成员行
// GET /campaigns/:uuid/members
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	data, err := h.svc.ListMembers(c.GetString("user_id"), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
