// Package handler 提供 HTTP 请求处理器
// 本文件处理战役实时通道相关的请求：历史消息查询与 WebSocket 接入
package handler

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/service"
	"aethorias_chronicle_server/internal/service/chat"

	"github.com/gin-gonic/gin"
)

// ChatHandler 实时通道请求处理器
type ChatHandler struct {
	svc        service.ChatService
	membership service.MembershipService
	users      service.UserService
	server     *chat.ChatServer
}

// NewChatHandler 构造函数
func NewChatHandler(svc service.ChatService, membership service.MembershipService, users service.UserService, server *chat.ChatServer) *ChatHandler {
	return &ChatHandler{svc: svc, membership: membership, users: users, server: server}
}

// GetMessageList 拉取战役最近的历史消息
// GET /campaigns/:uuid/messages?limit=50
func (h *ChatHandler) GetMessageList(c *gin.Context) {
	var req request.GetMessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.GetMessageList(c.GetString("user_id"), c.Param("uuid"), req.Limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// WsJoin 接入战役实时通道（升级 HTTP 连接为 WebSocket）
// GET /campaigns/:uuid/ws
// 前置条件：操作者是该战役的 active 成员或 DM
func (h *ChatHandler) WsJoin(c *gin.Context) {
	userId := c.GetString("user_id")
	campaignUuid := c.Param("uuid")

	if err := h.membership.CheckActiveOrDm(userId, campaignUuid); err != nil {
		HandleError(c, err)
		return
	}
	userInfo, err := h.users.GetUserInfo(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	chat.NewConnInit(c, h.server, userId, userInfo.Nickname, campaignUuid)
}
