// Package handler 提供 HTTP 请求处理器
// 本文件处理角色增删查相关的 API 请求，进阶操作见 progression_handler.go
package handler

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CharacterHandler 角色请求处理器
type CharacterHandler struct {
	svc service.CharacterService
}

// NewCharacterHandler 构造函数
func NewCharacterHandler(svc service.CharacterService) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// Create 创建角色
// POST /characters
// 请求体: request.CreateCharacterRequest
// 响应: respond.CharacterRespond
func (h *CharacterHandler) Create(c *gin.Context) {
	var req request.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.CreateCharacter(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get 获取角色完整聚合
// GET /characters/:uuid
func (h *CharacterHandler) Get(c *gin.Context) {
	data, err := h.svc.GetCharacter(c.GetString("user_id"), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMine 列出自己的角色
// GET /characters
func (h *CharacterHandler) ListMine(c *gin.Context) {
	data, err := h.svc.ListMyCharacters(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Delete 删除角色
// DELETE /characters/:uuid
func (h *CharacterHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteCharacter(c.GetString("user_id"), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
