// Package handler 提供 HTTP 请求处理器
// 本文件处理用户与认证相关的 API 请求
package handler

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户与认证请求处理器
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler 构造函数
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register 用户注册
// POST /auth/register
// 请求体: request.RegisterRequest
// 响应: respond.UserInfoRespond
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login 密码登录
// POST /auth/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond（用户信息 + 双令牌）
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshToken 刷新双令牌
// POST /auth/refresh
// 请求体: request.RefreshTokenRequest
// 旧 Refresh Token 作废，返回新令牌对（单点互踢）
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.svc.RefreshToken(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Logout 登出，作废当前刷新令牌
// POST /auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.GetString("user_id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetMe 获取当前登录用户信息
// GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	data, err := h.svc.GetUserInfo(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserInfo 获取指定用户信息
// GET /users/:uuid
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	data, err := h.svc.GetUserInfo(c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
