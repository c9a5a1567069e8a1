// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 遵循依赖倒置原则，通过构造函数注入 Service 依赖
package handler

import (
	"aethorias_chronicle_server/internal/service"
	"aethorias_chronicle_server/internal/service/chat"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	User        *UserHandler
	Character   *CharacterHandler
	Progression *ProgressionHandler
	Campaign    *CampaignHandler
	Membership  *MembershipHandler
	GameSession *GameSessionHandler
	Chat        *ChatHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// svc: Service 层聚合实例
// chatServer: 实时通道聚合，WebSocket 接入需要
func NewHandlers(svc *service.Services, chatServer *chat.ChatServer) *Handlers {
	return &Handlers{
		User:        NewUserHandler(svc.User),
		Character:   NewCharacterHandler(svc.Character),
		Progression: NewProgressionHandler(svc.Progression),
		Campaign:    NewCampaignHandler(svc.Campaign),
		Membership:  NewMembershipHandler(svc.Membership),
		GameSession: NewGameSessionHandler(svc.GameSession),
		Chat:        NewChatHandler(svc.Chat, svc.Membership, svc.User, chatServer),
	}
}
