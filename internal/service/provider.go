// Package service 定义业务层接口
// provider.go 负责组装各业务 Service，供路由层统一注入
package service

import (
	"aethorias_chronicle_server/internal/dao/mysql/repository"
	myredis "aethorias_chronicle_server/internal/dao/redis"
	"aethorias_chronicle_server/internal/service/campaign"
	"aethorias_chronicle_server/internal/service/catalog"
	"aethorias_chronicle_server/internal/service/character"
	"aethorias_chronicle_server/internal/service/chat"
	"aethorias_chronicle_server/internal/service/gamesession"
	"aethorias_chronicle_server/internal/service/membership"
	"aethorias_chronicle_server/internal/service/progression"
	"aethorias_chronicle_server/internal/service/user"
)

// Services 业务层聚合
type Services struct {
	User        UserService
	Character   CharacterService
	Progression ProgressionService
	Campaign    CampaignService
	Membership  MembershipService
	GameSession GameSessionService
	Chat        ChatService
}

// Svc 全局业务层实例，main 中通过 InitServices 赋值
var Svc *Services

// NewServices 组装全部业务 Service
// cache 可为 nil（测试场景），此时规则数据与历史消息不走缓存
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService) *Services {
	catalogStore := catalog.NewCatalogService(repos, cache)
	membershipSvc := membership.NewMembershipService(repos)
	return &Services{
		User:        user.NewUserService(repos, cache),
		Character:   character.NewCharacterService(repos, catalogStore),
		Progression: progression.NewProgressionService(repos, catalogStore),
		Campaign:    campaign.NewCampaignService(repos),
		Membership:  membershipSvc,
		GameSession: gamesession.NewGameSessionService(repos, membershipSvc),
		Chat:        chat.NewChatService(repos, membershipSvc, cache),
	}
}

// InitServices 初始化全局业务层实例
func InitServices(repos *repository.Repositories, cache myredis.AsyncCacheService) {
	Svc = NewServices(repos, cache)
}
