// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录、令牌刷新等功能
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.UserInfoRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 刷新双令牌
	RefreshToken(req request.RefreshTokenRequest) (*respond.TokenRespond, error)
	// Logout 登出，作废刷新令牌
	Logout(userId string) error
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.UserInfoRespond, error)
}

// CharacterService 角色业务接口
// 处理角色的创建、查询、删除；进阶数值的变更见 ProgressionService
type CharacterService interface {
	// CreateCharacter 创建角色（1级、零经验、按职业与背景套起始装备和技能）
	CreateCharacter(actorId string, req request.CreateCharacterRequest) (*respond.CharacterRespond, error)
	// GetCharacter 获取角色完整聚合
	GetCharacter(actorId, characterUuid string) (*respond.CharacterRespond, error)
	// ListMyCharacters 列出操作者自己的角色
	ListMyCharacters(actorId string) ([]respond.CharacterRespond, error)
	// DeleteCharacter 删除角色（仅所有者，级联清理关联行与审计）
	DeleteCharacter(actorId, characterUuid string) error
}

// ProgressionService 角色进阶业务接口
// 升级状态机的所有操作入口，每个写操作都返回完整角色聚合
type ProgressionService interface {
	// AwardXp 发放经验值，跨过阈值时提升等级并进入升级流程
	AwardXp(actorId, characterUuid string, req request.AwardXpRequest) (*respond.CharacterRespond, error)
	// ConfirmHpIncrease 确认升级生命值（average 取骰面均值，roll 用提交的掷骰值）
	ConfirmHpIncrease(actorId, characterUuid string, req request.ConfirmHpRequest) (*respond.HpGainRespond, error)
	// ApplyAsi 应用属性值提升
	ApplyAsi(actorId, characterUuid string, req request.ApplyAsiRequest) (*respond.CharacterRespond, error)
	// ApplySpellSelections 应用法术选择
	ApplySpellSelections(actorId, characterUuid string, req request.ApplySpellsRequest) (*respond.CharacterRespond, error)
	// ApplyExpertise 应用技能专精选择
	ApplyExpertise(actorId, characterUuid string, req request.ApplyExpertiseRequest) (*respond.CharacterRespond, error)
	// ApplyArchetype 应用子职业选择，只能设置一次
	ApplyArchetype(actorId, characterUuid string, req request.ApplyArchetypeRequest) (*respond.CharacterRespond, error)
	// SpendHitDie 消耗一颗生命骰恢复生命值
	SpendHitDie(actorId, characterUuid string, req request.SpendHitDieRequest) (*respond.CharacterRespond, error)
	// RecordDeathSave 记录一次死亡豁免结果
	RecordDeathSave(actorId, characterUuid string, req request.DeathSaveRequest) (*respond.CharacterRespond, error)
	// AdminSetLevel 管理员直设等级，跳过逐步升级流程
	AdminSetLevel(actorId, characterUuid string, req request.AdminSetLevelRequest) (*respond.CharacterRespond, error)
}

// CampaignService 战役业务接口
type CampaignService interface {
	// CreateCampaign 创建战役，创建者成为 DM 并自动成为 active 成员
	CreateCampaign(actorId string, req request.CreateCampaignRequest) (*respond.CampaignRespond, error)
	// GetCampaign 获取战役信息
	GetCampaign(campaignUuid string) (*respond.CampaignRespond, error)
	// ListMyCampaigns 列出操作者作为 DM 参与的战役
	ListMyCampaigns(actorId string) ([]respond.CampaignRespond, error)
	// UpdateCampaign 更新战役元数据（仅 DM）
	UpdateCampaign(actorId, campaignUuid string, req request.UpdateCampaignRequest) (*respond.CampaignRespond, error)
	// DeleteCampaign 删除战役（仅 DM，级联成员与场次）
	DeleteCampaign(actorId, campaignUuid string) error
}

// MembershipService 战役成员业务接口
// 加入申请状态机：pending_approval → {active, rejected}；invited → active
type MembershipService interface {
	// RequestJoin 申请加入战役
	RequestJoin(actorId, campaignUuid string, req request.JoinCampaignRequest) (*respond.MemberRespond, error)
	// Approve DM 批准加入申请，批准瞬间复核容量
	Approve(actorId, campaignUuid, targetUserId string) (*respond.MemberRespond, error)
	// Reject DM 拒绝加入申请
	Reject(actorId, campaignUuid, targetUserId string) (*respond.MemberRespond, error)
	// CancelOwnRequest 申请者撤回自己的待审申请
	CancelOwnRequest(actorId, campaignUuid string) error
	// Leave 成员主动退出战役
	Leave(actorId, campaignUuid string) error
	// DmAdd DM 直接拉人入战役
	DmAdd(actorId, campaignUuid string, req request.DmAddMemberRequest) (*respond.MemberRespond, error)
	// DmRemove DM 移除成员，不允许移除 DM 自己
	DmRemove(actorId, campaignUuid, targetUserId string) error
	// ListMembers 列出战役全部成员行
	ListMembers(actorId, campaignUuid string) ([]respond.MemberRespond, error)
	// CheckActiveOrDm 校验用户是 active 成员或 DM（websocket 接入前置检查）
	CheckActiveOrDm(userId, campaignUuid string) error
}

// GameSessionService 跑团场次业务接口
// 一个战役同一时间至多一个进行中的场次
type GameSessionService interface {
	// StartSession 开始场次，已有进行中场次时返回冲突
	StartSession(actorId, campaignUuid string) (*respond.SessionRespond, error)
	// EndSession 结束场次，对已结束的场次幂等
	EndSession(actorId, sessionUuid string) (*respond.SessionRespond, error)
	// GetSession 获取场次及其先攻顺序
	GetSession(actorId, sessionUuid string) (*respond.SessionRespond, error)
	// AddInitiativeEntry 添加先攻条目（角色引用与自由文本名恰好其一）
	AddInitiativeEntry(actorId, sessionUuid string, req request.AddInitiativeEntryRequest) (*respond.SessionRespond, error)
	// GetInitiativeOrder 获取先攻顺序，按掷骰值降序
	GetInitiativeOrder(actorId, sessionUuid string) ([]respond.InitiativeEntryRespond, error)
	// ClearInitiative 清空场次的先攻条目
	ClearInitiative(actorId, sessionUuid string) error
	// UpdateMapState 更新场次地图状态（对服务端不透明）
	UpdateMapState(actorId, sessionUuid string, req request.UpdateMapStateRequest) (*respond.SessionRespond, error)
}

// ChatService 战役消息业务接口
// 实时链路见 service/chat 的 Hub 与 Broker，这里只有历史查询
type ChatService interface {
	// GetMessageList 拉取战役最近的历史消息
	GetMessageList(actorId, campaignUuid string, limit int) ([]respond.MessageRespond, error)
}
