// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"aethorias_chronicle_server/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// Update 更新用户信息
	Update(user *model.UserInfo) error
}

// CharacterRepository 角色数据访问接口
// 角色行及其独占的技能/物品/法术关联与升级审计都从这里读写
type CharacterRepository interface {
	// FindByUuid 根据 UUID 查找角色
	FindByUuid(uuid string) (*model.Character, error)
	// FindByOwnerId 查找某用户的所有角色
	FindByOwnerId(ownerId string) ([]model.Character, error)
	// Create 创建角色
	Create(character *model.Character) error
	// Save 全字段保存角色（不做版本比对，用于创建后的初始化场景）
	Save(character *model.Character) error
	// SaveWithVersion 带乐观锁的保存
	// 以内存中的 Version 为条件更新并自增版本号，版本不匹配返回 CodeConflict
	SaveWithVersion(character *model.Character) error
	// SoftDeleteByUuid 软删除角色
	SoftDeleteByUuid(uuid string) error

	// FindSkills 查找角色的技能关联
	FindSkills(characterUuid string) ([]model.CharacterSkill, error)
	// CreateSkills 批量创建技能关联
	CreateSkills(skills []model.CharacterSkill) error
	// SetExpertiseBySkillUuids 为指定技能打上专精标记
	SetExpertiseBySkillUuids(characterUuid string, skillUuids []string) error

	// FindItems 查找角色的物品关联
	FindItems(characterUuid string) ([]model.CharacterItem, error)
	// CreateItems 批量创建物品关联
	CreateItems(items []model.CharacterItem) error

	// FindSpells 查找角色的已知法术
	FindSpells(characterUuid string) ([]model.CharacterSpell, error)
	// CreateSpells 批量创建已知法术（不去重，重复 id 产生重复行）
	CreateSpells(spells []model.CharacterSpell) error

	// FindChoices 查找角色的升级选择审计（按创建顺序）
	FindChoices(characterUuid string) ([]model.LevelUpChoice, error)
	// CreateChoice 追加一条升级选择记录
	CreateChoice(choice *model.LevelUpChoice) error
	// DeleteChoices 清空角色的升级选择审计
	DeleteChoices(characterUuid string) error

	// DeleteAssociations 删除角色独占的所有关联行（技能/物品/法术/审计）
	// 角色删除时级联调用
	DeleteAssociations(characterUuid string) error
}

// CampaignRepository 战役数据访问接口
type CampaignRepository interface {
	// FindByUuid 根据 UUID 查找战役
	FindByUuid(uuid string) (*model.Campaign, error)
	// FindByDmUserId 查找某用户主持的所有战役
	FindByDmUserId(dmUserId string) ([]model.Campaign, error)
	// Create 创建战役
	Create(campaign *model.Campaign) error
	// Update 更新战役信息
	Update(campaign *model.Campaign) error
	// SoftDeleteByUuid 软删除战役
	SoftDeleteByUuid(uuid string) error
}

// MemberRepository 战役成员数据访问接口
// 管理加入申请与正式成员（同一张表，按状态区分）
type MemberRepository interface {
	// FindByCampaignAndUser 根据战役和用户查找成员行
	FindByCampaignAndUser(campaignUuid, userUuid string) (*model.CampaignMember, error)
	// FindByCampaign 查找战役的全部成员行
	FindByCampaign(campaignUuid string) ([]model.CampaignMember, error)
	// FindByCampaignAndStatus 按状态查找战役成员行
	FindByCampaignAndStatus(campaignUuid string, status int8) ([]model.CampaignMember, error)
	// FindByUser 查找某用户的全部成员行
	FindByUser(userUuid string) ([]model.CampaignMember, error)
	// CountActiveByCampaign 统计战役当前 active 成员数（容量复核用）
	CountActiveByCampaign(campaignUuid string) (int64, error)
	// Create 创建成员行
	Create(member *model.CampaignMember) error
	// Update 更新成员行
	Update(member *model.CampaignMember) error
	// Delete 删除成员行（终态记录直接删行）
	Delete(campaignUuid, userUuid string) error
	// DeleteByCampaign 删除战役的全部成员行（战役删除级联）
	DeleteByCampaign(campaignUuid string) error
}

// GameSessionRepository 跑团场次数据访问接口
// 管理场次行及其独占的先攻条目
type GameSessionRepository interface {
	// FindByUuid 根据 UUID 查找场次
	FindByUuid(uuid string) (*model.CampaignSession, error)
	// FindActiveByCampaign 查找战役当前进行中的场次，不存在返回 CodeNotFound
	FindActiveByCampaign(campaignUuid string) (*model.CampaignSession, error)
	// FindByCampaign 查找战役的全部场次
	FindByCampaign(campaignUuid string) ([]model.CampaignSession, error)
	// Create 创建场次
	Create(session *model.CampaignSession) error
	// Update 更新场次
	Update(session *model.CampaignSession) error
	// DeleteByCampaign 删除战役的全部场次（战役删除级联）
	DeleteByCampaign(campaignUuid string) error

	// CreateEntry 创建先攻条目
	CreateEntry(entry *model.InitiativeEntry) error
	// FindEntriesBySession 查找场次的先攻条目，按 initiative_roll 降序
	// 同值条目之间没有第二排序键（沿用既有行为）
	FindEntriesBySession(sessionUuid string) ([]model.InitiativeEntry, error)
	// DeleteEntriesBySession 删除场次的全部先攻条目
	DeleteEntriesBySession(sessionUuid string) error
}

// CatalogRepository 目录数据访问接口
// 职业/种族/背景/技能/物品/法术/怪物/状态的只读查询，外加种子数据写入
type CatalogRepository interface {
	// GetClassByName 按名查找职业
	GetClassByName(name string) (*model.Class, error)
	// GetRaceByName 按名查找种族
	GetRaceByName(name string) (*model.Race, error)
	// GetBackgroundByName 按名查找背景
	GetBackgroundByName(name string) (*model.Background, error)
	// GetSkillByName 按名查找技能
	GetSkillByName(name string) (*model.Skill, error)
	// GetSkillsByUuids 批量按 UUID 查找技能
	GetSkillsByUuids(uuids []string) ([]model.Skill, error)
	// GetSpellsByUuids 批量按 UUID 查找法术
	GetSpellsByUuids(uuids []string) ([]model.Spell, error)
	// GetItemByName 按名查找物品
	GetItemByName(name string) (*model.Item, error)
	// GetMonsterByName 按名查找怪物
	GetMonsterByName(name string) (*model.Monster, error)
	// GetConditionByName 按名查找状态
	GetConditionByName(name string) (*model.Condition, error)

	// CountClasses 统计职业数，用于判断是否需要写入种子数据
	CountClasses() (int64, error)
	// SeedClasses 批量写入职业种子数据
	SeedClasses(classes []model.Class) error
	// SeedSkills 批量写入技能种子数据
	SeedSkills(skills []model.Skill) error
	// SeedSpells 批量写入法术种子数据
	SeedSpells(spells []model.Spell) error
	// SeedItems 批量写入物品种子数据
	SeedItems(items []model.Item) error
	// SeedRaces 批量写入种族种子数据
	SeedRaces(races []model.Race) error
	// SeedBackgrounds 批量写入背景种子数据
	SeedBackgrounds(backgrounds []model.Background) error
}

// ChatMessageRepository 战役实时消息数据访问接口
type ChatMessageRepository interface {
	// Create 落库一条广播消息
	Create(message *model.ChatMessage) error
	// FindByCampaign 查找战役最近的消息记录
	FindByCampaign(campaignUuid string, limit int) ([]model.ChatMessage, error)
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db          *gorm.DB              // GORM 数据库实例
	User        UserRepository        // 用户 Repository
	Character   CharacterRepository   // 角色 Repository
	Campaign    CampaignRepository    // 战役 Repository
	Member      MemberRepository      // 战役成员 Repository
	GameSession GameSessionRepository // 跑团场次 Repository
	Catalog     CatalogRepository     // 目录 Repository
	ChatMessage ChatMessageRepository // 实时消息 Repository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Character:   NewCharacterRepository(db),
		Campaign:    NewCampaignRepository(db),
		Member:      NewMemberRepository(db),
		GameSession: NewGameSessionRepository(db),
		Catalog:     NewCatalogRepository(db),
		ChatMessage: NewChatMessageRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// 无数据库实例时（如注入内存实现的测试场景）直接执行函数本身
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
