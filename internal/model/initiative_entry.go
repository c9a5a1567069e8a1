package model

import "gorm.io/gorm"

// InitiativeEntry 先攻条目模型
// 对应数据库 initiative_entry 表，由场次独占
// CharacterUuid 与 CombatantName 二者必须恰好设置其一：
// 玩家角色用角色引用，临时怪物/NPC 用自由文本名
type InitiativeEntry struct {
	gorm.Model

	// Uuid 条目唯一标识
	// 格式：E + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:条目uuid"`

	// SessionUuid 所属场次 UUID
	SessionUuid string `gorm:"column:session_uuid;index;type:char(20);not null;comment:场次id"`

	// CharacterUuid 角色引用（与 CombatantName 互斥）
	CharacterUuid *string `gorm:"column:character_uuid;type:char(20);comment:角色id"`

	// CombatantName 自由文本参战者名（与 CharacterUuid 互斥）
	CombatantName *string `gorm:"column:combatant_name;type:varchar(40);comment:参战者名"`

	// InitiativeRoll 先攻骰结果，场次内按此值降序排列
	InitiativeRoll int `gorm:"column:initiative_roll;not null;comment:先攻骰结果"`
}

func (InitiativeEntry) TableName() string {
	return "initiative_entry"
}
