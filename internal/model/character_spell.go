package model

import "gorm.io/gorm"

// CharacterSpell 角色已知法术关联表
// 由角色独占
// 法术选择不保证按 spell id 幂等：重复提交同一 id 会产生重复行，去重由调用方负责
type CharacterSpell struct {
	gorm.Model
	CharacterUuid string `gorm:"column:character_uuid;index;type:char(20);not null;comment:角色id"`
	SpellUuid     string `gorm:"column:spell_uuid;type:char(20);not null;comment:法术id"`
	SpellName     string `gorm:"column:spell_name;type:varchar(40);not null;comment:法术名（冗余）"`
	IsCantrip     int8   `gorm:"column:is_cantrip;default:0;comment:是否戏法，0.否，1.是"`
}

func (CharacterSpell) TableName() string {
	return "character_spell"
}
