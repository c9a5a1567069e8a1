package model

import "gorm.io/gorm"

// LevelUpChoice 升级选择审计表
// 追加式记录角色在哪一级完成了哪种升级步骤（hp/asi/expertise/archetype/spells）
// 注意：角色每次升级时本表会被整体清空（沿用既有行为，见 DESIGN.md）
type LevelUpChoice struct {
	gorm.Model
	CharacterUuid string `gorm:"column:character_uuid;index;type:char(20);not null;comment:角色id"`
	Level         int    `gorm:"column:level;not null;comment:完成步骤时的等级"`
	ChoiceType    string `gorm:"column:choice_type;type:varchar(20);not null;comment:步骤类型"`
}

func (LevelUpChoice) TableName() string {
	return "level_up_choice"
}
