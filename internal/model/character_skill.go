package model

import "gorm.io/gorm"

// CharacterSkill 角色-技能关联表
// 由角色独占，角色删除时级联删除
type CharacterSkill struct {
	gorm.Model
	CharacterUuid string `gorm:"column:character_uuid;index;type:char(20);not null;comment:角色id"`
	SkillUuid     string `gorm:"column:skill_uuid;type:char(20);not null;comment:技能id"`
	SkillName     string `gorm:"column:skill_name;type:varchar(30);not null;comment:技能名（冗余）"`
	IsProficient  int8   `gorm:"column:is_proficient;default:1;comment:是否熟练，0.否，1.是"`
	HasExpertise  int8   `gorm:"column:has_expertise;default:0;comment:是否专精，0.否，1.是"`
}

func (CharacterSkill) TableName() string {
	return "character_skill"
}
