// Package model 定义数据库实体模型
// 本文件定义只读目录数据中的小型实体：种族、背景、技能、物品、法术、怪物、状态
// 这些实体只做按名/按id查询，不参与状态机
package model

import "gorm.io/gorm"

// Race 种族
type Race struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:种族唯一id"`
	Name        string `gorm:"column:name;uniqueIndex;type:varchar(30);not null;comment:种族名"`
	Description string `gorm:"column:description;type:varchar(500);comment:描述"`
	Speed       int    `gorm:"column:speed;default:30;comment:移动速度"`
}

func (Race) TableName() string {
	return "race"
}

// Background 背景
type Background struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:背景唯一id"`
	Name        string `gorm:"column:name;uniqueIndex;type:varchar(30);not null;comment:背景名"`
	Description string `gorm:"column:description;type:varchar(500);comment:描述"`
	// SkillNames 背景附带的熟练技能名，JSON 数组文本
	SkillNames string `gorm:"column:skill_names;type:varchar(255);comment:附带技能JSON"`
}

func (Background) TableName() string {
	return "background"
}

// Skill 技能
type Skill struct {
	gorm.Model
	Uuid    string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:技能唯一id"`
	Name    string `gorm:"column:name;uniqueIndex;type:varchar(30);not null;comment:技能名"`
	Ability string `gorm:"column:ability;type:varchar(20);not null;comment:关联属性"`
}

func (Skill) TableName() string {
	return "skill"
}

// Item 物品
type Item struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:物品唯一id"`
	Name        string `gorm:"column:name;uniqueIndex;type:varchar(30);not null;comment:物品名"`
	Description string `gorm:"column:description;type:varchar(500);comment:描述"`
	WeightLbs   int    `gorm:"column:weight_lbs;default:0;comment:重量(磅)"`
	CostGp      int    `gorm:"column:cost_gp;default:0;comment:价格(金币)"`
}

func (Item) TableName() string {
	return "item"
}

// Spell 法术
type Spell struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:法术唯一id"`
	Name        string `gorm:"column:name;uniqueIndex;type:varchar(40);not null;comment:法术名"`
	SpellLevel  int    `gorm:"column:spell_level;not null;comment:环位，0表示戏法"`
	School      string `gorm:"column:school;type:varchar(20);comment:学派"`
	Description string `gorm:"column:description;type:TEXT;comment:描述"`
}

func (Spell) TableName() string {
	return "spell"
}

// Monster 怪物
type Monster struct {
	gorm.Model
	Uuid           string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:怪物唯一id"`
	Name           string `gorm:"column:name;uniqueIndex;type:varchar(40);not null;comment:怪物名"`
	ChallengeLevel int    `gorm:"column:challenge_level;default:0;comment:挑战等级"`
	HpMax          int    `gorm:"column:hp_max;default:1;comment:最大生命值"`
	ArmorClass     int    `gorm:"column:armor_class;default:10;comment:护甲等级"`
}

func (Monster) TableName() string {
	return "monster"
}

// Condition 状态（如 poisoned / prone）
type Condition struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:状态唯一id"`
	Name        string `gorm:"column:name;uniqueIndex;type:varchar(30);not null;comment:状态名"`
	Description string `gorm:"column:description;type:varchar(500);comment:描述"`
}

func (Condition) TableName() string {
	return "condition"
}
