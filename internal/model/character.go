// Package model 定义数据库实体模型
// 本文件定义角色模型，是进阶引擎操作的核心实体
package model

import (
	"gorm.io/gorm"

	"aethorias_chronicle_server/pkg/constants"
)

// Character 角色模型
// 对应数据库 character 表
// 角色的所有进阶数值（等级、经验、生命、死亡豁免）都落在这一行上，
// 技能/物品/法术关联与升级选择审计分别在各自的关联表中，由角色独占
type Character struct {
	gorm.Model

	// Uuid 角色唯一标识
	// 格式：C + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:角色唯一id"`

	// OwnerId 角色所属用户 UUID
	OwnerId string `gorm:"column:owner_id;index;type:char(20);not null;comment:所属用户id"`

	// Name 角色名
	Name string `gorm:"column:name;type:varchar(30);not null;comment:角色名"`

	// ClassName 职业名，对应 class 表的 name
	ClassName string `gorm:"column:class_name;type:varchar(30);not null;comment:职业名"`

	// RaceName 种族名
	RaceName string `gorm:"column:race_name;type:varchar(30);comment:种族名"`

	// BackgroundName 背景名
	BackgroundName string `gorm:"column:background_name;type:varchar(30);comment:背景名"`

	// Level 当前等级
	// 普通层级 1..20，飞升层级 1..50
	Level int `gorm:"column:level;default:1;not null;comment:等级"`

	// ExperiencePoints 经验值，单调非负
	ExperiencePoints int64 `gorm:"column:experience_points;default:0;not null;comment:经验值"`

	// 六项属性值，范围 1..上限（普通 30 / 飞升 50）
	Strength     int `gorm:"column:strength;default:10;not null;comment:力量"`
	Dexterity    int `gorm:"column:dexterity;default:10;not null;comment:敏捷"`
	Constitution int `gorm:"column:constitution;default:10;not null;comment:体质"`
	Intelligence int `gorm:"column:intelligence;default:10;not null;comment:智力"`
	Wisdom       int `gorm:"column:wisdom;default:10;not null;comment:感知"`
	Charisma     int `gorm:"column:charisma;default:10;not null;comment:魅力"`

	// ArmorClass 护甲等级
	ArmorClass int `gorm:"column:armor_class;default:10;not null;comment:护甲等级"`

	// HpCurrent / HpMax 当前与最大生命值
	HpCurrent int `gorm:"column:hp_current;not null;comment:当前生命值"`
	HpMax     int `gorm:"column:hp_max;not null;comment:最大生命值"`

	// HitDieType 生命骰面数，由职业决定，如 8 表示 d8
	HitDieType int `gorm:"column:hit_die_type;not null;comment:生命骰面数"`

	// HitDiceTotal / HitDiceRemaining 生命骰总数与剩余数
	// 不变式：HitDiceRemaining <= HitDiceTotal == Level
	HitDiceTotal     int `gorm:"column:hit_dice_total;default:1;not null;comment:生命骰总数"`
	HitDiceRemaining int `gorm:"column:hit_dice_remaining;default:1;not null;comment:生命骰剩余数"`

	// DeathSaveSuccesses / DeathSaveFailures 死亡豁免计数，各自 0..3
	// 任一计数到 3 时两者同时清零（稳定或死亡由叙事层解释）
	DeathSaveSuccesses int8 `gorm:"column:death_save_successes;default:0;not null;comment:死亡豁免成功数"`
	DeathSaveFailures  int8 `gorm:"column:death_save_failures;default:0;not null;comment:死亡豁免失败数"`

	// LevelUpStatus 升级状态机的当前待定步骤
	// NULL 表示已结算，取值见 pkg/enum/character/level_up_status_enum
	LevelUpStatus *string `gorm:"column:level_up_status;type:varchar(40);comment:升级待定步骤"`

	// RoguishArchetype 职业范型，选定一次后不再变更
	RoguishArchetype *string `gorm:"column:roguish_archetype;type:varchar(40);comment:职业范型"`

	// IsAscended 飞升层级标志
	// 0=普通层级（等级/属性上限 20/30），1=飞升层级（50/50）
	IsAscended int8 `gorm:"column:is_ascended;default:0;not null;comment:是否飞升层级"`

	// Version 乐观锁版本号
	// 并发升级操作通过版本比对防止状态/审计对写花
	Version int `gorm:"column:version;default:0;not null;comment:乐观锁版本号"`
}

// TableName 指定表名
func (Character) TableName() string {
	return "character"
}

// AbilityScore 按属性名取属性值
// 属性名使用小写英文（strength..charisma），未知属性返回 false
func (c *Character) AbilityScore(ability string) (int, bool) {
	switch ability {
	case "strength":
		return c.Strength, true
	case "dexterity":
		return c.Dexterity, true
	case "constitution":
		return c.Constitution, true
	case "intelligence":
		return c.Intelligence, true
	case "wisdom":
		return c.Wisdom, true
	case "charisma":
		return c.Charisma, true
	}
	return 0, false
}

// AddAbilityScore 按属性名累加属性值
func (c *Character) AddAbilityScore(ability string, delta int) bool {
	switch ability {
	case "strength":
		c.Strength += delta
	case "dexterity":
		c.Dexterity += delta
	case "constitution":
		c.Constitution += delta
	case "intelligence":
		c.Intelligence += delta
	case "wisdom":
		c.Wisdom += delta
	case "charisma":
		c.Charisma += delta
	default:
		return false
	}
	return true
}

// LevelCap 返回当前层级的等级上限
func (c *Character) LevelCap() int {
	if c.IsAscended == 1 {
		return constants.LEVEL_CAP_ASCENDED
	}
	return constants.LEVEL_CAP_NORMAL
}

// AbilityCap 返回当前层级的属性值上限
func (c *Character) AbilityCap() int {
	if c.IsAscended == 1 {
		return constants.ABILITY_CAP_ASCENDED
	}
	return constants.ABILITY_CAP_NORMAL
}
