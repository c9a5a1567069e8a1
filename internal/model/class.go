// Package model 定义数据库实体模型
// 本文件定义职业模型及其逐级成长表
package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Class 职业模型
// 对应数据库 class 表，属于只读目录数据
// 逐级成长表以 JSON 文本整体存储，进阶引擎在装载时解码为 []ClassLevelEntry
type Class struct {
	gorm.Model

	// Uuid 职业唯一标识
	// 格式：L + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:职业唯一id"`

	// Name 职业名（小写英文，如 rogue / wizard）
	Name string `gorm:"column:name;uniqueIndex;type:varchar(30);not null;comment:职业名"`

	// HitDie 生命骰面数，如 8 表示 d8
	HitDie int `gorm:"column:hit_die;not null;comment:生命骰面数"`

	// LevelTable 逐级成长表，JSON 数组文本
	// 元素结构见 ClassLevelEntry
	LevelTable string `gorm:"column:level_table;type:TEXT;not null;comment:逐级成长表JSON"`

	// StartingEquipment 起始装备，JSON 数组文本 [{item_name, quantity}]
	StartingEquipment string `gorm:"column:starting_equipment;type:TEXT;comment:起始装备JSON"`
}

func (Class) TableName() string {
	return "class"
}

// ClassFeature 职业特性
// Kind 是数据装载阶段打好的种类标签（见 pkg/enum/class/feature_kind_enum），
// 运行期判断升级步骤时只看 Kind，不再对特性名做字符串匹配
type ClassFeature struct {
	Name string `json:"name"` // 特性名，如 "Ability Score Improvement"
	Kind string `json:"kind"` // 特性种类标签
}

// SpellcastingEntry 某一级的施法进度
type SpellcastingEntry struct {
	CantripsKnown int `json:"cantrips_known"` // 已知戏法数
	SpellsKnown   int `json:"spells_known"`   // 已知法术数
}

// ClassLevelEntry 职业成长表中的一级
type ClassLevelEntry struct {
	Level            int                `json:"level"`                  // 等级
	ProficiencyBonus int                `json:"proficiency_bonus"`      // 熟练加值
	Features         []ClassFeature     `json:"features"`               // 该级获得的特性
	Spellcasting     *SpellcastingEntry `json:"spellcasting,omitempty"` // 施法进度，非施法职业为空
}

// DecodeLevels 解码逐级成长表
func (c *Class) DecodeLevels() ([]ClassLevelEntry, error) {
	var levels []ClassLevelEntry
	if err := json.Unmarshal([]byte(c.LevelTable), &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// LevelEntry 取指定等级的成长表条目，找不到返回 nil
func FindLevelEntry(levels []ClassLevelEntry, level int) *ClassLevelEntry {
	for i := range levels {
		if levels[i].Level == level {
			return &levels[i]
		}
	}
	return nil
}
