// Package progression 实现角色进阶引擎
// 本文件是引擎的纯计算核心：经验阈值、属性调整值、升级状态机的推导
// 不触数据库，便于直接做表驱动测试
package progression

import (
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/enum/character/level_up_status_enum"
	"aethorias_chronicle_server/pkg/enum/class/feature_kind_enum"
)

// xpThresholds 5e 规则的累计经验阈值
// 下标 i 对应等级 i+1 的门槛，等级取"阈值不超过当前经验的最高级"
var xpThresholds = [constants.LEVEL_CAP_NORMAL]int64{
	0,      // 1
	300,    // 2
	900,    // 3
	2700,   // 4
	6500,   // 5
	14000,  // 6
	23000,  // 7
	34000,  // 8
	48000,  // 9
	64000,  // 10
	85000,  // 11
	100000, // 12
	120000, // 13
	140000, // 14
	165000, // 15
	195000, // 16
	225000, // 17
	265000, // 18
	305000, // 19
	355000, // 20
}

// ascendedXpStep 20 级之后每级固定增加的经验量（飞升层级）
const ascendedXpStep = 50000

// XpToLevel 按累计经验推导等级，下限 1，上限由层级决定
func XpToLevel(xp int64, levelCap int) int {
	level := 1
	for i := 0; i < len(xpThresholds); i++ {
		if xp >= xpThresholds[i] {
			level = i + 1
		} else {
			break
		}
	}
	// 飞升层级：20 级之后每 50000 经验升一级
	if level == constants.LEVEL_CAP_NORMAL && levelCap > constants.LEVEL_CAP_NORMAL {
		extra := (xp - xpThresholds[constants.LEVEL_CAP_NORMAL-1]) / ascendedXpStep
		level += int(extra)
	}
	if level > levelCap {
		level = levelCap
	}
	return level
}

// LevelThreshold 返回指定等级的累计经验门槛
func LevelThreshold(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level <= constants.LEVEL_CAP_NORMAL {
		return xpThresholds[level-1]
	}
	return xpThresholds[constants.LEVEL_CAP_NORMAL-1] + int64(level-constants.LEVEL_CAP_NORMAL)*ascendedXpStep
}

// AbilityModifier 属性调整值 = floor((score-10)/2)
// Go 的整数除法向零截断，负数侧需要修正成向下取整
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// AverageHpGain 均值法的单级生命值增量：floor(die/2)+1 加体质调整，下限 1
func AverageHpGain(hitDie, conModifier int) int {
	gain := hitDie/2 + 1 + conModifier
	if gain < 1 {
		gain = 1
	}
	return gain
}

// hasChoice 审计中是否已有指定等级的指定选择
func hasChoice(choices []model.LevelUpChoice, level int, choiceType string) bool {
	for i := range choices {
		if choices[i].Level == level && choices[i].ChoiceType == choiceType {
			return true
		}
	}
	return false
}

// hasFeatureKind 成长表条目是否含有指定种类的特性
func hasFeatureKind(entry *model.ClassLevelEntry, kind string) bool {
	for i := range entry.Features {
		if entry.Features[i].Kind == kind {
			return true
		}
	}
	return false
}

// RecomputeStatus 推导升级状态机的下一个待定步骤
// 在每次经验发放和每次解决动作之后调用，按固定优先级扫描：
// hp → asi → expertise → archetype → spells，第一个未满足的条件成为新状态，
// 全部满足时返回 nil（已结算）。此顺序是设计约定，必须保持稳定
//
// cantripsKnown / spellsKnown 为角色当前已知的戏法数与法术数，
// 与成长表该级的施法进度比较，有缺口且本级尚无 spells 选择时进入 pending_spells
func RecomputeStatus(character *model.Character, levels []model.ClassLevelEntry, choices []model.LevelUpChoice, cantripsKnown, spellsKnown int) *string {
	entry := model.FindLevelEntry(levels, character.Level)
	if entry == nil {
		// 成长表没有覆盖当前等级（例如飞升层级超出 20 级的部分），视为无待定步骤
		return nil
	}

	if character.Level > 1 && !hasChoice(choices, character.Level, level_up_status_enum.CHOICE_HP) {
		s := level_up_status_enum.PENDING_HP
		return &s
	}
	if hasFeatureKind(entry, feature_kind_enum.ASI) && !hasChoice(choices, character.Level, level_up_status_enum.CHOICE_ASI) {
		s := level_up_status_enum.PENDING_ASI
		return &s
	}
	if hasFeatureKind(entry, feature_kind_enum.EXPERTISE) && !hasChoice(choices, character.Level, level_up_status_enum.CHOICE_EXPERTISE) {
		s := level_up_status_enum.PENDING_EXPERTISE
		return &s
	}
	if hasFeatureKind(entry, feature_kind_enum.ARCHETYPE) && character.RoguishArchetype == nil {
		s := level_up_status_enum.PENDING_ARCHETYPE
		return &s
	}
	if entry.Spellcasting != nil &&
		(entry.Spellcasting.CantripsKnown > cantripsKnown || entry.Spellcasting.SpellsKnown > spellsKnown) &&
		!hasChoice(choices, character.Level, level_up_status_enum.CHOICE_SPELLS) {
		s := level_up_status_enum.PENDING_SPELLS
		return &s
	}
	return nil
}
