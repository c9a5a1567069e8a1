// Package catalog 提供只读目录数据的查询服务
// 本文件负责在职业表为空时写入 SRD 种子数据
// 特性种类标签在这里一次性确定，升级状态机只认标签不认特性名
package catalog

import (
	"encoding/json"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/enum/class/feature_kind_enum"
	"aethorias_chronicle_server/pkg/util/random"
)

// SeedIfEmpty 职业表为空时写入种子数据
// 幂等：已有数据时什么都不做
func SeedIfEmpty(repos *repository.Repositories) error {
	count, err := repos.Catalog.CountClasses()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	zap.L().Info("目录数据为空，写入 SRD 种子数据")
	return repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Catalog.SeedClasses(seedClasses()); err != nil {
			return err
		}
		if err := tx.Catalog.SeedSkills(seedSkills()); err != nil {
			return err
		}
		if err := tx.Catalog.SeedSpells(seedSpells()); err != nil {
			return err
		}
		if err := tx.Catalog.SeedItems(seedItems()); err != nil {
			return err
		}
		if err := tx.Catalog.SeedRaces(seedRaces()); err != nil {
			return err
		}
		return tx.Catalog.SeedBackgrounds(seedBackgrounds())
	})
}

// generic 构造普通特性
func generic(name string) model.ClassFeature {
	return model.ClassFeature{Name: name, Kind: feature_kind_enum.GENERIC}
}

// asi 属性值提升特性
func asi() model.ClassFeature {
	return model.ClassFeature{Name: "Ability Score Improvement", Kind: feature_kind_enum.ASI}
}

// expertise 专精特性
func expertise() model.ClassFeature {
	return model.ClassFeature{Name: "Expertise", Kind: feature_kind_enum.EXPERTISE}
}

// archetype 职业范型选择特性
func archetype(name string) model.ClassFeature {
	return model.ClassFeature{Name: name, Kind: feature_kind_enum.ARCHETYPE}
}

// casting 施法进度
func casting(cantrips, spells int) *model.SpellcastingEntry {
	return &model.SpellcastingEntry{CantripsKnown: cantrips, SpellsKnown: spells}
}

// mustJSON 种子数据在进程内构造，序列化失败属于程序错误
func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// profBonus 5e 规则的熟练加值：2 + (level-1)/4
func profBonus(level int) int {
	return 2 + (level-1)/4
}

// seedClasses 三个 SRD 职业：rogue / wizard / fighter
func seedClasses() []model.Class {
	return []model.Class{
		{
			Uuid:       "L" + random.GetNowAndLenRandomString(11),
			Name:       "rogue",
			HitDie:     8,
			LevelTable: mustJSON(rogueLevels()),
			StartingEquipment: mustJSON([]map[string]interface{}{
				{"item_name": "dagger", "quantity": 2},
				{"item_name": "shortsword", "quantity": 1},
				{"item_name": "thieves' tools", "quantity": 1},
			}),
		},
		{
			Uuid:       "L" + random.GetNowAndLenRandomString(11),
			Name:       "wizard",
			HitDie:     6,
			LevelTable: mustJSON(wizardLevels()),
			StartingEquipment: mustJSON([]map[string]interface{}{
				{"item_name": "quarterstaff", "quantity": 1},
				{"item_name": "spellbook", "quantity": 1},
				{"item_name": "component pouch", "quantity": 1},
			}),
		},
		{
			Uuid:       "L" + random.GetNowAndLenRandomString(11),
			Name:       "fighter",
			HitDie:     10,
			LevelTable: mustJSON(fighterLevels()),
			StartingEquipment: mustJSON([]map[string]interface{}{
				{"item_name": "longsword", "quantity": 1},
				{"item_name": "shield", "quantity": 1},
				{"item_name": "chain mail", "quantity": 1},
			}),
		},
	}
}

// rogueLevels 游荡者成长表
// 3 级选范型，4/8/10/12/16/19 级 ASI，1/6 级专精
func rogueLevels() []model.ClassLevelEntry {
	features := map[int][]model.ClassFeature{
		1:  {expertise(), generic("Sneak Attack"), generic("Thieves' Cant")},
		2:  {generic("Cunning Action")},
		3:  {archetype("Roguish Archetype")},
		4:  {asi()},
		5:  {generic("Uncanny Dodge")},
		6:  {expertise()},
		7:  {generic("Evasion")},
		8:  {asi()},
		9:  {},
		10: {asi()},
		11: {generic("Reliable Talent")},
		12: {asi()},
		13: {},
		14: {generic("Blindsense")},
		15: {generic("Slippery Mind")},
		16: {asi()},
		17: {},
		18: {generic("Elusive")},
		19: {asi()},
		20: {generic("Stroke of Luck")},
	}
	return buildLevels(features, nil)
}

// wizardLevels 法师成长表
// 每级已知法术 +2，戏法在 4/10 级增加
func wizardLevels() []model.ClassLevelEntry {
	features := map[int][]model.ClassFeature{
		1:  {generic("Spellcasting"), generic("Arcane Recovery")},
		2:  {archetype("Arcane Tradition")},
		3:  {},
		4:  {asi()},
		5:  {},
		6:  {},
		7:  {},
		8:  {asi()},
		9:  {},
		10: {},
		11: {},
		12: {asi()},
		13: {},
		14: {},
		15: {},
		16: {asi()},
		17: {},
		18: {generic("Spell Mastery")},
		19: {asi()},
		20: {generic("Signature Spells")},
	}
	spellcasting := func(level int) *model.SpellcastingEntry {
		cantrips := 3
		if level >= 10 {
			cantrips = 5
		} else if level >= 4 {
			cantrips = 4
		}
		return casting(cantrips, 6+(level-1)*2)
	}
	return buildLevels(features, spellcasting)
}

// fighterLevels 战士成长表
// 3 级选范型，ASI 频率最高（6/14 级额外获得）
func fighterLevels() []model.ClassLevelEntry {
	features := map[int][]model.ClassFeature{
		1:  {generic("Fighting Style"), generic("Second Wind")},
		2:  {generic("Action Surge")},
		3:  {archetype("Martial Archetype")},
		4:  {asi()},
		5:  {generic("Extra Attack")},
		6:  {asi()},
		7:  {},
		8:  {asi()},
		9:  {generic("Indomitable")},
		10: {},
		11: {},
		12: {asi()},
		13: {},
		14: {asi()},
		15: {},
		16: {asi()},
		17: {},
		18: {},
		19: {asi()},
		20: {},
	}
	return buildLevels(features, nil)
}

// buildLevels 按特性表拼出 1..20 级成长表
func buildLevels(features map[int][]model.ClassFeature, spellcasting func(level int) *model.SpellcastingEntry) []model.ClassLevelEntry {
	levels := make([]model.ClassLevelEntry, 0, 20)
	for level := 1; level <= 20; level++ {
		entry := model.ClassLevelEntry{
			Level:            level,
			ProficiencyBonus: profBonus(level),
			Features:         features[level],
		}
		if entry.Features == nil {
			entry.Features = []model.ClassFeature{}
		}
		if spellcasting != nil {
			entry.Spellcasting = spellcasting(level)
		}
		levels = append(levels, entry)
	}
	return levels
}

// seedSkills SRD 技能表
func seedSkills() []model.Skill {
	defs := []struct {
		name    string
		ability string
	}{
		{"acrobatics", "dexterity"},
		{"animal handling", "wisdom"},
		{"arcana", "intelligence"},
		{"athletics", "strength"},
		{"deception", "charisma"},
		{"history", "intelligence"},
		{"insight", "wisdom"},
		{"intimidation", "charisma"},
		{"investigation", "intelligence"},
		{"medicine", "wisdom"},
		{"nature", "intelligence"},
		{"perception", "wisdom"},
		{"performance", "charisma"},
		{"persuasion", "charisma"},
		{"religion", "intelligence"},
		{"sleight of hand", "dexterity"},
		{"stealth", "dexterity"},
		{"survival", "wisdom"},
	}
	skills := make([]model.Skill, 0, len(defs))
	for _, d := range defs {
		skills = append(skills, model.Skill{
			Uuid:    "K" + random.GetNowAndLenRandomString(11),
			Name:    d.name,
			Ability: d.ability,
		})
	}
	return skills
}

// seedSpells 少量 SRD 法术，够法师起步和测试用
func seedSpells() []model.Spell {
	defs := []struct {
		name   string
		level  int
		school string
	}{
		{"fire bolt", 0, "evocation"},
		{"mage hand", 0, "conjuration"},
		{"prestidigitation", 0, "transmutation"},
		{"light", 0, "evocation"},
		{"magic missile", 1, "evocation"},
		{"shield", 1, "abjuration"},
		{"sleep", 1, "enchantment"},
		{"detect magic", 1, "divination"},
		{"misty step", 2, "conjuration"},
		{"invisibility", 2, "illusion"},
		{"fireball", 3, "evocation"},
		{"counterspell", 3, "abjuration"},
	}
	spells := make([]model.Spell, 0, len(defs))
	for _, d := range defs {
		spells = append(spells, model.Spell{
			Uuid:       "M" + random.GetNowAndLenRandomString(11),
			Name:       d.name,
			SpellLevel: d.level,
			School:     d.school,
		})
	}
	return spells
}

// seedRaces SRD 基础种族
func seedRaces() []model.Race {
	names := []string{"human", "elf", "dwarf", "halfling", "half-orc", "tiefling"}
	races := make([]model.Race, 0, len(names))
	for _, name := range names {
		races = append(races, model.Race{
			Uuid: "R" + random.GetNowAndLenRandomString(11),
			Name: name,
		})
	}
	return races
}

// seedBackgrounds SRD 背景，附带各自的熟练技能
func seedBackgrounds() []model.Background {
	defs := []struct {
		name   string
		skills []string
	}{
		{"criminal", []string{"deception", "stealth"}},
		{"sage", []string{"arcana", "history"}},
		{"soldier", []string{"athletics", "intimidation"}},
		{"acolyte", []string{"insight", "religion"}},
		{"urchin", []string{"sleight of hand", "stealth"}},
	}
	backgrounds := make([]model.Background, 0, len(defs))
	for _, d := range defs {
		backgrounds = append(backgrounds, model.Background{
			Uuid:       "B" + random.GetNowAndLenRandomString(11),
			Name:       d.name,
			SkillNames: mustJSON(d.skills),
		})
	}
	return backgrounds
}

// seedItems 起始装备涉及的物品
func seedItems() []model.Item {
	names := []string{
		"dagger", "shortsword", "thieves' tools",
		"quarterstaff", "spellbook", "component pouch",
		"longsword", "shield", "chain mail",
	}
	items := make([]model.Item, 0, len(names))
	for _, name := range names {
		items = append(items, model.Item{
			Uuid: "I" + random.GetNowAndLenRandomString(11),
			Name: name,
		})
	}
	return items
}
