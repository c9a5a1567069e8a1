package respond

// CharacterSkillRespond 角色技能关联
type CharacterSkillRespond struct {
	SkillUuid    string `json:"skill_uuid"`
	SkillName    string `json:"skill_name"`
	IsProficient bool   `json:"is_proficient"`
	HasExpertise bool   `json:"has_expertise"`
}

// CharacterItemRespond 角色物品关联
type CharacterItemRespond struct {
	ItemUuid string `json:"item_uuid"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// CharacterSpellRespond 角色已知法术
type CharacterSpellRespond struct {
	SpellUuid string `json:"spell_uuid"`
	SpellName string `json:"spell_name"`
	IsCantrip bool   `json:"is_cantrip"`
}

// LevelUpChoiceRespond 升级选择审计记录
type LevelUpChoiceRespond struct {
	Level      int    `json:"level"`
	ChoiceType string `json:"choice_type"`
}

// CharacterRespond 角色完整聚合响应
// 每个写操作都返回完整聚合，调用方无需跟进读取
// 使用位置:
//   - internal/service/character/service.go: 所有读写操作
//   - internal/service/progression/service.go: 所有写操作
type CharacterRespond struct {
	Uuid               string                  `json:"uuid"`
	OwnerId            string                  `json:"owner_id"`
	Name               string                  `json:"name"`
	ClassName          string                  `json:"class_name"`
	RaceName           string                  `json:"race_name"`
	BackgroundName     string                  `json:"background_name"`
	Level              int                     `json:"level"`
	ExperiencePoints   int64                   `json:"experience_points"`
	Strength           int                     `json:"strength"`
	Dexterity          int                     `json:"dexterity"`
	Constitution       int                     `json:"constitution"`
	Intelligence       int                     `json:"intelligence"`
	Wisdom             int                     `json:"wisdom"`
	Charisma           int                     `json:"charisma"`
	ArmorClass         int                     `json:"armor_class"`
	HpCurrent          int                     `json:"hp_current"`
	HpMax              int                     `json:"hp_max"`
	HitDieType         int                     `json:"hit_die_type"`
	HitDiceTotal       int                     `json:"hit_dice_total"`
	HitDiceRemaining   int                     `json:"hit_dice_remaining"`
	DeathSaveSuccesses int8                    `json:"death_save_successes"`
	DeathSaveFailures  int8                    `json:"death_save_failures"`
	LevelUpStatus      *string                 `json:"level_up_status"`
	RoguishArchetype   *string                 `json:"roguish_archetype"`
	IsAscended         int8                    `json:"is_ascended"`
	CreatedAt          string                  `json:"created_at"`
	Skills             []CharacterSkillRespond `json:"skills"`
	Items              []CharacterItemRespond  `json:"items"`
	Spells             []CharacterSpellRespond `json:"spells"`
	CompletedChoices   []LevelUpChoiceRespond  `json:"completed_choices"`
}

// HpGainRespond 确认升级生命值响应，附带本次增量
// 使用位置:
//   - internal/service/progression/service.go: ConfirmHpIncrease
type HpGainRespond struct {
	HpGained  int              `json:"hp_gained"`
	Character CharacterRespond `json:"character"`
}
