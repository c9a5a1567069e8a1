// Package progression 实现角色进阶引擎
// 本文件负责拼装角色完整聚合响应
// 每个写操作都返回完整聚合，调用方无需跟进读取
package progression

import (
	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
)

// BuildCharacterRespond 读出角色的全部关联行并拼装聚合响应
func BuildCharacterRespond(repos *repository.Repositories, character *model.Character) (*respond.CharacterRespond, error) {
	skills, err := repos.Character.FindSkills(character.Uuid)
	if err != nil {
		return nil, err
	}
	items, err := repos.Character.FindItems(character.Uuid)
	if err != nil {
		return nil, err
	}
	spells, err := repos.Character.FindSpells(character.Uuid)
	if err != nil {
		return nil, err
	}
	choices, err := repos.Character.FindChoices(character.Uuid)
	if err != nil {
		return nil, err
	}

	rsp := &respond.CharacterRespond{
		Uuid:               character.Uuid,
		OwnerId:            character.OwnerId,
		Name:               character.Name,
		ClassName:          character.ClassName,
		RaceName:           character.RaceName,
		BackgroundName:     character.BackgroundName,
		Level:              character.Level,
		ExperiencePoints:   character.ExperiencePoints,
		Strength:           character.Strength,
		Dexterity:          character.Dexterity,
		Constitution:       character.Constitution,
		Intelligence:       character.Intelligence,
		Wisdom:             character.Wisdom,
		Charisma:           character.Charisma,
		ArmorClass:         character.ArmorClass,
		HpCurrent:          character.HpCurrent,
		HpMax:              character.HpMax,
		HitDieType:         character.HitDieType,
		HitDiceTotal:       character.HitDiceTotal,
		HitDiceRemaining:   character.HitDiceRemaining,
		DeathSaveSuccesses: character.DeathSaveSuccesses,
		DeathSaveFailures:  character.DeathSaveFailures,
		LevelUpStatus:      character.LevelUpStatus,
		RoguishArchetype:   character.RoguishArchetype,
		IsAscended:         character.IsAscended,
		CreatedAt:          character.CreatedAt.Format("2006-01-02 15:04:05"),
		Skills:             make([]respond.CharacterSkillRespond, 0, len(skills)),
		Items:              make([]respond.CharacterItemRespond, 0, len(items)),
		Spells:             make([]respond.CharacterSpellRespond, 0, len(spells)),
		CompletedChoices:   make([]respond.LevelUpChoiceRespond, 0, len(choices)),
	}

	for _, s := range skills {
		rsp.Skills = append(rsp.Skills, respond.CharacterSkillRespond{
			SkillUuid:    s.SkillUuid,
			SkillName:    s.SkillName,
			IsProficient: s.IsProficient == 1,
			HasExpertise: s.HasExpertise == 1,
		})
	}
	for _, i := range items {
		rsp.Items = append(rsp.Items, respond.CharacterItemRespond{
			ItemUuid: i.ItemUuid,
			ItemName: i.ItemName,
			Quantity: i.Quantity,
		})
	}
	for _, sp := range spells {
		rsp.Spells = append(rsp.Spells, respond.CharacterSpellRespond{
			SpellUuid: sp.SpellUuid,
			SpellName: sp.SpellName,
			IsCantrip: sp.IsCantrip == 1,
		})
	}
	for _, c := range choices {
		rsp.CompletedChoices = append(rsp.CompletedChoices, respond.LevelUpChoiceRespond{
			Level:      c.Level,
			ChoiceType: c.ChoiceType,
		})
	}
	return rsp, nil
}
