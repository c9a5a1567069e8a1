// Package progression 实现角色进阶引擎
// 本文件是引擎的事务外壳：权限校验、状态机守卫、审计记录、乐观锁保存
// 纯计算部分见 core.go
package progression

import (
	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/internal/service/catalog"
	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/enum/character/level_up_status_enum"
	"aethorias_chronicle_server/pkg/errorx"
)

// progressionService 进阶引擎实现
type progressionService struct {
	repos   *repository.Repositories
	catalog catalog.Store
}

// NewProgressionService 构造函数
func NewProgressionService(repos *repository.Repositories, catalogStore catalog.Store) *progressionService {
	return &progressionService{repos: repos, catalog: catalogStore}
}

// loadOwnedCharacter 读出角色并校验操作者是所有者或管理员
func (s *progressionService) loadOwnedCharacter(tx *repository.Repositories, actorId, characterUuid string) (*model.Character, error) {
	character, err := tx.Character.FindByUuid(characterUuid)
	if err != nil {
		return nil, err
	}
	if character.OwnerId == actorId {
		return character, nil
	}
	actor, err := tx.User.FindByUuid(actorId)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin != 1 {
		return nil, errorx.New(errorx.CodeForbidden, "没有操作该角色的权限")
	}
	return character, nil
}

// classLevels 读出角色职业的成长表
func (s *progressionService) classLevels(character *model.Character) ([]model.ClassLevelEntry, error) {
	class, err := s.catalog.GetClassByName(character.ClassName)
	if err != nil {
		return nil, err
	}
	levels, err := class.DecodeLevels()
	if err != nil {
		zap.L().Error("职业成长表解码失败", zap.String("class", character.ClassName), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return levels, nil
}

// spellCounts 统计角色当前已知的戏法数与法术数
func spellCounts(tx *repository.Repositories, characterUuid string) (cantrips, spells int, err error) {
	known, err := tx.Character.FindSpells(characterUuid)
	if err != nil {
		return 0, 0, err
	}
	for i := range known {
		if known[i].IsCantrip == 1 {
			cantrips++
		} else {
			spells++
		}
	}
	return cantrips, spells, nil
}

// recomputeStatus 重新推导状态机并写回角色（不保存）
func (s *progressionService) recomputeStatus(tx *repository.Repositories, character *model.Character) error {
	levels, err := s.classLevels(character)
	if err != nil {
		return err
	}
	choices, err := tx.Character.FindChoices(character.Uuid)
	if err != nil {
		return err
	}
	cantrips, spells, err := spellCounts(tx, character.Uuid)
	if err != nil {
		return err
	}
	character.LevelUpStatus = RecomputeStatus(character, levels, choices, cantrips, spells)
	return nil
}

// requireStatus 状态机守卫
func requireStatus(character *model.Character, want string) error {
	if character.LevelUpStatus == nil || *character.LevelUpStatus != want {
		return errorx.Newf(errorx.CodeInvalidState, "当前升级状态不允许该操作，需要 %s", want)
	}
	return nil
}

// recordChoice 追加一条升级选择审计
func recordChoice(tx *repository.Repositories, character *model.Character, choiceType string) error {
	return tx.Character.CreateChoice(&model.LevelUpChoice{
		CharacterUuid: character.Uuid,
		Level:         character.Level,
		ChoiceType:    choiceType,
	})
}

// AwardXp 发放经验值
// 经验单调递增；跨过阈值时提升等级、重置生命骰、清空整个升级审计并强制进入 pending_hp
func (s *progressionService) AwardXp(actorId, characterUuid string, req request.AwardXpRequest) (*respond.CharacterRespond, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "经验值必须为正数")
	}

	var rsp *respond.CharacterRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}

		character.ExperiencePoints += req.Amount
		newLevel := XpToLevel(character.ExperiencePoints, character.LevelCap())
		if newLevel > character.Level {
			character.Level = newLevel
			character.HitDiceTotal = newLevel
			character.HitDiceRemaining = newLevel
			// 升级时清空整个审计并强制从 pending_hp 开始，
			// 包括既往等级的记录也一并清掉（沿用既有行为）
			if err := tx.Character.DeleteChoices(character.Uuid); err != nil {
				return err
			}
			status := level_up_status_enum.PENDING_HP
			character.LevelUpStatus = &status
		}

		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// ConfirmHpIncrease 确认升级生命值
// average 取 floor(die/2)+1，roll 用提交的掷骰值；加体质调整后单级增量下限 1
func (s *progressionService) ConfirmHpIncrease(actorId, characterUuid string, req request.ConfirmHpRequest) (*respond.HpGainRespond, error) {
	var rsp *respond.HpGainRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}
		if err := requireStatus(character, level_up_status_enum.PENDING_HP); err != nil {
			return err
		}

		conMod := AbilityModifier(character.Constitution)
		var gain int
		switch req.Method {
		case "average":
			gain = AverageHpGain(character.HitDieType, conMod)
		case "roll":
			if req.RollValue < 1 || req.RollValue > character.HitDieType {
				return errorx.Newf(errorx.CodeInvalidParam, "掷骰值必须在 1..%d 之间", character.HitDieType)
			}
			gain = req.RollValue + conMod
			if gain < 1 {
				gain = 1
			}
		default:
			return errorx.New(errorx.CodeInvalidParam, "method 只能是 average 或 roll")
		}

		character.HpMax += gain
		character.HpCurrent += gain
		if err := recordChoice(tx, character, level_up_status_enum.CHOICE_HP); err != nil {
			return err
		}
		if err := s.recomputeStatus(tx, character); err != nil {
			return err
		}
		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}

		characterRsp, err := BuildCharacterRespond(tx, character)
		if err != nil {
			return err
		}
		rsp = &respond.HpGainRespond{HpGained: gain, Character: *characterRsp}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// ApplyAsi 应用属性值提升
// 本次分配合计 1..2 点，且不得把属性推过当前层级的上限
func (s *progressionService) ApplyAsi(actorId, characterUuid string, req request.ApplyAsiRequest) (*respond.CharacterRespond, error) {
	total := 0
	for ability, delta := range req.Assignments {
		if delta <= 0 {
			return nil, errorx.Newf(errorx.CodeInvalidParam, "属性 %s 的增量必须为正数", ability)
		}
		total += delta
	}
	if total < 1 || total > 2 {
		return nil, errorx.New(errorx.CodeInvalidParam, "属性值提升合计必须为 1..2 点")
	}

	var rsp *respond.CharacterRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}
		if err := requireStatus(character, level_up_status_enum.PENDING_ASI); err != nil {
			return err
		}

		limit := character.AbilityCap()
		for ability, delta := range req.Assignments {
			score, ok := character.AbilityScore(ability)
			if !ok {
				return errorx.Newf(errorx.CodeInvalidParam, "未知属性名 %s", ability)
			}
			if score+delta > limit {
				return errorx.Newf(errorx.CodeInvalidParam, "属性 %s 超过当前层级上限 %d", ability, limit)
			}
		}
		for ability, delta := range req.Assignments {
			character.AddAbilityScore(ability, delta)
		}

		if err := recordChoice(tx, character, level_up_status_enum.CHOICE_ASI); err != nil {
			return err
		}
		if err := s.recomputeStatus(tx, character); err != nil {
			return err
		}
		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// ApplySpellSelections 应用法术选择
// 不做去重：重复的法术 id 会产生重复的已知法术行（沿用既有行为）
func (s *progressionService) ApplySpellSelections(actorId, characterUuid string, req request.ApplySpellsRequest) (*respond.CharacterRespond, error) {
	if len(req.CantripUuids) == 0 && len(req.SpellUuids) == 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "至少选择一个法术或戏法")
	}

	var rsp *respond.CharacterRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}
		if err := requireStatus(character, level_up_status_enum.PENDING_SPELLS); err != nil {
			return err
		}

		all := make([]string, 0, len(req.CantripUuids)+len(req.SpellUuids))
		all = append(all, req.CantripUuids...)
		all = append(all, req.SpellUuids...)
		found, err := s.catalog.GetSpellsByUuids(all)
		if err != nil {
			return err
		}
		byUuid := make(map[string]*model.Spell, len(found))
		for i := range found {
			byUuid[found[i].Uuid] = &found[i]
		}

		rows := make([]model.CharacterSpell, 0, len(all))
		for _, uuid := range req.CantripUuids {
			spell, ok := byUuid[uuid]
			if !ok {
				return errorx.Newf(errorx.CodeNotFound, "法术 %s 不存在", uuid)
			}
			if spell.SpellLevel != 0 {
				return errorx.Newf(errorx.CodeInvalidParam, "%s 不是戏法", spell.Name)
			}
			rows = append(rows, model.CharacterSpell{
				CharacterUuid: character.Uuid,
				SpellUuid:     spell.Uuid,
				SpellName:     spell.Name,
				IsCantrip:     1,
			})
		}
		for _, uuid := range req.SpellUuids {
			spell, ok := byUuid[uuid]
			if !ok {
				return errorx.Newf(errorx.CodeNotFound, "法术 %s 不存在", uuid)
			}
			if spell.SpellLevel == 0 {
				return errorx.Newf(errorx.CodeInvalidParam, "%s 是戏法，应放在 cantrip_uuids 中", spell.Name)
			}
			rows = append(rows, model.CharacterSpell{
				CharacterUuid: character.Uuid,
				SpellUuid:     spell.Uuid,
				SpellName:     spell.Name,
				IsCantrip:     0,
			})
		}

		if err := tx.Character.CreateSpells(rows); err != nil {
			return err
		}
		if err := recordChoice(tx, character, level_up_status_enum.CHOICE_SPELLS); err != nil {
			return err
		}
		if err := s.recomputeStatus(tx, character); err != nil {
			return err
		}
		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// ApplyExpertise 应用技能专精选择
// 只能给已熟练的技能打专精标记
func (s *progressionService) ApplyExpertise(actorId, characterUuid string, req request.ApplyExpertiseRequest) (*respond.CharacterRespond, error) {
	var rsp *respond.CharacterRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}
		if err := requireStatus(character, level_up_status_enum.PENDING_EXPERTISE); err != nil {
			return err
		}

		skills, err := tx.Character.FindSkills(character.Uuid)
		if err != nil {
			return err
		}
		proficient := make(map[string]bool, len(skills))
		for i := range skills {
			if skills[i].IsProficient == 1 {
				proficient[skills[i].SkillUuid] = true
			}
		}
		for _, uuid := range req.SkillUuids {
			if !proficient[uuid] {
				return errorx.Newf(errorx.CodeInvalidParam, "技能 %s 不是角色的熟练技能", uuid)
			}
		}

		if err := tx.Character.SetExpertiseBySkillUuids(character.Uuid, req.SkillUuids); err != nil {
			return err
		}
		if err := recordChoice(tx, character, level_up_status_enum.CHOICE_EXPERTISE); err != nil {
			return err
		}
		if err := s.recomputeStatus(tx, character); err != nil {
			return err
		}
		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// ApplyArchetype 应用子职业选择
// 状态守卫保证只能成功设置一次
func (s *progressionService) ApplyArchetype(actorId, characterUuid string, req request.ApplyArchetypeRequest) (*respond.CharacterRespond, error) {
	var rsp *respond.CharacterRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}
		if err := requireStatus(character, level_up_status_enum.PENDING_ARCHETYPE); err != nil {
			return err
		}

		archetype := req.Archetype
		character.RoguishArchetype = &archetype

		if err := recordChoice(tx, character, level_up_status_enum.CHOICE_ARCHETYPE); err != nil {
			return err
		}
		if err := s.recomputeStatus(tx, character); err != nil {
			return err
		}
		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// SpendHitDie 消耗一颗生命骰
// 恢复量 = max(1, 掷骰值 + 体质调整)，不超过最大生命值
func (s *progressionService) SpendHitDie(actorId, characterUuid string, req request.SpendHitDieRequest) (*respond.CharacterRespond, error) {
	var rsp *respond.CharacterRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}
		if character.HitDiceRemaining <= 0 {
			return errorx.New(errorx.CodeInvalidState, "没有剩余的生命骰")
		}
		if req.RollValue < 1 || req.RollValue > character.HitDieType {
			return errorx.Newf(errorx.CodeInvalidParam, "掷骰值必须在 1..%d 之间", character.HitDieType)
		}

		heal := req.RollValue + AbilityModifier(character.Constitution)
		if heal < 1 {
			heal = 1
		}
		character.HpCurrent += heal
		if character.HpCurrent > character.HpMax {
			character.HpCurrent = character.HpMax
		}
		character.HitDiceRemaining--

		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// RecordDeathSave 记录一次死亡豁免
// 计数各自封顶 3；任一计数到 3 时两者在同一次调用内一起清零，
// 至于是稳定还是死亡由叙事层自行解释
func (s *progressionService) RecordDeathSave(actorId, characterUuid string, req request.DeathSaveRequest) (*respond.CharacterRespond, error) {
	if req.Success == nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "success 字段必填")
	}

	var rsp *respond.CharacterRespond
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := s.loadOwnedCharacter(tx, actorId, characterUuid)
		if err != nil {
			return err
		}

		if *req.Success {
			if character.DeathSaveSuccesses < constants.DEATH_SAVE_LIMIT {
				character.DeathSaveSuccesses++
			}
		} else {
			if character.DeathSaveFailures < constants.DEATH_SAVE_LIMIT {
				character.DeathSaveFailures++
			}
		}
		if character.DeathSaveSuccesses >= constants.DEATH_SAVE_LIMIT || character.DeathSaveFailures >= constants.DEATH_SAVE_LIMIT {
			character.DeathSaveSuccesses = 0
			character.DeathSaveFailures = 0
		}

		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// AdminSetLevel 管理员直设等级
// 经验重算到目标等级门槛；生命值按 1 级满骰加后续各级均值法累加；
// 生命骰重置为新等级；状态与审计整体清空
func (s *progressionService) AdminSetLevel(actorId, characterUuid string, req request.AdminSetLevelRequest) (*respond.CharacterRespond, error) {
	actor, err := s.repos.User.FindByUuid(actorId)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin != 1 {
		return nil, errorx.New(errorx.CodeForbidden, "仅管理员可以直设等级")
	}

	var rsp *respond.CharacterRespond
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		character, err := tx.Character.FindByUuid(characterUuid)
		if err != nil {
			return err
		}
		if req.TargetLevel < 1 || req.TargetLevel > character.LevelCap() {
			return errorx.Newf(errorx.CodeInvalidParam, "目标等级必须在 1..%d 之间", character.LevelCap())
		}

		conMod := AbilityModifier(character.Constitution)
		hp := character.HitDieType + conMod // 1 级取满骰
		if hp < 1 {
			hp = 1
		}
		for level := 2; level <= req.TargetLevel; level++ {
			hp += AverageHpGain(character.HitDieType, conMod)
		}

		character.Level = req.TargetLevel
		character.ExperiencePoints = LevelThreshold(req.TargetLevel)
		character.HpMax = hp
		character.HpCurrent = hp
		character.HitDiceTotal = req.TargetLevel
		character.HitDiceRemaining = req.TargetLevel
		character.LevelUpStatus = nil

		if err := tx.Character.DeleteChoices(character.Uuid); err != nil {
			return err
		}
		if err := tx.Character.SaveWithVersion(character); err != nil {
			return err
		}
		rsp, err = BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}
