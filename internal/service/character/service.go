// Package character 提供角色的创建、查询与删除
// 进阶数值的变更统一走 service/progression
package character

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/internal/service/catalog"
	"aethorias_chronicle_server/internal/service/progression"
	"aethorias_chronicle_server/pkg/errorx"
	"aethorias_chronicle_server/pkg/util/random"
)

// characterService 角色业务逻辑实现
type characterService struct {
	repos   *repository.Repositories
	catalog catalog.Store
}

// NewCharacterService 构造函数
func NewCharacterService(repos *repository.Repositories, catalogStore catalog.Store) *characterService {
	return &characterService{repos: repos, catalog: catalogStore}
}

// startingItem 起始装备 JSON 的元素结构
type startingItem struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// CreateCharacter 创建角色
// 1 级、零经验；生命值取满骰加体质调整；背景技能套熟练；职业起始装备入包
func (s *characterService) CreateCharacter(actorId string, req request.CreateCharacterRequest) (*respond.CharacterRespond, error) {
	class, err := s.catalog.GetClassByName(req.ClassName)
	if err != nil {
		return nil, err
	}
	race, err := s.catalog.GetRaceByName(req.RaceName)
	if err != nil {
		return nil, err
	}
	background, err := s.catalog.GetBackgroundByName(req.BackgroundName)
	if err != nil {
		return nil, err
	}

	conMod := progression.AbilityModifier(req.Constitution)
	dexMod := progression.AbilityModifier(req.Dexterity)
	hp := class.HitDie + conMod // 1 级取满骰
	if hp < 1 {
		hp = 1
	}

	character := &model.Character{
		Uuid:             fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
		OwnerId:          actorId,
		Name:             req.Name,
		ClassName:        class.Name,
		RaceName:         race.Name,
		BackgroundName:   background.Name,
		Level:            1,
		ExperiencePoints: 0,
		Strength:         req.Strength,
		Dexterity:        req.Dexterity,
		Constitution:     req.Constitution,
		Intelligence:     req.Intelligence,
		Wisdom:           req.Wisdom,
		Charisma:         req.Charisma,
		ArmorClass:       10 + dexMod,
		HpCurrent:        hp,
		HpMax:            hp,
		HitDieType:       class.HitDie,
		HitDiceTotal:     1,
		HitDiceRemaining: 1,
	}

	// 背景附带的熟练技能
	var skillNames []string
	if background.SkillNames != "" {
		if err := json.Unmarshal([]byte(background.SkillNames), &skillNames); err != nil {
			zap.L().Error("背景技能列表解码失败", zap.String("background", background.Name), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}
	skillRows := make([]model.CharacterSkill, 0, len(skillNames))
	for _, name := range skillNames {
		skill, err := s.catalog.GetSkillByName(name)
		if err != nil {
			return nil, err
		}
		skillRows = append(skillRows, model.CharacterSkill{
			CharacterUuid: character.Uuid,
			SkillUuid:     skill.Uuid,
			SkillName:     skill.Name,
			IsProficient:  1,
		})
	}

	// 职业起始装备
	var kit []startingItem
	if class.StartingEquipment != "" {
		if err := json.Unmarshal([]byte(class.StartingEquipment), &kit); err != nil {
			zap.L().Error("起始装备解码失败", zap.String("class", class.Name), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}
	itemRows := make([]model.CharacterItem, 0, len(kit))
	for _, entry := range kit {
		item, err := s.catalog.GetItemByName(entry.ItemName)
		if err != nil {
			return nil, err
		}
		quantity := entry.Quantity
		if quantity < 1 {
			quantity = 1
		}
		itemRows = append(itemRows, model.CharacterItem{
			CharacterUuid: character.Uuid,
			ItemUuid:      item.Uuid,
			ItemName:      item.Name,
			Quantity:      quantity,
		})
	}

	var rsp *respond.CharacterRespond
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Character.Create(character); err != nil {
			return err
		}
		if len(skillRows) > 0 {
			if err := tx.Character.CreateSkills(skillRows); err != nil {
				return err
			}
		}
		if len(itemRows) > 0 {
			if err := tx.Character.CreateItems(itemRows); err != nil {
				return err
			}
		}
		rsp, err = progression.BuildCharacterRespond(tx, character)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// GetCharacter 获取角色完整聚合
// 读操作不限制在所有者，战役里 DM 和其他玩家也可以查看角色卡
func (s *characterService) GetCharacter(actorId, characterUuid string) (*respond.CharacterRespond, error) {
	character, err := s.repos.Character.FindByUuid(characterUuid)
	if err != nil {
		return nil, err
	}
	return progression.BuildCharacterRespond(s.repos, character)
}

// ListMyCharacters 列出操作者自己的角色
func (s *characterService) ListMyCharacters(actorId string) ([]respond.CharacterRespond, error) {
	characters, err := s.repos.Character.FindByOwnerId(actorId)
	if err != nil {
		return nil, err
	}
	rspList := make([]respond.CharacterRespond, 0, len(characters))
	for i := range characters {
		rsp, err := progression.BuildCharacterRespond(s.repos, &characters[i])
		if err != nil {
			return nil, err
		}
		rspList = append(rspList, *rsp)
	}
	return rspList, nil
}

// DeleteCharacter 删除角色
// 仅所有者可删；角色独占的技能/物品/法术关联与升级审计一并清理
func (s *characterService) DeleteCharacter(actorId, characterUuid string) error {
	character, err := s.repos.Character.FindByUuid(characterUuid)
	if err != nil {
		return err
	}
	if character.OwnerId != actorId {
		return errorx.New(errorx.CodeForbidden, "只有角色所有者可以删除角色")
	}
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Character.DeleteAssociations(characterUuid); err != nil {
			return err
		}
		return tx.Character.SoftDeleteByUuid(characterUuid)
	})
}
