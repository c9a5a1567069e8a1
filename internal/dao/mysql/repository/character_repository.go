// Package repository 提供数据访问层的具体实现
// 本文件实现 CharacterRepository 接口，处理角色行及其独占关联
package repository

import (
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/errorx"

	"gorm.io/gorm"
)

// characterRepository CharacterRepository 接口的实现
type characterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository 创建 CharacterRepository 实例
func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

// FindByUuid 根据 UUID 查找角色
func (r *characterRepository) FindByUuid(uuid string) (*model.Character, error) {
	var character model.Character
	if err := r.db.First(&character, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询角色 uuid=%s", uuid)
	}
	return &character, nil
}

// FindByOwnerId 查找某用户的所有角色
func (r *characterRepository) FindByOwnerId(ownerId string) ([]model.Character, error) {
	var characters []model.Character
	if err := r.db.Where("owner_id = ?", ownerId).Find(&characters).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询角色 owner_id=%s", ownerId)
	}
	return characters, nil
}

// Create 创建角色
func (r *characterRepository) Create(character *model.Character) error {
	if err := r.db.Create(character).Error; err != nil {
		return wrapDBError(err, "创建角色")
	}
	return nil
}

// Save 全字段保存角色
func (r *characterRepository) Save(character *model.Character) error {
	if err := r.db.Save(character).Error; err != nil {
		return wrapDBError(err, "保存角色")
	}
	return nil
}

// SaveWithVersion 带乐观锁的保存
// 以内存中的 Version 为条件更新并自增版本号
// 并发下版本不匹配说明角色状态已被其他请求改动，返回 CodeConflict
func (r *characterRepository) SaveWithVersion(character *model.Character) error {
	oldVersion := character.Version
	character.Version = oldVersion + 1
	res := r.db.Model(&model.Character{}).
		Where("uuid = ? AND version = ?", character.Uuid, oldVersion).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(character)
	if res.Error != nil {
		character.Version = oldVersion
		return wrapDBErrorf(res.Error, "保存角色 uuid=%s", character.Uuid)
	}
	if res.RowsAffected == 0 {
		character.Version = oldVersion
		return errorx.Newf(errorx.CodeConflict, "角色 %s 正在被其他操作修改，请重试", character.Uuid)
	}
	return nil
}

// SoftDeleteByUuid 软删除角色
func (r *characterRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Character{}).Error; err != nil {
		return wrapDBErrorf(err, "删除角色 uuid=%s", uuid)
	}
	return nil
}

// FindSkills 查找角色的技能关联
func (r *characterRepository) FindSkills(characterUuid string) ([]model.CharacterSkill, error) {
	var skills []model.CharacterSkill
	if err := r.db.Where("character_uuid = ?", characterUuid).Find(&skills).Error; err != nil {
		return nil, wrapDBError(err, "查询角色技能")
	}
	return skills, nil
}

// CreateSkills 批量创建技能关联
func (r *characterRepository) CreateSkills(skills []model.CharacterSkill) error {
	if len(skills) == 0 {
		return nil
	}
	if err := r.db.Create(&skills).Error; err != nil {
		return wrapDBError(err, "创建角色技能")
	}
	return nil
}

// SetExpertiseBySkillUuids 为指定技能打上专精标记
func (r *characterRepository) SetExpertiseBySkillUuids(characterUuid string, skillUuids []string) error {
	if len(skillUuids) == 0 {
		return nil
	}
	if err := r.db.Model(&model.CharacterSkill{}).
		Where("character_uuid = ? AND skill_uuid IN ?", characterUuid, skillUuids).
		Update("has_expertise", 1).Error; err != nil {
		return wrapDBError(err, "更新角色技能专精")
	}
	return nil
}

// FindItems 查找角色的物品关联
func (r *characterRepository) FindItems(characterUuid string) ([]model.CharacterItem, error) {
	var items []model.CharacterItem
	if err := r.db.Where("character_uuid = ?", characterUuid).Find(&items).Error; err != nil {
		return nil, wrapDBError(err, "查询角色物品")
	}
	return items, nil
}

// CreateItems 批量创建物品关联
func (r *characterRepository) CreateItems(items []model.CharacterItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.Create(&items).Error; err != nil {
		return wrapDBError(err, "创建角色物品")
	}
	return nil
}

// FindSpells 查找角色的已知法术
func (r *characterRepository) FindSpells(characterUuid string) ([]model.CharacterSpell, error) {
	var spells []model.CharacterSpell
	if err := r.db.Where("character_uuid = ?", characterUuid).Find(&spells).Error; err != nil {
		return nil, wrapDBError(err, "查询角色法术")
	}
	return spells, nil
}

// CreateSpells 批量创建已知法术
// 不做去重，重复的 spell id 会产生重复行，由调用方自行去重
func (r *characterRepository) CreateSpells(spells []model.CharacterSpell) error {
	if len(spells) == 0 {
		return nil
	}
	if err := r.db.Create(&spells).Error; err != nil {
		return wrapDBError(err, "创建角色法术")
	}
	return nil
}

// FindChoices 查找角色的升级选择审计（按创建顺序）
func (r *characterRepository) FindChoices(characterUuid string) ([]model.LevelUpChoice, error) {
	var choices []model.LevelUpChoice
	if err := r.db.Where("character_uuid = ?", characterUuid).Order("id ASC").Find(&choices).Error; err != nil {
		return nil, wrapDBError(err, "查询升级选择记录")
	}
	return choices, nil
}

// CreateChoice 追加一条升级选择记录
func (r *characterRepository) CreateChoice(choice *model.LevelUpChoice) error {
	if err := r.db.Create(choice).Error; err != nil {
		return wrapDBError(err, "创建升级选择记录")
	}
	return nil
}

// DeleteChoices 清空角色的升级选择审计
// 升级引擎在角色升级时调用（整体清空，沿用既有行为）
func (r *characterRepository) DeleteChoices(characterUuid string) error {
	if err := r.db.Unscoped().Where("character_uuid = ?", characterUuid).
		Delete(&model.LevelUpChoice{}).Error; err != nil {
		return wrapDBError(err, "清空升级选择记录")
	}
	return nil
}

// DeleteAssociations 删除角色独占的所有关联行
// 角色删除时级联调用
func (r *characterRepository) DeleteAssociations(characterUuid string) error {
	if err := r.db.Where("character_uuid = ?", characterUuid).Delete(&model.CharacterSkill{}).Error; err != nil {
		return wrapDBError(err, "删除角色技能关联")
	}
	if err := r.db.Where("character_uuid = ?", characterUuid).Delete(&model.CharacterItem{}).Error; err != nil {
		return wrapDBError(err, "删除角色物品关联")
	}
	if err := r.db.Where("character_uuid = ?", characterUuid).Delete(&model.CharacterSpell{}).Error; err != nil {
		return wrapDBError(err, "删除角色法术关联")
	}
	if err := r.db.Unscoped().Where("character_uuid = ?", characterUuid).Delete(&model.LevelUpChoice{}).Error; err != nil {
		return wrapDBError(err, "删除升级选择记录")
	}
	return nil
}
