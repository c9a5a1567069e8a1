// Package repository 提供数据访问层的具体实现
// 本文件实现 CatalogRepository 接口，处理只读目录数据的查询与种子写入
package repository

import (
	"aethorias_chronicle_server/internal/model"

	"gorm.io/gorm"
)

// catalogRepository CatalogRepository 接口的实现
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建 CatalogRepository 实例
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// GetClassByName 按名查找职业
func (r *catalogRepository) GetClassByName(name string) (*model.Class, error) {
	var class model.Class
	if err := r.db.First(&class, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询职业 name=%s", name)
	}
	return &class, nil
}

// GetRaceByName 按名查找种族
func (r *catalogRepository) GetRaceByName(name string) (*model.Race, error) {
	var race model.Race
	if err := r.db.First(&race, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询种族 name=%s", name)
	}
	return &race, nil
}

// GetBackgroundByName 按名查找背景
func (r *catalogRepository) GetBackgroundByName(name string) (*model.Background, error) {
	var background model.Background
	if err := r.db.First(&background, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询背景 name=%s", name)
	}
	return &background, nil
}

// GetSkillByName 按名查找技能
func (r *catalogRepository) GetSkillByName(name string) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.First(&skill, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询技能 name=%s", name)
	}
	return &skill, nil
}

// GetSkillsByUuids 批量按 UUID 查找技能
func (r *catalogRepository) GetSkillsByUuids(uuids []string) ([]model.Skill, error) {
	var skills []model.Skill
	if err := r.db.Where("uuid IN ?", uuids).Find(&skills).Error; err != nil {
		return nil, wrapDBError(err, "批量查询技能")
	}
	return skills, nil
}

// GetSpellsByUuids 批量按 UUID 查找法术
func (r *catalogRepository) GetSpellsByUuids(uuids []string) ([]model.Spell, error) {
	var spells []model.Spell
	if err := r.db.Where("uuid IN ?", uuids).Find(&spells).Error; err != nil {
		return nil, wrapDBError(err, "批量查询法术")
	}
	return spells, nil
}

// GetItemByName 按名查找物品
func (r *catalogRepository) GetItemByName(name string) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询物品 name=%s", name)
	}
	return &item, nil
}

// GetMonsterByName 按名查找怪物
func (r *catalogRepository) GetMonsterByName(name string) (*model.Monster, error) {
	var monster model.Monster
	if err := r.db.First(&monster, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询怪物 name=%s", name)
	}
	return &monster, nil
}

// GetConditionByName 按名查找状态
func (r *catalogRepository) GetConditionByName(name string) (*model.Condition, error) {
	var condition model.Condition
	if err := r.db.First(&condition, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询状态 name=%s", name)
	}
	return &condition, nil
}

// CountClasses 统计职业数
func (r *catalogRepository) CountClasses() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Class{}).Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "统计职业数")
	}
	return count, nil
}

// SeedClasses 批量写入职业种子数据
func (r *catalogRepository) SeedClasses(classes []model.Class) error {
	if len(classes) == 0 {
		return nil
	}
	if err := r.db.Create(&classes).Error; err != nil {
		return wrapDBError(err, "写入职业种子数据")
	}
	return nil
}

// SeedSkills 批量写入技能种子数据
func (r *catalogRepository) SeedSkills(skills []model.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	if err := r.db.Create(&skills).Error; err != nil {
		return wrapDBError(err, "写入技能种子数据")
	}
	return nil
}

// SeedSpells 批量写入法术种子数据
func (r *catalogRepository) SeedSpells(spells []model.Spell) error {
	if len(spells) == 0 {
		return nil
	}
	if err := r.db.Create(&spells).Error; err != nil {
		return wrapDBError(err, "写入法术种子数据")
	}
	return nil
}

// SeedItems 批量写入物品种子数据
func (r *catalogRepository) SeedItems(items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.Create(&items).Error; err != nil {
		return wrapDBError(err, "写入物品种子数据")
	}
	return nil
}

// SeedRaces 批量写入种族种子数据
func (r *catalogRepository) SeedRaces(races []model.Race) error {
	if len(races) == 0 {
		return nil
	}
	if err := r.db.Create(&races).Error; err != nil {
		return wrapDBError(err, "写入种族种子数据")
	}
	return nil
}

// SeedBackgrounds 批量写入背景种子数据
func (r *catalogRepository) SeedBackgrounds(backgrounds []model.Background) error {
	if len(backgrounds) == 0 {
		return nil
	}
	if err := r.db.Create(&backgrounds).Error; err != nil {
		return wrapDBError(err, "写入背景种子数据")
	}
	return nil
}
