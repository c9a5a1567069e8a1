// Package repository 提供数据访问层的具体实现
// 本文件实现 CampaignRepository 接口
package repository

import (
	"aethorias_chronicle_server/internal/model"

	"gorm.io/gorm"
)

// campaignRepository CampaignRepository 接口的实现
type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建 CampaignRepository 实例
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// FindByUuid 根据 UUID 查找战役
func (r *campaignRepository) FindByUuid(uuid string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := r.db.First(&campaign, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询战役 uuid=%s", uuid)
	}
	return &campaign, nil
}

// FindByDmUserId 查找某用户主持的所有战役
func (r *campaignRepository) FindByDmUserId(dmUserId string) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := r.db.Where("dm_user_id = ?", dmUserId).Find(&campaigns).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询战役 dm_user_id=%s", dmUserId)
	}
	return campaigns, nil
}

// Create 创建战役
func (r *campaignRepository) Create(campaign *model.Campaign) error {
	if err := r.db.Create(campaign).Error; err != nil {
		return wrapDBError(err, "创建战役")
	}
	return nil
}

// Update 更新战役信息（全字段更新）
func (r *campaignRepository) Update(campaign *model.Campaign) error {
	if err := r.db.Save(campaign).Error; err != nil {
		return wrapDBError(err, "更新战役")
	}
	return nil
}

// SoftDeleteByUuid 软删除战役
func (r *campaignRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Campaign{}).Error; err != nil {
		return wrapDBErrorf(err, "删除战役 uuid=%s", uuid)
	}
	return nil
}
