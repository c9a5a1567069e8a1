// Package repository 提供数据访问层的具体实现
// 本文件实现 GameSessionRepository 接口，处理跑团场次与先攻条目
package repository

import (
	"aethorias_chronicle_server/internal/model"

	"gorm.io/gorm"
)

// gameSessionRepository GameSessionRepository 接口的实现
type gameSessionRepository struct {
	db *gorm.DB
}

// NewGameSessionRepository 创建 GameSessionRepository 实例
func NewGameSessionRepository(db *gorm.DB) GameSessionRepository {
	return &gameSessionRepository{db: db}
}

// FindByUuid 根据 UUID 查找场次
func (r *gameSessionRepository) FindByUuid(uuid string) (*model.CampaignSession, error) {
	var session model.CampaignSession
	if err := r.db.First(&session, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询场次 uuid=%s", uuid)
	}
	return &session, nil
}

// FindActiveByCampaign 查找战役当前进行中的场次
// 不存在进行中的场次时返回 CodeNotFound
func (r *gameSessionRepository) FindActiveByCampaign(campaignUuid string) (*model.CampaignSession, error) {
	var session model.CampaignSession
	if err := r.db.First(&session, "campaign_uuid = ? AND is_active = 1", campaignUuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询进行中场次 campaign=%s", campaignUuid)
	}
	return &session, nil
}

// FindByCampaign 查找战役的全部场次
func (r *gameSessionRepository) FindByCampaign(campaignUuid string) ([]model.CampaignSession, error) {
	var sessions []model.CampaignSession
	if err := r.db.Where("campaign_uuid = ?", campaignUuid).Order("id DESC").Find(&sessions).Error; err != nil {
		return nil, wrapDBError(err, "查询战役场次列表")
	}
	return sessions, nil
}

// Create 创建场次
func (r *gameSessionRepository) Create(session *model.CampaignSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return wrapDBError(err, "创建场次")
	}
	return nil
}

// Update 更新场次（全字段更新）
func (r *gameSessionRepository) Update(session *model.CampaignSession) error {
	if err := r.db.Save(session).Error; err != nil {
		return wrapDBError(err, "更新场次")
	}
	return nil
}

// DeleteByCampaign 删除战役的全部场次
func (r *gameSessionRepository) DeleteByCampaign(campaignUuid string) error {
	if err := r.db.Where("campaign_uuid = ?", campaignUuid).
		Delete(&model.CampaignSession{}).Error; err != nil {
		return wrapDBError(err, "删除战役场次")
	}
	return nil
}

// CreateEntry 创建先攻条目
func (r *gameSessionRepository) CreateEntry(entry *model.InitiativeEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return wrapDBError(err, "创建先攻条目")
	}
	return nil
}

// FindEntriesBySession 查找场次的先攻条目
// 按 initiative_roll 降序排列，同值条目之间没有第二排序键
func (r *gameSessionRepository) FindEntriesBySession(sessionUuid string) ([]model.InitiativeEntry, error) {
	var entries []model.InitiativeEntry
	if err := r.db.Where("session_uuid = ?", sessionUuid).
		Order("initiative_roll DESC").Find(&entries).Error; err != nil {
		return nil, wrapDBError(err, "查询先攻条目")
	}
	return entries, nil
}

// DeleteEntriesBySession 删除场次的全部先攻条目
func (r *gameSessionRepository) DeleteEntriesBySession(sessionUuid string) error {
	if err := r.db.Where("session_uuid = ?", sessionUuid).
		Delete(&model.InitiativeEntry{}).Error; err != nil {
		return wrapDBError(err, "清空先攻条目")
	}
	return nil
}
