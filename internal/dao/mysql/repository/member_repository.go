// Package repository 提供数据访问层的具体实现
// 本文件实现 MemberRepository 接口，处理战役成员与加入申请
package repository

import (
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/enum/campaign_member/member_status_enum"

	"gorm.io/gorm"
)

// memberRepository MemberRepository 接口的实现
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建 MemberRepository 实例
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// FindByCampaignAndUser 根据战役和用户查找成员行
// (campaign_uuid, user_uuid) 有唯一索引，至多一行
func (r *memberRepository) FindByCampaignAndUser(campaignUuid, userUuid string) (*model.CampaignMember, error) {
	var member model.CampaignMember
	if err := r.db.First(&member, "campaign_uuid = ? AND user_uuid = ?", campaignUuid, userUuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询战役成员 campaign=%s user=%s", campaignUuid, userUuid)
	}
	return &member, nil
}

// FindByCampaign 查找战役的全部成员行
func (r *memberRepository) FindByCampaign(campaignUuid string) ([]model.CampaignMember, error) {
	var members []model.CampaignMember
	if err := r.db.Where("campaign_uuid = ?", campaignUuid).Find(&members).Error; err != nil {
		return nil, wrapDBError(err, "查询战役成员列表")
	}
	return members, nil
}

// FindByCampaignAndStatus 按状态查找战役成员行
func (r *memberRepository) FindByCampaignAndStatus(campaignUuid string, status int8) ([]model.CampaignMember, error) {
	var members []model.CampaignMember
	if err := r.db.Where("campaign_uuid = ? AND status = ?", campaignUuid, status).Find(&members).Error; err != nil {
		return nil, wrapDBError(err, "按状态查询战役成员")
	}
	return members, nil
}

// FindByUser 查找某用户的全部成员行
func (r *memberRepository) FindByUser(userUuid string) ([]model.CampaignMember, error) {
	var members []model.CampaignMember
	if err := r.db.Where("user_uuid = ?", userUuid).Find(&members).Error; err != nil {
		return nil, wrapDBError(err, "查询用户的战役成员记录")
	}
	return members, nil
}

// CountActiveByCampaign 统计战役当前 active 成员数
// 审批通过前按此数复核容量，只统计 active 行
func (r *memberRepository) CountActiveByCampaign(campaignUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.CampaignMember{}).
		Where("campaign_uuid = ? AND status = ?", campaignUuid, member_status_enum.ACTIVE).
		Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "统计战役成员数")
	}
	return count, nil
}

// Create 创建成员行
func (r *memberRepository) Create(member *model.CampaignMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "创建战役成员")
	}
	return nil
}

// Update 更新成员行（全字段更新）
func (r *memberRepository) Update(member *model.CampaignMember) error {
	if err := r.db.Save(member).Error; err != nil {
		return wrapDBError(err, "更新战役成员")
	}
	return nil
}

// Delete 删除成员行
func (r *memberRepository) Delete(campaignUuid, userUuid string) error {
	if err := r.db.Where("campaign_uuid = ? AND user_uuid = ?", campaignUuid, userUuid).
		Delete(&model.CampaignMember{}).Error; err != nil {
		return wrapDBError(err, "删除战役成员")
	}
	return nil
}

// DeleteByCampaign 删除战役的全部成员行
func (r *memberRepository) DeleteByCampaign(campaignUuid string) error {
	if err := r.db.Where("campaign_uuid = ?", campaignUuid).
		Delete(&model.CampaignMember{}).Error; err != nil {
		return wrapDBError(err, "删除战役全部成员")
	}
	return nil
}
