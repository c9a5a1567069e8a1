package model

import "gorm.io/gorm"

// CampaignMember 战役成员模型
// 对应数据库 campaign_member 表
// 既承载加入申请（pending_approval），也承载正式成员（active）
// 不变式：每个 (campaign_uuid, user_uuid) 至多一行
type CampaignMember struct {
	gorm.Model

	// Uuid 成员记录唯一标识
	// 格式：A + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:成员记录id"`

	// CampaignUuid 战役 UUID
	CampaignUuid string `gorm:"column:campaign_uuid;index;uniqueIndex:idx_campaign_user;type:char(20);not null;comment:战役id"`

	// UserUuid 用户 UUID
	UserUuid string `gorm:"column:user_uuid;index;uniqueIndex:idx_campaign_user;type:char(20);not null;comment:用户id"`

	// CharacterUuid 绑定的角色 UUID（可空，成员可以先加入后建卡）
	CharacterUuid *string `gorm:"column:character_uuid;type:char(20);comment:绑定角色id"`

	// Status 成员状态
	// 0=申请中, 1=已加入, 2=已拒绝, 3=已邀请
	// 终态记录直接删行，而不是保留软状态
	Status int8 `gorm:"column:status;not null;comment:成员状态，0.申请中，1.已加入，2.已拒绝，3.已邀请"`
}

func (CampaignMember) TableName() string {
	return "campaign_member"
}
