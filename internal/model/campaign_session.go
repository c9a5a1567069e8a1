package model

import "gorm.io/gorm"

// CampaignSession 跑团场次模型
// 对应数据库 campaign_session 表
// 不变式：任意时刻每个战役至多一个 is_active=1 的场次
type CampaignSession struct {
	gorm.Model

	// Uuid 场次唯一标识
	// 格式：S + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:场次uuid"`

	// CampaignUuid 所属战役 UUID
	CampaignUuid string `gorm:"column:campaign_uuid;index;type:char(20);not null;comment:战役id"`

	// IsActive 是否进行中
	// 0=已结束, 1=进行中
	IsActive int8 `gorm:"column:is_active;default:1;not null;comment:是否进行中，0.否，1.是"`

	// MapState 地图状态
	// 由前端地图组件自由读写的 JSON 块，核心逻辑不解析其内容
	MapState string `gorm:"column:map_state;type:TEXT;comment:地图状态(前端自用)"`
}

func (CampaignSession) TableName() string {
	return "campaign_session"
}
