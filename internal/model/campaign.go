package model

import (
	"gorm.io/gorm"
)

// Campaign 战役模型
// 对应数据库 campaign 表
type Campaign struct {
	gorm.Model
	// Uuid 战役唯一标识
	// 格式：P + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:战役唯一id"`

	// Name 战役名称
	Name string `gorm:"column:name;type:varchar(40);not null;comment:战役名称"`

	// Description 战役简介
	Description string `gorm:"column:description;type:varchar(500);comment:战役简介"`

	// DmUserId 主持人（DM）用户 UUID
	DmUserId string `gorm:"column:dm_user_id;index;type:char(20);not null;comment:DM用户id"`

	// MaxPlayers 玩家容量（不含 DM），审批时按 active 成员数复核
	MaxPlayers int `gorm:"column:max_players;default:6;not null;comment:玩家容量"`

	// IsOpen 是否开放加入申请
	// 0=关闭, 1=开放
	IsOpen int8 `gorm:"column:is_open;default:1;not null;comment:是否开放申请，0.关闭，1.开放"`

	// Status 战役状态
	// 0=正常, 1=已归档
	Status int8 `gorm:"column:status;default:0;comment:状态，0.正常，1.归档"`
}

func (Campaign) TableName() string {
	return "campaign"
}
