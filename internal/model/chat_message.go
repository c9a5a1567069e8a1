// Package model 定义数据库实体模型
// 本文件定义战役实时消息模型，用于存储聊天与掷骰记录
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// ChatMessage 战役实时消息模型
// 对应数据库 chat_message 表
// 聊天文本与掷骰结果都以广播后的 JSON 帧落库，便于战役回放
type ChatMessage struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// CampaignUuid 所属战役 UUID
	CampaignUuid string `gorm:"column:campaign_uuid;index;type:char(20);not null;comment:战役id"`

	// SenderId 发送者用户 UUID
	SenderId string `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者id"`

	// SenderName 发送者昵称
	// 冗余存储，避免回放消息时关联用户表
	SenderName string `gorm:"column:sender_name;type:varchar(20);not null;comment:发送者昵称"`

	// Type 消息类型，如 chat_message / dice_roll
	Type string `gorm:"column:type;type:varchar(30);not null;comment:消息类型"`

	// Payload 广播帧的 payload 部分，JSON 文本
	Payload string `gorm:"column:payload;type:TEXT;comment:消息内容"`

	// SendAt 实际发送时间
	SendAt sql.NullTime `gorm:"column:send_at;comment:发送时间"`
}

// TableName 指定表名
func (ChatMessage) TableName() string {
	return "chat_message"
}
