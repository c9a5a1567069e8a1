// Package repository 提供数据访问层的具体实现
// 本文件实现 ChatMessageRepository 接口
package repository

import (
	"aethorias_chronicle_server/internal/model"

	"gorm.io/gorm"
)

// chatMessageRepository ChatMessageRepository 接口的实现
type chatMessageRepository struct {
	db *gorm.DB
}

// NewChatMessageRepository 创建 ChatMessageRepository 实例
func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

// Create 落库一条广播消息
func (r *chatMessageRepository) Create(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息记录")
	}
	return nil
}

// FindByCampaign 查找战役最近的消息记录，按发送时间倒序
func (r *chatMessageRepository) FindByCampaign(campaignUuid string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.Where("campaign_uuid = ?", campaignUuid).
		Order("send_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBError(err, "查询消息记录")
	}
	return messages, nil
}
