package model

import "gorm.io/gorm"

// CharacterItem 角色-物品关联表
// 角色创建时写入起始装备，由角色独占
type CharacterItem struct {
	gorm.Model
	CharacterUuid string `gorm:"column:character_uuid;index;type:char(20);not null;comment:角色id"`
	ItemUuid      string `gorm:"column:item_uuid;type:char(20);not null;comment:物品id"`
	ItemName      string `gorm:"column:item_name;type:varchar(30);not null;comment:物品名（冗余）"`
	Quantity      int    `gorm:"column:quantity;default:1;not null;comment:数量"`
}

func (CharacterItem) TableName() string {
	return "character_item"
}
