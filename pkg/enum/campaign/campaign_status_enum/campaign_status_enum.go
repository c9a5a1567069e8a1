// Package campaign_status_enum 定义战役状态枚举
package campaign_status_enum

const (
	NORMAL   int8 = iota // 正常
	ARCHIVED             // 已归档，不再接受加入申请
)
