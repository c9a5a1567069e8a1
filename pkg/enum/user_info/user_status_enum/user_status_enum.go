// Package user_status_enum 定义用户账号状态枚举
package user_status_enum

const (
	NORMAL  int8 = iota // 正常
	DISABLE             // 禁用
)
