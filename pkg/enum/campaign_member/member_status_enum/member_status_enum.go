// Package member_status_enum 定义战役成员状态枚举
package member_status_enum

const (
	PENDING_APPROVAL int8 = iota // 申请中，等待 DM 审批
	ACTIVE                       // 已加入战役
	REJECTED                     // 已被拒绝
	INVITED                      // 已被邀请，等待本人确认
)
