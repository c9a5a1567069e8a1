// Package level_up_status_enum 定义角色升级状态机的待定步骤枚举
// 状态为空字符串（数据库 NULL）表示没有待定步骤，角色处于"已结算"状态
package level_up_status_enum

const (
	PENDING_HP        = "pending_hp"                  // 待确认升级生命值
	PENDING_ASI       = "pending_asi"                 // 待分配属性值提升
	PENDING_EXPERTISE = "pending_expertise"           // 待选择专精技能
	PENDING_ARCHETYPE = "pending_archetype_selection" // 待选择职业范型
	PENDING_SPELLS    = "pending_spells"              // 待选择法术
)

// 升级选择记录的 choice_type 取值，与状态一一对应
const (
	CHOICE_HP        = "hp"
	CHOICE_ASI       = "asi"
	CHOICE_EXPERTISE = "expertise"
	CHOICE_ARCHETYPE = "archetype"
	CHOICE_SPELLS    = "spells"
)
