package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天

	// 角色进阶相关数值上限
	LEVEL_CAP_NORMAL     = 20 // 普通层级的等级上限
	LEVEL_CAP_ASCENDED   = 50 // 飞升层级的等级上限
	ABILITY_CAP_NORMAL   = 30 // 普通层级的属性值上限
	ABILITY_CAP_ASCENDED = 50 // 飞升层级的属性值上限
	DEATH_SAVE_LIMIT     = 3  // 死亡豁免成功/失败计数上限

	// 骰子消息约束
	DICE_MAX_COUNT = 100 // 单次掷骰的骰子数量上限
	DICE_MAX_SIDES = 100 // 单颗骰子面数上限
)
