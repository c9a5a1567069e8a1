// Package chat_message_type_enum 定义战役实时通道的消息类型
// 入站消息形如 {type, payload}，服务端识别的类型在此定义
// 未识别但格式完好的类型会原样广播
package chat_message_type_enum

const (
	CHAT_MESSAGE = "chat_message" // 聊天文本消息
	DICE_ROLL    = "dice_roll"    // 掷骰请求/结果
	ERROR        = "error"        // 服务端仅回发给发送者的错误消息
)
