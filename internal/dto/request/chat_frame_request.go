package request

import "encoding/json"

// ChatFrameRequest websocket 入站帧
// 形如 {"type": "...", "payload": {...}}
// 使用位置:
//   - internal/service/chat/ws_gateway.go: Read 协程解析入站消息
type ChatFrameRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DiceRollPayload dice_roll 帧的入站 payload
// 使用位置:
//   - internal/service/chat/processor.go: 掷骰计算
type DiceRollPayload struct {
	Sides int    `json:"sides"`
	Count int    `json:"count"`
	Label string `json:"label"` // 自由文本，如"先攻"，原样带回
}

// ChatEnvelopeRequest 经由 broker 流转的内部信封
// 网关在入站帧外包一层战役与发送者信息后再投递，
// kafka 模式下消费端可能不在建连进程内，信封必须自携带路由信息
type ChatEnvelopeRequest struct {
	CampaignUuid string          `json:"campaign_uuid"`
	SenderId     string          `json:"sender_id"`
	SenderName   string          `json:"sender_name"`
	Type         string          `json:"type"`
	Payload      json.RawMessage `json:"payload"`
}
