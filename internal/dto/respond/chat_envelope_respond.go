package respond

import "encoding/json"

// DiceResultPayload dice_roll 帧广播时的 payload
type DiceResultPayload struct {
	Sides int    `json:"sides"`
	Count int    `json:"count"`
	Rolls []int  `json:"rolls"`
	Total int    `json:"total"`
	Label string `json:"label,omitempty"`
}

// ErrorPayload error 帧的 payload，仅回发给发送者
type ErrorPayload struct {
	Message string `json:"message"`
}

// ChatEnvelopeRespond 广播给战役全体在线成员的出站帧
// 使用位置:
//   - internal/service/chat/processor.go: 广播与落库
type ChatEnvelopeRespond struct {
	Uuid         int64           `json:"uuid,string"`
	CampaignUuid string          `json:"campaign_uuid"`
	SenderId     string          `json:"sender_id"`
	SenderName   string          `json:"sender_name"`
	Type         string          `json:"type"`
	Payload      json.RawMessage `json:"payload"`
	SendAt       string          `json:"send_at"`
}
