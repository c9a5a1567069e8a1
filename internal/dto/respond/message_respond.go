package respond

// MessageRespond 战役历史消息响应
// 使用位置:
//   - internal/service/chat/service.go: GetMessageList
type MessageRespond struct {
	Uuid         int64  `json:"uuid"`
	CampaignUuid string `json:"campaign_uuid"`
	SenderId     string `json:"sender_id"`
	SenderName   string `json:"sender_name"`
	Type         string `json:"type"`
	Payload      string `json:"payload"`
	SendAt       string `json:"send_at"`
}
