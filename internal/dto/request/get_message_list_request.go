package request

// GetMessageListRequest 拉取战役历史消息请求
// 使用位置:
//   - internal/handler/chat_handler.go: GetMessageList
//   - internal/service/chat/service.go: GetMessageList
type GetMessageListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
