package request

// CreateCampaignRequest 创建战役请求
// 使用位置:
//   - internal/handler/campaign_handler.go: CreateCampaign
//   - internal/service/campaign/service.go: CreateCampaign
type CreateCampaignRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"max=500"`
	MaxPlayers  int    `json:"max_players" binding:"omitempty,min=1,max=20"`
	IsOpen      *bool  `json:"is_open"`
}
