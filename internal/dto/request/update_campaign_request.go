package request

// UpdateCampaignRequest 更新战役元数据请求
// 指针字段缺省表示不修改
// 使用位置:
//   - internal/handler/campaign_handler.go: UpdateCampaign
//   - internal/service/campaign/service.go: UpdateCampaign
type UpdateCampaignRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=64"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	MaxPlayers  *int    `json:"max_players" binding:"omitempty,min=1,max=20"`
	IsOpen      *bool   `json:"is_open"`
}
