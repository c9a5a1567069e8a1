package respond

// CampaignRespond 战役信息响应
// 使用位置:
//   - internal/service/campaign/service.go: 所有读写操作
type CampaignRespond struct {
	Uuid        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DmUserId    string `json:"dm_user_id"`
	MaxPlayers  int    `json:"max_players"`
	IsOpen      bool   `json:"is_open"`
	Status      int8   `json:"status"`
	CreatedAt   string `json:"created_at"`
}
