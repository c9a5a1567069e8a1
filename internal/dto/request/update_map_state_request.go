package request

// UpdateMapStateRequest 更新场次地图状态请求
// map_state 对服务端完全不透明，由前端自行约定格式
// 使用位置:
//   - internal/handler/gamesession_handler.go: UpdateMapState
//   - internal/service/gamesession/service.go: UpdateMapState
type UpdateMapStateRequest struct {
	MapState string `json:"map_state" binding:"required"`
}
