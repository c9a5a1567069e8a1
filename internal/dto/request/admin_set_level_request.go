package request

// AdminSetLevelRequest 管理员直设等级请求
// 跳过逐步升级流程的后门操作，仅管理员可用
// 使用位置:
//   - internal/handler/progression_handler.go: AdminSetLevel
//   - internal/service/progression/service.go: AdminSetLevel
type AdminSetLevelRequest struct {
	TargetLevel int `json:"target_level" binding:"required,min=1"`
}
