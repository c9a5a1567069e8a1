package request

// SpendHitDieRequest 消耗生命骰请求
// 使用位置:
//   - internal/handler/progression_handler.go: SpendHitDie
//   - internal/service/progression/service.go: SpendHitDie
type SpendHitDieRequest struct {
	RollValue int `json:"roll_value" binding:"required,min=1"`
}
