package request

// AwardXpRequest 经验值发放请求
// 使用位置:
//   - internal/handler/progression_handler.go: AwardXp
//   - internal/service/progression/service.go: AwardXp
type AwardXpRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}
