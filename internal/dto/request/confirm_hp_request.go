package request

// ConfirmHpRequest 确认升级生命值请求
// method 为 roll 时 roll_value 必填，取值须在 1..生命骰面数 之间（Service 层校验）
// 使用位置:
//   - internal/handler/progression_handler.go: ConfirmHp
//   - internal/service/progression/service.go: ConfirmHpIncrease
type ConfirmHpRequest struct {
	Method    string `json:"method" binding:"required,oneof=average roll"`
	RollValue int    `json:"roll_value" binding:"omitempty,min=1"`
}
