package request

// ApplyAsiRequest 属性值提升请求
// 键为属性名（strength/dexterity/constitution/intelligence/wisdom/charisma），
// 值为本次增量，合计不超过 2 点（Service 层校验）
// 使用位置:
//   - internal/handler/progression_handler.go: ApplyAsi
//   - internal/service/progression/service.go: ApplyAsi
type ApplyAsiRequest struct {
	Assignments map[string]int `json:"assignments" binding:"required,min=1"`
}
