package request

// ApplyArchetypeRequest 子职业选择请求
// 使用位置:
//   - internal/handler/progression_handler.go: ApplyArchetype
//   - internal/service/progression/service.go: ApplyArchetype
type ApplyArchetypeRequest struct {
	Archetype string `json:"archetype" binding:"required,max=64"`
}
