package request

// DeathSaveRequest 死亡豁免记录请求
// success 使用指针类型以便 binding 区分 false 与字段缺失
// 使用位置:
//   - internal/handler/progression_handler.go: RecordDeathSave
//   - internal/service/progression/service.go: RecordDeathSave
type DeathSaveRequest struct {
	Success *bool `json:"success" binding:"required"`
}
