package request

// ApplyExpertiseRequest 技能专精选择请求
// 所有技能必须是角色已熟练的技能（Service 层校验）
// 使用位置:
//   - internal/handler/progression_handler.go: ApplyExpertise
//   - internal/service/progression/service.go: ApplyExpertise
type ApplyExpertiseRequest struct {
	SkillUuids []string `json:"skill_uuids" binding:"required,min=1"`
}
