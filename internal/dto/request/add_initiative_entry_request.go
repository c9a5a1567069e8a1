package request

// AddInitiativeEntryRequest 添加先攻条目请求
// character_uuid 与 combatant_name 必须恰好填写其一（Service 层校验）
// 使用位置:
//   - internal/handler/gamesession_handler.go: AddInitiativeEntry
//   - internal/service/gamesession/service.go: AddInitiativeEntry
type AddInitiativeEntryRequest struct {
	CharacterUuid  string `json:"character_uuid"`
	CombatantName  string `json:"combatant_name"`
	InitiativeRoll int    `json:"initiative_roll" binding:"required"`
}
