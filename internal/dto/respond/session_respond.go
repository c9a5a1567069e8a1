package respond

// InitiativeEntryRespond 先攻条目响应
type InitiativeEntryRespond struct {
	Uuid           string  `json:"uuid"`
	CharacterUuid  *string `json:"character_uuid"`
	CombatantName  *string `json:"combatant_name"`
	InitiativeRoll int     `json:"initiative_roll"`
}

// SessionRespond 跑团场次响应
// 使用位置:
//   - internal/service/gamesession/service.go: 所有读写操作
type SessionRespond struct {
	Uuid         string                   `json:"uuid"`
	CampaignUuid string                   `json:"campaign_uuid"`
	IsActive     bool                     `json:"is_active"`
	MapState     string                   `json:"map_state"`
	CreatedAt    string                   `json:"created_at"`
	Entries      []InitiativeEntryRespond `json:"entries"`
}
