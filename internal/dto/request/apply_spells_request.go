package request

// ApplySpellsRequest 法术选择请求
// 重复的法术 id 不做去重，会产生重复的已知法术行（沿用既有行为）
// 使用位置:
//   - internal/handler/progression_handler.go: ApplySpells
//   - internal/service/progression/service.go: ApplySpellSelections
type ApplySpellsRequest struct {
	CantripUuids []string `json:"cantrip_uuids"`
	SpellUuids   []string `json:"spell_uuids"`
}
