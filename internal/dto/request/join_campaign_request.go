package request

// JoinCampaignRequest 申请加入战役请求
// character_uuid 可选，加入时同时挂上要使用的角色
// 使用位置:
//   - internal/handler/membership_handler.go: RequestJoin
//   - internal/service/membership/service.go: RequestJoin
type JoinCampaignRequest struct {
	CharacterUuid string `json:"character_uuid"`
}
