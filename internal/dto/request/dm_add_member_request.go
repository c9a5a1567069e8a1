package request

// DmAddMemberRequest DM 直接拉人入战役请求
// 绕过申请流程，目标用户直接成为 active 成员
// 使用位置:
//   - internal/handler/membership_handler.go: DmAddMember
//   - internal/service/membership/service.go: DmAdd
type DmAddMemberRequest struct {
	UserUuid      string `json:"user_uuid" binding:"required"`
	CharacterUuid string `json:"character_uuid"`
}
