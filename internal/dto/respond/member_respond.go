package respond

// MemberUserRespond 成员行内嵌的用户摘要
type MemberUserRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

// MemberCharacterRespond 成员行内嵌的角色摘要
type MemberCharacterRespond struct {
	Uuid      string `json:"uuid"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	Level     int    `json:"level"`
}

// MemberRespond 战役成员行响应，内嵌用户与角色摘要
// 使用位置:
//   - internal/service/membership/service.go: 所有写操作
type MemberRespond struct {
	Uuid         string                  `json:"uuid"`
	CampaignUuid string                  `json:"campaign_uuid"`
	Status       int8                    `json:"status"`
	CreatedAt    string                  `json:"created_at"`
	User         MemberUserRespond       `json:"user"`
	Character    *MemberCharacterRespond `json:"character"`
}
