package respond

// UserInfoRespond 用户信息响应
// 使用位置:
//   - internal/service/user/service.go: Register, GetUserInfo
type UserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	IsAdmin   int8   `json:"is_admin"`
	Status    int8   `json:"status"`
}
