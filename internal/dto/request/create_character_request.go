package request

// CreateCharacterRequest 创建角色请求
// 六项属性值在边界处做 1..30 的模式校验，飞升制的更高上限由管理员置位后才生效
// 使用位置:
//   - internal/handler/character_handler.go: CreateCharacter
//   - internal/service/character/service.go: CreateCharacter
type CreateCharacterRequest struct {
	Name           string `json:"name" binding:"required,max=64"`
	ClassName      string `json:"class_name" binding:"required"`
	RaceName       string `json:"race_name" binding:"required"`
	BackgroundName string `json:"background_name" binding:"required"`
	Strength       int    `json:"strength" binding:"required,min=1,max=30"`
	Dexterity      int    `json:"dexterity" binding:"required,min=1,max=30"`
	Constitution   int    `json:"constitution" binding:"required,min=1,max=30"`
	Intelligence   int    `json:"intelligence" binding:"required,min=1,max=30"`
	Wisdom         int    `json:"wisdom" binding:"required,min=1,max=30"`
	Charisma       int    `json:"charisma" binding:"required,min=1,max=30"`
}
