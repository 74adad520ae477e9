package request

// RegisterRequest 创建账号请求
// 由管理员为教师/家长开通账号
// 使用位置:
//   - internal/handler/user_handler.go: Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Name      string `json:"name" binding:"required"`
	Telephone string `json:"telephone"`
	Role      string `json:"role" binding:"required,oneof=admin teacher parent"`
}
