package respond

// RegisterRespond 创建账号响应
// 使用位置:
//   - internal/service/user/service.go: Register
type RegisterRespond struct {
	Uuid  string `json:"uuid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
