package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
