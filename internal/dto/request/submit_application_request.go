package request

// SubmitApplicationRequest 提交入学申请请求
// 公开接口，无需登录
// 使用位置:
//   - internal/handler/admission_handler.go: SubmitApplication
//   - internal/service/admission/service.go: SubmitApplication
type SubmitApplicationRequest struct {
	StudentName  string `json:"student_name" binding:"required"`
	ParentName   string `json:"parent_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Telephone    string `json:"telephone"`
	ApplyClassId string `json:"apply_class_id" binding:"required"`
}
