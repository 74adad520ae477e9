package request

// CreateRemarkRequest 创建教师评语请求
// 使用位置:
//   - internal/handler/academic_handler.go: CreateRemark
//   - internal/service/academic/service.go: CreateRemark
type CreateRemarkRequest struct {
	StudentId string `json:"student_id" binding:"required"`
	TermId    string `json:"term_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}
