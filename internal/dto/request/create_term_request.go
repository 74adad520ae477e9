package request

// CreateTermRequest 创建学期请求
// 使用位置:
//   - internal/handler/academic_handler.go: CreateTerm
//   - internal/service/academic/service.go: CreateTerm
type CreateTermRequest struct {
	Name string `json:"name" binding:"required"`
}

// TermActionRequest 学期激活/锁定请求
// 使用位置:
//   - internal/handler/academic_handler.go: ActivateTerm, SetTermLocked
type TermActionRequest struct {
	TermId string `json:"term_id" binding:"required"`
	Locked bool   `json:"locked"`
}
