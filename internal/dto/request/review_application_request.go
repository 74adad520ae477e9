package request

// ReviewApplicationRequest 审核入学申请请求
// 审核通过时 ClassId 指定实际编入的班级，缺省沿用申请班级
// 使用位置:
//   - internal/handler/admission_handler.go: ReviewApplication
//   - internal/service/admission/service.go: ReviewApplication
type ReviewApplicationRequest struct {
	ApplicationId string `json:"application_id" binding:"required"`
	Decision      string `json:"decision" binding:"required,oneof=approved rejected"`
	ClassId       string `json:"class_id"`
}
