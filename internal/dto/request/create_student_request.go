package request

// CreateStudentRequest 创建学生档案请求
// 学号由服务端按年份自动生成，不由客户端提交
// 使用位置:
//   - internal/handler/admission_handler.go: CreateStudent
//   - internal/service/admission/service.go: CreateStudent
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentId string `json:"parent_id" binding:"required"`
	ClassId  string `json:"class_id" binding:"required"`
}

// PromoteStudentsRequest 学生整班升级请求
// 使用位置:
//   - internal/handler/admission_handler.go: PromoteStudents
//   - internal/service/admission/service.go: PromoteStudents
type PromoteStudentsRequest struct {
	SourceClassId string `json:"source_class_id" binding:"required"`
	TargetClassId string `json:"target_class_id" binding:"required"`
}
