package request

// CreateClassRequest 创建班级请求
// 使用位置:
//   - internal/handler/admission_handler.go: CreateClass
//   - internal/service/admission/service.go: CreateClass
type CreateClassRequest struct {
	Name string `json:"name" binding:"required"`
}

// AssignTeacherRequest 指派教师任课请求
// 使用位置:
//   - internal/handler/admission_handler.go: AssignTeacher
//   - internal/service/admission/service.go: AssignTeacher
type AssignTeacherRequest struct {
	TeacherId string `json:"teacher_id" binding:"required"`
	ClassId   string `json:"class_id" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
}
