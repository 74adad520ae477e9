package respond

// ClassRespond 班级快照
// 使用位置:
//   - internal/service/admission/service.go: CreateClass, GetClassList
type ClassRespond struct {
	ClassId string `json:"class_id"`
	Name    string `json:"name"`
}

// TeacherAssignmentRespond 任课关系
// 使用位置:
//   - internal/service/admission/service.go: GetTeacherAssignments
type TeacherAssignmentRespond struct {
	TeacherId string `json:"teacher_id"`
	ClassId   string `json:"class_id"`
	Subject   string `json:"subject"`
}
