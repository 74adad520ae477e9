package respond

// StudentRespond 学生档案快照
// 使用位置:
//   - internal/service/admission/service.go: CreateStudent, GetClassStudents
type StudentRespond struct {
	StudentId string `json:"student_id"`
	StudentNo string `json:"student_no"`
	Name      string `json:"name"`
	ParentId  string `json:"parent_id"`
	ClassId   string `json:"class_id"`
}
