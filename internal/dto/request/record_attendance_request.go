package request

// AttendanceEntry 单个学生的考勤项
type AttendanceEntry struct {
	StudentId string `json:"student_id" binding:"required"`
	Present   bool   `json:"present"`
}

// RecordAttendanceRequest 录入班级考勤请求
// 一次提交一个班级某天的全部出勤情况
// 使用位置:
//   - internal/handler/academic_handler.go: RecordAttendance
//   - internal/service/academic/service.go: RecordAttendance
type RecordAttendanceRequest struct {
	ClassId string            `json:"class_id" binding:"required"`
	TermId  string            `json:"term_id" binding:"required"`
	Date    string            `json:"date" binding:"required"` // 格式 2006-01-02
	Entries []AttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}
