package respond

// MarkRespond 单科成绩
type MarkRespond struct {
	Subject   string `json:"subject"`
	Score     int    `json:"score"`
	TeacherId string `json:"teacher_id"`
}

// AttendanceSummaryRespond 考勤汇总
type AttendanceSummaryRespond struct {
	TotalDays   int `json:"total_days"`
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
}

// RemarkRespond 教师评语
type RemarkRespond struct {
	TeacherId string `json:"teacher_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ReportCardRespond 学生学期成绩单
// 聚合成绩、考勤汇总与评语，家长端查询入口
// 使用位置:
//   - internal/service/academic/service.go: GetReportCard
type ReportCardRespond struct {
	StudentId  string                   `json:"student_id"`
	StudentNo  string                   `json:"student_no"`
	TermId     string                   `json:"term_id"`
	TermName   string                   `json:"term_name"`
	Marks      []MarkRespond            `json:"marks"`
	Attendance AttendanceSummaryRespond `json:"attendance"`
	Remarks    []RemarkRespond          `json:"remarks"`
}
