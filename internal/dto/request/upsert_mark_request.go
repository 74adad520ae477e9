package request

// UpsertMarkRequest 录入成绩请求
// 同 (学生, 学期, 科目) 重复录入按覆盖处理
// 使用位置:
//   - internal/handler/academic_handler.go: UpsertMark
//   - internal/service/academic/service.go: UpsertMark
type UpsertMarkRequest struct {
	StudentId string `json:"student_id" binding:"required"`
	TermId    string `json:"term_id" binding:"required"`
	ClassId   string `json:"class_id" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Score     int    `json:"score" binding:"gte=0,lte=100"`
}
