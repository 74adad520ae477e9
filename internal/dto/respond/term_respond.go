package respond

// TermRespond 学期快照
// 使用位置:
//   - internal/service/academic/service.go: CreateTerm, GetTermList
type TermRespond struct {
	TermId string `json:"term_id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Locked bool   `json:"locked"`
}
