package respond

// ApplicationRespond 入学申请快照
// 使用位置:
//   - internal/service/admission/service.go: SubmitApplication, GetApplicationList
type ApplicationRespond struct {
	ApplicationId string `json:"application_id"`
	StudentName   string `json:"student_name"`
	ParentName    string `json:"parent_name"`
	Email         string `json:"email"`
	Telephone     string `json:"telephone"`
	ApplyClassId  string `json:"apply_class_id"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// ReviewApplicationRespond 审核入学申请响应
// 审核通过时返回新开通的家长账号与学生档案
// 使用位置:
//   - internal/service/admission/service.go: ReviewApplication
type ReviewApplicationRespond struct {
	ApplicationId   string `json:"application_id"`
	Status          string `json:"status"`
	ParentId        string `json:"parent_id,omitempty"`
	ParentEmail     string `json:"parent_email,omitempty"`
	InitialPassword string `json:"initial_password,omitempty"`
	StudentId       string `json:"student_id,omitempty"`
	StudentNo       string `json:"student_no,omitempty"`
}
