package respond

// ConversationRespond 会话快照
// Unread 按查询者视角计算：最新消息已读集合不含查询者即未读
// 使用位置:
//   - internal/service/conversation/service.go: CreateConversation, GetConversationList
//   - internal/service/live/hub.go: 会话订阅推送
type ConversationRespond struct {
	ConversationId    string   `json:"conversation_id"`
	StudentId         string   `json:"student_id"`
	StudentName       string   `json:"student_name"`
	ParentId          string   `json:"parent_id"`
	ParentName        string   `json:"parent_name"`
	TeacherId         string   `json:"teacher_id"`
	TeacherName       string   `json:"teacher_name"`
	ClassId           string   `json:"class_id"`
	Status            string   `json:"status"`
	LastMessage       string   `json:"last_message"`
	LastMessageAt     string   `json:"last_message_at"`
	LastMessageReadBy []string `json:"last_message_read_by"`
	Unread            bool     `json:"unread"`
}

// CreateConversationRespond 创建会话响应
// AlreadyExisted 表示返回的是已有会话而非新建
// 使用位置:
//   - internal/service/conversation/service.go: CreateConversation
type CreateConversationRespond struct {
	ConversationId string `json:"conversation_id"`
	AlreadyExisted bool   `json:"already_existed"`
}
