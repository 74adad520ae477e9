package request

// CreateConversationRequest 创建会话请求
// 家长端或教师端围绕某个学生发起家校会话
// 使用位置:
//   - internal/handler/conversation_handler.go: CreateConversation
//   - internal/service/conversation/service.go: CreateConversation
type CreateConversationRequest struct {
	StudentId        string `json:"student_id" binding:"required"`
	ParentId         string `json:"parent_id" binding:"required"`
	TeacherId        string `json:"teacher_id" binding:"required"`
	ClassId          string `json:"class_id" binding:"required"`
	FirstMessageText string `json:"first_message_text" binding:"required"`
}
