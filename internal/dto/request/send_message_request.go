package request

// SendMessageRequest 发送消息请求
// 发送者身份取自 JWT 上下文，不由客户端提交
// 使用位置:
//   - internal/handler/conversation_handler.go: SendMessage
//   - internal/service/conversation/service.go: SendMessage
type SendMessageRequest struct {
	ConversationId string `json:"conversation_id" binding:"required"`
	Content        string `json:"content" binding:"required"`
}
