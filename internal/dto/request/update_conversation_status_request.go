package request

// UpdateConversationStatusRequest 更新会话状态请求
// 使用位置:
//   - internal/handler/conversation_handler.go: UpdateConversationStatus
//   - internal/service/conversation/service.go: UpdateConversationStatus
type UpdateConversationStatusRequest struct {
	ConversationId string `json:"conversation_id" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=open closed"`
}
