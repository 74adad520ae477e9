package respond

// MessageRespond 消息快照
// Seen 按查询者视角计算：已读集合含查询者即已读
// 使用位置:
//   - internal/service/conversation/service.go: SendMessage, GetMessageList
//   - internal/service/live/hub.go: 消息订阅推送
type MessageRespond struct {
	MessageId      string   `json:"message_id"`
	ConversationId string   `json:"conversation_id"`
	SenderId       string   `json:"sender_id"`
	SenderRole     string   `json:"sender_role"`
	Content        string   `json:"content"`
	CreatedAt      string   `json:"created_at"`
	ReadBy         []string `json:"read_by"`
	Seen           bool     `json:"seen"`
}
