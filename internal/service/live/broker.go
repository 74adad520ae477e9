// Package live 实现会话与消息的实时订阅推送
// broker.go
// 核心职责：定义变更事件总线接口
// 抽象事件发布与消费，支持 Kafka 和 Channel 两种实现
package live

import "context"

// 事件种类
const (
	// EventConversation 会话层变更：新会话、元数据更新、状态变更、已读变更
	EventConversation = "conversation"
	// EventMessage 消息层变更：新消息、消息已读变更
	EventMessage = "message"
)

// ChangeEvent 变更事件
// 只携带"哪里变了"，不携带数据本身
// 订阅端收到事件后重新拉取完整快照推送，保证最终一致
type ChangeEvent struct {
	Kind           string   `json:"kind"`            // 事件种类：conversation / message
	ConversationId string   `json:"conversation_id"` // 变更所在会话
	UserIds        []string `json:"user_ids"`        // 会话列表受影响的用户
}

// EventBus 定义变更事件总线接口
// 支持多种实现：KafkaBus (多实例), ChannelBus (单机)
type EventBus interface {
	// Publish 发布变更事件
	Publish(ctx context.Context, evt ChangeEvent) error
	// Start 启动消费循环，每个事件交给 deliver 处理
	Start(deliver func(ChangeEvent))
	// Close 关闭总线资源
	Close()
}

// GlobalBus 全局事件总线实例
// 在 main.go 中根据配置初始化为 KafkaBus 或 ChannelBus
var GlobalBus EventBus
