// Package live 实现会话与消息的实时订阅推送
// channel_bus.go
// 核心职责：单机模式下的事件总线实现
// 进程内 channel 直连，不依赖外部消息队列，适合小规模或开发环境
package live

import (
	"context"

	"go.uber.org/zap"

	"zhixiao_school_server/pkg/constants"
)

// ChannelBus 基于进程内 channel 的事件总线
type ChannelBus struct {
	events chan ChangeEvent
	done   chan struct{}
}

// NewChannelBus 创建 ChannelBus 实例
func NewChannelBus() *ChannelBus {
	return &ChannelBus{
		events: make(chan ChangeEvent, constants.CHANNEL_SIZE),
		done:   make(chan struct{}),
	}
}

// Publish 发布变更事件
// 通道满时丢弃事件并告警，推送层靠下一次事件补齐快照
func (b *ChannelBus) Publish(ctx context.Context, evt ChangeEvent) error {
	select {
	case b.events <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		zap.L().Warn("event bus channel full, event dropped",
			zap.String("kind", evt.Kind),
			zap.String("conversation_id", evt.ConversationId),
		)
		return nil
	}
}

// Start 启动消费循环
func (b *ChannelBus) Start(deliver func(ChangeEvent)) {
	go func() {
		zap.L().Info("channel event bus started")
		for {
			select {
			case evt := <-b.events:
				deliver(evt)
			case <-b.done:
				return
			}
		}
	}()
}

// Close 关闭总线
func (b *ChannelBus) Close() {
	close(b.done)
}
