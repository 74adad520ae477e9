// Package live 实现会话与消息的实时订阅推送
// kafka_bus.go
// 核心职责：多实例模式下的事件总线实现
// 1. 封装 Kafka 底层连接 (Writer/Reader)
// 2. 每个实例用独立消费组订阅变更主题，保证所有实例都能收到全量事件
// 3. 纯技术组件，不包含推送业务逻辑
package live

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "zhixiao_school_server/internal/config"
)

// KafkaBus 基于 Kafka 的事件总线
type KafkaBus struct {
	producer *kafka.Writer
	consumer *kafka.Reader
	done     chan struct{}
}

// NewKafkaBus 创建并初始化 Kafka 事件总线
func NewKafkaBus() *KafkaBus {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.ChangeTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	// 消费组 ID 带实例随机后缀
	// 推送需要广播语义：每个实例都消费全量事件，各自推给本实例上的订阅者
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.ChangeTopic,
		CommitInterval: kafkaConfig.Timeout * time.Second,
		GroupID:        "live_" + uuid.NewString(),
		StartOffset:    kafka.LastOffset,
	})
	return &KafkaBus{
		producer: producer,
		consumer: consumer,
		done:     make(chan struct{}),
	}
}

// Publish 发布变更事件
// 以会话 ID 作为分区键，同一会话的事件保持有序
func (b *KafkaBus) Publish(ctx context.Context, evt ChangeEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	key := []byte(evt.ConversationId)
	if len(key) == 0 {
		key = []byte(strconv.Itoa(myconfig.GetConfig().KafkaConfig.Partition))
	}
	return b.producer.WriteMessages(ctx, kafka.Message{Key: key, Value: data})
}

// Start 启动消费循环
func (b *KafkaBus) Start(deliver func(ChangeEvent)) {
	go func() {
		zap.L().Info("kafka event bus started")
		for {
			select {
			case <-b.done:
				return
			default:
			}
			msg, err := b.consumer.ReadMessage(context.Background())
			if err != nil {
				zap.L().Error("kafka read message failed", zap.Error(err))
				continue
			}
			var evt ChangeEvent
			if err := json.Unmarshal(msg.Value, &evt); err != nil {
				zap.L().Error("kafka event unmarshal failed", zap.Error(err))
				continue
			}
			deliver(evt)
		}
	}()
}

// Close 关闭总线资源
func (b *KafkaBus) Close() {
	close(b.done)
	if err := b.producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}
