// Package live 实现会话与消息的实时订阅推送
// hub.go
// 核心职责：订阅中心
// 1. 维护在线客户端与订阅关系（单协程事件循环，无锁）
// 2. 收到变更事件后重新拉取完整快照，推送给受影响的订阅者
// 3. 订阅建立时立即推送一次当前快照
package live

import (
	"encoding/json"

	"go.uber.org/zap"

	"zhixiao_school_server/internal/dto/respond"
	"zhixiao_school_server/pkg/constants"
)

// SnapshotProvider 快照提供方
// 由会话 Service 实现，Hub 只负责"何时推"，数据口径完全复用查询路径
type SnapshotProvider interface {
	// ConversationsForUser 用户视角的会话列表快照
	ConversationsForUser(userId string) ([]respond.ConversationRespond, error)
	// MessagesInConversation 查询者视角的会话消息快照
	MessagesInConversation(conversationId, viewerId string) ([]respond.MessageRespond, error)
	// ConversationVisibleTo 判断用户是否为会话参与方，订阅鉴权用
	ConversationVisibleTo(conversationId, viewerId string) (bool, error)
}

// subRequest 订阅/退订请求
type subRequest struct {
	client *Client
	kind   string // conversations / messages
	id     string // 用户 UUID 或会话 UUID
}

// pushFrame 推送给前端的数据帧，data 始终是完整快照
type pushFrame struct {
	Kind string `json:"kind"`
	Id   string `json:"id"`
	Data any    `json:"data"`
}

// Hub 订阅中心
// 所有状态只在 Run 协程内读写，外部通过通道交互
type Hub struct {
	// Login 客户端接入通道
	Login chan *Client
	// Logout 客户端断开通道
	Logout chan *Client

	subscribe   chan subRequest
	unsubscribe chan subRequest
	events      chan ChangeEvent

	// topics 订阅关系表，key 为 "kind:id"
	topics map[string]map[*Client]struct{}

	provider SnapshotProvider
}

// NewHub 创建订阅中心实例（依赖注入）
func NewHub(provider SnapshotProvider) *Hub {
	return &Hub{
		Login:       make(chan *Client, constants.CHANNEL_SIZE),
		Logout:      make(chan *Client, constants.CHANNEL_SIZE),
		subscribe:   make(chan subRequest, constants.CHANNEL_SIZE),
		unsubscribe: make(chan subRequest, constants.CHANNEL_SIZE),
		events:      make(chan ChangeEvent, constants.CHANNEL_SIZE),
		topics:      make(map[string]map[*Client]struct{}),
		provider:    provider,
	}
}

// GlobalHub 全局订阅中心实例，在 main.go 中初始化
var GlobalHub *Hub

// Dispatch 接收事件总线投递的变更事件
// 由 EventBus 消费协程调用，通道满时丢弃（快照语义下可由后续事件补齐）
func (h *Hub) Dispatch(evt ChangeEvent) {
	select {
	case h.events <- evt:
	default:
		zap.L().Warn("hub event channel full, event dropped",
			zap.String("kind", evt.Kind),
			zap.String("conversation_id", evt.ConversationId),
		)
	}
}

// Run 启动事件循环（阻塞，应在独立协程中调用）
func (h *Hub) Run() {
	zap.L().Info("live hub started")
	for {
		select {
		case client := <-h.Login:
			zap.L().Info("live client connected", zap.String("user_id", client.UserId))
		case client := <-h.Logout:
			h.removeClient(client)
			zap.L().Info("live client disconnected", zap.String("user_id", client.UserId))
		case req := <-h.subscribe:
			h.addSubscription(req)
		case req := <-h.unsubscribe:
			h.removeSubscription(req)
		case evt := <-h.events:
			h.handleEvent(evt)
		}
	}
}

// addSubscription 建立订阅并立即推送当前快照
// 订阅指令中的 ID 不可信：会话列表只能订阅自己的，
// 消息流只对会话参与方开放
func (h *Hub) addSubscription(req subRequest) {
	if req.kind == "conversations" && req.id != "" && req.id != req.client.UserId {
		zap.L().Warn("conversation list subscription coerced to own user",
			zap.String("user_id", req.client.UserId),
			zap.String("requested_id", req.id),
		)
		req.id = req.client.UserId
	}
	if req.kind == "messages" && req.id != "" {
		allowed, err := h.provider.ConversationVisibleTo(req.id, req.client.UserId)
		if err != nil {
			zap.L().Error("subscription authorization check failed",
				zap.String("conversation_id", req.id),
				zap.String("user_id", req.client.UserId),
				zap.Error(err),
			)
			return
		}
		if !allowed {
			zap.L().Warn("message subscription denied: not a participant",
				zap.String("conversation_id", req.id),
				zap.String("user_id", req.client.UserId),
			)
			return
		}
	}

	topic := req.kind + ":" + req.id
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][req.client] = struct{}{}
	h.pushToClient(req.client, req.kind, req.id)
}

// removeSubscription 解除单个订阅
func (h *Hub) removeSubscription(req subRequest) {
	topic := req.kind + ":" + req.id
	if clients, ok := h.topics[topic]; ok {
		delete(clients, req.client)
		if len(clients) == 0 {
			delete(h.topics, topic)
		}
	}
}

// removeClient 清除客户端的全部订阅
func (h *Hub) removeClient(client *Client) {
	for topic, clients := range h.topics {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.topics, topic)
		}
	}
}

// handleEvent 处理变更事件，向受影响的订阅主题推送新快照
func (h *Hub) handleEvent(evt ChangeEvent) {
	switch evt.Kind {
	case EventConversation:
		for _, userId := range evt.UserIds {
			h.pushToTopic("conversations", userId)
		}
	case EventMessage:
		h.pushToTopic("messages", evt.ConversationId)
		// 消息变更同时影响参与者的会话列表（最新消息与未读状态）
		for _, userId := range evt.UserIds {
			h.pushToTopic("conversations", userId)
		}
	default:
		zap.L().Warn("unknown event kind", zap.String("kind", evt.Kind))
	}
}

// pushToTopic 向主题下所有订阅者推送快照
func (h *Hub) pushToTopic(kind, id string) {
	topic := kind + ":" + id
	clients, ok := h.topics[topic]
	if !ok {
		return
	}
	for client := range clients {
		h.pushToClient(client, kind, id)
	}
}

// pushToClient 构建并推送单个客户端的快照帧
// 消息快照的已读视角取决于客户端登录身份，因此逐客户端构建
func (h *Hub) pushToClient(client *Client, kind, id string) {
	frame := pushFrame{Kind: kind, Id: id}
	// 空 ID 订阅直接返回空快照，不查库
	if id == "" {
		switch kind {
		case "conversations":
			frame.Data = []respond.ConversationRespond{}
		case "messages":
			frame.Data = []respond.MessageRespond{}
		}
		h.send(client, frame)
		return
	}

	switch kind {
	case "conversations":
		data, err := h.provider.ConversationsForUser(id)
		if err != nil {
			zap.L().Error("build conversation snapshot failed",
				zap.String("user_id", id), zap.Error(err))
			return
		}
		frame.Data = data
	case "messages":
		data, err := h.provider.MessagesInConversation(id, client.UserId)
		if err != nil {
			zap.L().Error("build message snapshot failed",
				zap.String("conversation_id", id), zap.Error(err))
			return
		}
		frame.Data = data
	default:
		return
	}
	h.send(client, frame)
}

// send 将数据帧写入客户端发送通道
// 发送通道满说明客户端消费过慢，丢弃本帧（后续事件会带来更新的快照）
func (h *Hub) send(client *Client, frame pushFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		zap.L().Error("marshal push frame failed", zap.Error(err))
		return
	}
	select {
	case client.SendBack <- data:
	default:
		zap.L().Warn("client send channel full, frame dropped",
			zap.String("user_id", client.UserId))
	}
}
