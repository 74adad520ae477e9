package live

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"zhixiao_school_server/internal/dto/respond"
)

// fakeProvider 固定快照提供方，记录消息快照请求的查询者
// participants 为每个会话的参与方集合，缺省时除显式列出的会话外全部放行
type fakeProvider struct {
	conversations map[string][]respond.ConversationRespond
	messages      map[string][]respond.MessageRespond
	participants  map[string][]string
	lastViewerId  string
}

func (p *fakeProvider) ConversationsForUser(userId string) ([]respond.ConversationRespond, error) {
	return p.conversations[userId], nil
}

func (p *fakeProvider) MessagesInConversation(conversationId, viewerId string) ([]respond.MessageRespond, error) {
	p.lastViewerId = viewerId
	return p.messages[conversationId], nil
}

func (p *fakeProvider) ConversationVisibleTo(conversationId, viewerId string) (bool, error) {
	users, ok := p.participants[conversationId]
	if !ok {
		return true, nil
	}
	for _, u := range users {
		if u == viewerId {
			return true, nil
		}
	}
	return false, nil
}

func newTestClient(userId string) *Client {
	return &Client{UserId: userId, SendBack: make(chan []byte, 16)}
}

// recvFrame 非阻塞读取一帧并反序列化
func recvFrame(t *testing.T, client *Client) pushFrame {
	t.Helper()
	select {
	case data := <-client.SendBack:
		var frame pushFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("unmarshal frame failed: %v", err)
		}
		return frame
	default:
		t.Fatal("expected a pushed frame, channel empty")
		return pushFrame{}
	}
}

func TestSubscribePushesInitialSnapshot(t *testing.T) {
	provider := &fakeProvider{
		conversations: map[string][]respond.ConversationRespond{
			"P1": {{ConversationId: "C1", Status: "open"}},
		},
	}
	hub := NewHub(provider)
	client := newTestClient("P1")

	hub.addSubscription(subRequest{client: client, kind: "conversations", id: "P1"})

	frame := recvFrame(t, client)
	if frame.Kind != "conversations" || frame.Id != "P1" {
		t.Errorf("frame header = %s:%s", frame.Kind, frame.Id)
	}
	data, _ := json.Marshal(frame.Data)
	var list []respond.ConversationRespond
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal snapshot failed: %v", err)
	}
	if len(list) != 1 || list[0].ConversationId != "C1" {
		t.Errorf("snapshot = %+v", list)
	}
}

func TestSubscribeEmptyIdPushesEmptySnapshot(t *testing.T) {
	provider := &fakeProvider{}
	hub := NewHub(provider)
	client := newTestClient("P1")

	hub.addSubscription(subRequest{client: client, kind: "messages", id: ""})

	frame := recvFrame(t, client)
	data, _ := json.Marshal(frame.Data)
	if string(data) != "[]" {
		t.Errorf("empty id snapshot = %s, want []", data)
	}
	if provider.lastViewerId != "" {
		t.Error("empty id subscription should not hit provider")
	}
}

func TestSubscribeForeignConversationListCoerced(t *testing.T) {
	provider := &fakeProvider{
		conversations: map[string][]respond.ConversationRespond{
			"P1": {{ConversationId: "C1"}},
			"T1": {{ConversationId: "C1"}, {ConversationId: "C2"}},
		},
	}
	hub := NewHub(provider)
	client := newTestClient("P1")

	// 指令中携带别人的用户 ID，订阅被纠正到自己名下
	hub.addSubscription(subRequest{client: client, kind: "conversations", id: "T1"})

	frame := recvFrame(t, client)
	if frame.Id != "P1" {
		t.Errorf("frame id = %s, want own user id", frame.Id)
	}
	if _, ok := hub.topics["conversations:T1"]; ok {
		t.Error("foreign topic should not be registered")
	}
	if _, ok := hub.topics["conversations:P1"]; !ok {
		t.Error("own topic should be registered")
	}

	// 别人名下的变更不会推给这个客户端
	hub.handleEvent(ChangeEvent{Kind: EventConversation, UserIds: []string{"T1"}})
	if got := len(client.SendBack); got != 0 {
		t.Errorf("client received %d frames for another user's change", got)
	}
}

func TestSubscribeMessagesRequiresParticipant(t *testing.T) {
	provider := &fakeProvider{
		messages: map[string][]respond.MessageRespond{
			"C1": {{ConversationId: "C1", Content: "私密内容"}},
		},
		participants: map[string][]string{"C1": {"P2", "T2"}},
	}
	hub := NewHub(provider)
	client := newTestClient("P1")

	hub.addSubscription(subRequest{client: client, kind: "messages", id: "C1"})

	if got := len(client.SendBack); got != 0 {
		t.Errorf("non-participant received %d frames", got)
	}
	if len(hub.topics) != 0 {
		t.Errorf("non-participant subscription registered: %v", hub.topics)
	}

	// 参与方正常订阅
	member := newTestClient("P2")
	hub.addSubscription(subRequest{client: member, kind: "messages", id: "C1"})
	frame := recvFrame(t, member)
	if frame.Kind != "messages" || frame.Id != "C1" {
		t.Errorf("frame header = %s:%s", frame.Kind, frame.Id)
	}
}

func TestMessageEventFansOutToBothTopics(t *testing.T) {
	provider := &fakeProvider{
		conversations: map[string][]respond.ConversationRespond{
			"P1": {{ConversationId: "C1"}},
			"T1": {{ConversationId: "C1"}},
		},
		messages: map[string][]respond.MessageRespond{
			"C1": {{ConversationId: "C1", Content: "你好"}},
		},
	}
	hub := NewHub(provider)
	parent := newTestClient("P1")
	teacher := newTestClient("T1")

	hub.addSubscription(subRequest{client: parent, kind: "conversations", id: "P1"})
	hub.addSubscription(subRequest{client: teacher, kind: "conversations", id: "T1"})
	hub.addSubscription(subRequest{client: teacher, kind: "messages", id: "C1"})
	// 清空初始快照
	<-parent.SendBack
	<-teacher.SendBack
	<-teacher.SendBack

	hub.handleEvent(ChangeEvent{
		Kind:           EventMessage,
		ConversationId: "C1",
		UserIds:        []string{"P1", "T1"},
	})

	// 消息快照按订阅者身份构建
	if provider.lastViewerId != "T1" {
		t.Errorf("message snapshot viewer = %s, want T1", provider.lastViewerId)
	}
	// 家长收到会话列表帧，教师收到消息帧 + 会话列表帧
	if got := len(parent.SendBack); got != 1 {
		t.Errorf("parent frames = %d, want 1", got)
	}
	if got := len(teacher.SendBack); got != 2 {
		t.Errorf("teacher frames = %d, want 2", got)
	}
}

func TestUnsubscribeStopsPush(t *testing.T) {
	provider := &fakeProvider{
		conversations: map[string][]respond.ConversationRespond{"P1": {}},
	}
	hub := NewHub(provider)
	client := newTestClient("P1")

	hub.addSubscription(subRequest{client: client, kind: "conversations", id: "P1"})
	<-client.SendBack
	hub.removeSubscription(subRequest{client: client, kind: "conversations", id: "P1"})

	hub.handleEvent(ChangeEvent{Kind: EventConversation, UserIds: []string{"P1"}})
	if got := len(client.SendBack); got != 0 {
		t.Errorf("unsubscribed client received %d frames", got)
	}
}

func TestRemoveClientClearsAllSubscriptions(t *testing.T) {
	provider := &fakeProvider{
		conversations: map[string][]respond.ConversationRespond{"P1": {}},
		messages:      map[string][]respond.MessageRespond{"C1": {}},
	}
	hub := NewHub(provider)
	client := newTestClient("P1")

	hub.addSubscription(subRequest{client: client, kind: "conversations", id: "P1"})
	hub.addSubscription(subRequest{client: client, kind: "messages", id: "C1"})
	hub.removeClient(client)

	if len(hub.topics) != 0 {
		t.Errorf("topics not cleaned up: %v", hub.topics)
	}
}

func TestChannelBusDeliversEvents(t *testing.T) {
	bus := NewChannelBus()
	defer bus.Close()

	received := make(chan ChangeEvent, 1)
	bus.Start(func(evt ChangeEvent) { received <- evt })

	if err := bus.Publish(context.Background(), ChangeEvent{
		Kind:           EventMessage,
		ConversationId: "C1",
	}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case evt := <-received:
		if evt.ConversationId != "C1" {
			t.Errorf("delivered event = %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered within 1s")
	}
}

func TestHubDispatchDropsWhenFull(t *testing.T) {
	hub := NewHub(&fakeProvider{})
	// 填满事件通道后再投递不应阻塞
	for i := 0; i < cap(hub.events)+10; i++ {
		hub.Dispatch(ChangeEvent{Kind: EventMessage, ConversationId: "C1"})
	}
	if len(hub.events) != cap(hub.events) {
		t.Errorf("events buffered = %d, want %d", len(hub.events), cap(hub.events))
	}
}
