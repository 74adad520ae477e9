package conversation

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"zhixiao_school_server/internal/dao/mysql/repository"
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/model"
	"zhixiao_school_server/internal/service/live"
	"zhixiao_school_server/pkg/constants"
	"zhixiao_school_server/pkg/errorx"
)

// ==================== 内存版 Repository 实现 ====================

type memUserRepo struct {
	users map[string]*model.UserInfo
}

func (r *memUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := r.users[uuid]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (r *memUserRepo) FindByEmail(email string) (*model.UserInfo, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (r *memUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0, len(uuids))
	for _, uuid := range uuids {
		if u, ok := r.users[uuid]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}
func (r *memUserRepo) Create(user *model.UserInfo) error {
	r.users[user.Uuid] = user
	return nil
}
func (r *memUserRepo) UpdateLastOnlineAt(uuid string, at time.Time) error { return nil }

type memStudentRepo struct {
	students map[string]*model.Student
}

func (r *memStudentRepo) FindByUuid(uuid string) (*model.Student, error) {
	if s, ok := r.students[uuid]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (r *memStudentRepo) FindByClassId(classId string) ([]model.Student, error) {
	return nil, nil
}
func (r *memStudentRepo) FindByParentId(parentId string) ([]model.Student, error) {
	return nil, nil
}
func (r *memStudentRepo) Create(student *model.Student) error {
	r.students[student.Uuid] = student
	return nil
}
func (r *memStudentRepo) CountByStudentNoPrefix(prefix string) (int64, error) { return 0, nil }
func (r *memStudentRepo) MoveClass(sourceClassId, targetClassId string) error { return nil }

type memConversationRepo struct {
	conversations map[string]*model.Conversation
}

func (r *memConversationRepo) FindByUuid(uuid string) (*model.Conversation, error) {
	if c, ok := r.conversations[uuid]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (r *memConversationRepo) FindByParentId(parentId string) ([]model.Conversation, error) {
	result := make([]model.Conversation, 0)
	for _, c := range r.conversations {
		if c.ParentId == parentId {
			result = append(result, *c)
		}
	}
	return result, nil
}
func (r *memConversationRepo) FindByTeacherId(teacherId string) ([]model.Conversation, error) {
	result := make([]model.Conversation, 0)
	for _, c := range r.conversations {
		if c.TeacherId == teacherId {
			result = append(result, *c)
		}
	}
	return result, nil
}
func (r *memConversationRepo) Create(conversation *model.Conversation) (bool, error) {
	if _, ok := r.conversations[conversation.Uuid]; ok {
		return false, nil
	}
	copied := *conversation
	r.conversations[conversation.Uuid] = &copied
	return true, nil
}
func (r *memConversationRepo) UpdateLastMessage(uuid, lastMessage string, at time.Time, readBy model.IDSet) error {
	c, ok := r.conversations[uuid]
	if !ok {
		return errorx.New(errorx.CodeNotFound, "record not found")
	}
	c.LastMessage = lastMessage
	c.LastMessageAt.Time = at
	c.LastMessageAt.Valid = true
	c.LastMessageReadBy = readBy
	return nil
}
func (r *memConversationRepo) AddReader(uuid, userId string) error {
	c, ok := r.conversations[uuid]
	if !ok {
		return errorx.New(errorx.CodeNotFound, "record not found")
	}
	c.LastMessageReadBy = c.LastMessageReadBy.Add(userId)
	return nil
}
func (r *memConversationRepo) UpdateStatus(uuid, status string) error {
	c, ok := r.conversations[uuid]
	if !ok {
		return errorx.New(errorx.CodeNotFound, "record not found")
	}
	c.Status = status
	return nil
}

type memMessageRepo struct {
	messages []*model.Message
}

func (r *memMessageRepo) FindByConversationId(conversationId string) ([]model.Message, error) {
	result := make([]model.Message, 0)
	for _, m := range r.messages {
		if m.ConversationId == conversationId {
			result = append(result, *m)
		}
	}
	// 与 SQL 查询同口径：时间升序，同时间按雪花 ID 升序
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Uuid < result[j].Uuid
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
func (r *memMessageRepo) Create(message *model.Message) error {
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}
func (r *memMessageRepo) AddReaderToAll(conversationId, userId string) error {
	for _, m := range r.messages {
		if m.ConversationId == conversationId {
			m.ReadBy = m.ReadBy.Add(userId)
		}
	}
	return nil
}

// ==================== 缓存与事件总线 Stub ====================

// noopCache 空缓存实现，Get 永远 Miss，SubmitTask 同步执行以便测试断言
type noopCache struct{}

func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (noopCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (noopCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", errorx.New(errorx.CodeCacheError, "cache miss")
}
func (noopCache) AddToSet(ctx context.Context, key string, members ...interface{}) error { return nil }
func (noopCache) GetSetMembers(ctx context.Context, key string) ([]string, error)        { return nil, nil }
func (noopCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, key string) error            { return nil }
func (noopCache) DeleteByPattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	return nil
}
func (noopCache) SubmitTask(action func()) { action() }

// recordBus 记录所有发布的事件
type recordBus struct {
	mu     sync.Mutex
	events []live.ChangeEvent
}

func (b *recordBus) Publish(ctx context.Context, evt live.ChangeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}
func (b *recordBus) Start(deliver func(live.ChangeEvent)) {}
func (b *recordBus) Close()                               {}

func (b *recordBus) count(kind string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, evt := range b.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

// ==================== 测试环境搭建 ====================

type testEnv struct {
	svc  *conversationService
	bus  *recordBus
	conv *memConversationRepo
	msg  *memMessageRepo
}

func newTestEnv() *testEnv {
	users := &memUserRepo{users: map[string]*model.UserInfo{
		"P1": {Uuid: "P1", Name: "王家长", Email: "parent@test.com", Role: constants.RoleParent},
		"T1": {Uuid: "T1", Name: "李老师", Email: "teacher@test.com", Role: constants.RoleTeacher},
		"A1": {Uuid: "A1", Name: "管理员", Email: "admin@test.com", Role: constants.RoleAdmin},
	}}
	students := &memStudentRepo{students: map[string]*model.Student{
		"S1": {Uuid: "S1", StudentNo: "STU-2026-0001", Name: "王小明", ParentId: "P1", ClassId: "K1"},
	}}
	conv := &memConversationRepo{conversations: map[string]*model.Conversation{}}
	msg := &memMessageRepo{}
	repos := &repository.Repositories{
		User:         users,
		Student:      students,
		Conversation: conv,
		Message:      msg,
	}
	bus := &recordBus{}
	return &testEnv{
		svc:  NewConversationService(repos, noopCache{}, bus),
		bus:  bus,
		conv: conv,
		msg:  msg,
	}
}

func (e *testEnv) mustCreate(t *testing.T, actorId, actorRole string) string {
	t.Helper()
	rsp, err := e.svc.CreateConversation(actorId, actorRole, request.CreateConversationRequest{
		StudentId: "S1", ParentId: "P1", TeacherId: "T1", ClassId: "K1",
		FirstMessageText: "老师您好，想了解下孩子最近的情况",
	})
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	return rsp.ConversationId
}

// ==================== 会话创建 ====================

func TestCreateConversationIdempotent(t *testing.T) {
	env := newTestEnv()

	first, err := env.svc.CreateConversation("P1", constants.RoleParent, request.CreateConversationRequest{
		StudentId: "S1", ParentId: "P1", TeacherId: "T1", ClassId: "K1",
		FirstMessageText: "老师您好",
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first.AlreadyExisted {
		t.Error("first create should not report already existed")
	}

	second, err := env.svc.CreateConversation("T1", constants.RoleTeacher, request.CreateConversationRequest{
		StudentId: "S1", ParentId: "P1", TeacherId: "T1", ClassId: "K1",
		FirstMessageText: "家长您好",
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if !second.AlreadyExisted {
		t.Error("second create should report already existed")
	}
	if first.ConversationId != second.ConversationId {
		t.Errorf("conversation id mismatch: %s vs %s", first.ConversationId, second.ConversationId)
	}
	if len(env.conv.conversations) != 1 {
		t.Errorf("expect 1 conversation, got %d", len(env.conv.conversations))
	}
	// 重复创建不追加消息，也不再通知订阅端
	if len(env.msg.messages) != 1 {
		t.Errorf("expect 1 message, got %d", len(env.msg.messages))
	}
	if got := env.bus.count(live.EventMessage); got != 1 {
		t.Errorf("expect 1 message event, got %d", got)
	}
}

func TestCreateConversationWritesFirstMessage(t *testing.T) {
	env := newTestEnv()

	rsp, err := env.svc.CreateConversation("P1", constants.RoleParent, request.CreateConversationRequest{
		StudentId: "S1", ParentId: "P1", TeacherId: "T1", ClassId: "K1",
		FirstMessageText: "  老师您好，孩子最近怎么样？  ",
	})
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	// 首条消息随会话一并落库，内容去除首尾空白
	if len(env.msg.messages) != 1 {
		t.Fatalf("expect 1 message after create, got %d", len(env.msg.messages))
	}
	first := env.msg.messages[0]
	if first.Content != "老师您好，孩子最近怎么样？" {
		t.Errorf("first message content = %q", first.Content)
	}
	if first.ConversationId != rsp.ConversationId {
		t.Errorf("first message conversation id = %s, want %s", first.ConversationId, rsp.ConversationId)
	}
	if first.SenderId != "P1" || first.SenderRole != constants.RoleParent {
		t.Errorf("first message sender = %s/%s", first.SenderId, first.SenderRole)
	}
	if !first.ReadBy.Contains("P1") || first.ReadBy.Contains("T1") {
		t.Errorf("first message read set = %v, want sender only", first.ReadBy)
	}

	// 会话元数据同步填充
	stored := env.conv.conversations[rsp.ConversationId]
	if stored.LastMessage != "老师您好，孩子最近怎么样？" {
		t.Errorf("last message = %q", stored.LastMessage)
	}
	if !stored.LastMessageAt.Valid {
		t.Error("last message time should be set on create")
	}

	// 消息列表立即可见
	list, err := env.svc.GetMessageList(rsp.ConversationId, "T1")
	if err != nil {
		t.Fatalf("GetMessageList failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("message list size = %d, want 1", len(list))
	}
}

func TestCreateConversationEmptyFirstMessage(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CreateConversation("P1", constants.RoleParent, request.CreateConversationRequest{
		StudentId: "S1", ParentId: "P1", TeacherId: "T1", ClassId: "K1",
		FirstMessageText: "   ",
	})
	if errorx.GetCode(err) != errorx.CodeEmptyMessage {
		t.Errorf("expect CodeEmptyMessage, got %v", err)
	}
	if len(env.conv.conversations) != 0 {
		t.Error("conversation should not be created without a first message")
	}
	if len(env.msg.messages) != 0 {
		t.Error("no message should be persisted")
	}
}

func TestCreateConversationCreatorMarkedRead(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	stored := env.conv.conversations[convId]
	if !stored.LastMessageReadBy.Contains("P1") {
		t.Error("creator should be in read set")
	}
	if stored.LastMessageReadBy.Contains("T1") {
		t.Error("other participant should not be in read set yet")
	}
	if stored.Status != constants.ConversationOpen {
		t.Errorf("new conversation status = %s, want open", stored.Status)
	}
}

func TestCreateConversationUnknownStudent(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.CreateConversation("P1", constants.RoleParent, request.CreateConversationRequest{
		StudentId: "S404", ParentId: "P1", TeacherId: "T1", ClassId: "K1",
		FirstMessageText: "老师您好",
	})
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("expect CodeNotFound, got %v", err)
	}
}

func TestCreateConversationRoleMismatch(t *testing.T) {
	env := newTestEnv()
	// 管理员顶替教师位置
	_, err := env.svc.CreateConversation("P1", constants.RoleParent, request.CreateConversationRequest{
		StudentId: "S1", ParentId: "P1", TeacherId: "A1", ClassId: "K1",
		FirstMessageText: "老师您好",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("expect CodeInvalidParam, got %v", err)
	}
}

// ==================== 消息发送 ====================

func TestSendMessageResetsReadState(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	// 双方都已读后教师发送新消息
	_ = env.svc.MarkConversationAsRead("T1", convId)
	rsp, err := env.svc.SendMessage("T1", constants.RoleTeacher, request.SendMessageRequest{
		ConversationId: convId, Content: "今天的作业请查收",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if rsp.Seen {
		t.Error("new message should not read as seen until the counterpart reads it")
	}

	stored := env.conv.conversations[convId]
	if !stored.LastMessageReadBy.Contains("T1") {
		t.Error("sender should be in read set after send")
	}
	if stored.LastMessageReadBy.Contains("P1") {
		t.Error("read set should reset to sender only")
	}
	if stored.LastMessage != "今天的作业请查收" {
		t.Errorf("last message = %q", stored.LastMessage)
	}
	if !stored.LastMessageAt.Valid {
		t.Error("last message time should be set")
	}
}

func TestSendMessageTrimsWhitespace(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	rsp, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: convId, Content: "  你好老师  ",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if rsp.Content != "你好老师" {
		t.Errorf("content = %q, want trimmed", rsp.Content)
	}
}

func TestSendMessageEmptyContent(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	_, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: convId, Content: "   ",
	})
	if errorx.GetCode(err) != errorx.CodeEmptyMessage {
		t.Errorf("expect CodeEmptyMessage, got %v", err)
	}
	if len(env.msg.messages) != 1 {
		t.Error("empty message should not be persisted beyond the first message")
	}
}

func TestSendMessageToClosedConversation(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	if err := env.svc.UpdateConversationStatus(request.UpdateConversationStatusRequest{
		ConversationId: convId, Status: constants.ConversationClosed,
	}); err != nil {
		t.Fatalf("UpdateConversationStatus failed: %v", err)
	}

	_, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: convId, Content: "还在吗",
	})
	if errorx.GetCode(err) != errorx.CodeConversationClosed {
		t.Errorf("expect CodeConversationClosed, got %v", err)
	}
	if len(env.msg.messages) != 1 {
		t.Error("message to closed conversation should not be persisted")
	}

	// 重新开启后恢复发送
	if err := env.svc.UpdateConversationStatus(request.UpdateConversationStatusRequest{
		ConversationId: convId, Status: constants.ConversationOpen,
	}); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: convId, Content: "重新打开了",
	}); err != nil {
		t.Errorf("send after reopen failed: %v", err)
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: "C404", Content: "你好",
	})
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("expect CodeNotFound, got %v", err)
	}
}

// ==================== 标记已读 ====================

func TestMarkConversationAsReadIdempotent(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)
	if _, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: convId, Content: "第一条",
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := env.svc.MarkConversationAsRead("T1", convId); err != nil {
			t.Fatalf("MarkConversationAsRead failed: %v", err)
		}
	}

	stored := env.conv.conversations[convId]
	if !stored.LastMessageReadBy.Contains("T1") {
		t.Error("reader should be in conversation read set")
	}
	if got := len(stored.LastMessageReadBy); got != 2 {
		t.Errorf("read set size = %d, want 2 (no duplicates)", got)
	}
	for _, m := range env.msg.messages {
		if !m.ReadBy.Contains("T1") {
			t.Error("reader should be in every message read set")
		}
		if got := len(m.ReadBy); got != 2 {
			t.Errorf("message read set size = %d, want 2", got)
		}
	}
}

func TestMarkConversationAsReadBestEffort(t *testing.T) {
	env := newTestEnv()
	// 会话不存在也不报错
	if err := env.svc.MarkConversationAsRead("T1", "C404"); err != nil {
		t.Errorf("mark read on missing conversation should swallow error, got %v", err)
	}
}

// ==================== 列表查询 ====================

func TestGetConversationListUnreadFlag(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)
	if _, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: convId, Content: "在吗",
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// 教师视角未读
	teacherList, err := env.svc.GetConversationList("T1")
	if err != nil {
		t.Fatalf("GetConversationList failed: %v", err)
	}
	if len(teacherList) != 1 {
		t.Fatalf("teacher list size = %d, want 1", len(teacherList))
	}
	if !teacherList[0].Unread {
		t.Error("teacher should see conversation as unread")
	}

	// 家长（发送者）视角已读
	parentList, err := env.svc.GetConversationList("P1")
	if err != nil {
		t.Fatalf("GetConversationList failed: %v", err)
	}
	if parentList[0].Unread {
		t.Error("sender should see conversation as read")
	}

	// 标记后教师视角转为已读
	_ = env.svc.MarkConversationAsRead("T1", convId)
	teacherList, err = env.svc.GetConversationList("T1")
	if err != nil {
		t.Fatalf("GetConversationList failed: %v", err)
	}
	if teacherList[0].Unread {
		t.Error("teacher should see conversation as read after marking")
	}
}

func TestGetConversationListAdminEmpty(t *testing.T) {
	env := newTestEnv()
	env.mustCreate(t, "P1", constants.RoleParent)

	list, err := env.svc.GetConversationList("A1")
	if err != nil {
		t.Fatalf("GetConversationList failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("admin list size = %d, want 0", len(list))
	}
}

func TestGetMessageListSeenIsDeliveryReceipt(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	// 对方尚未读：发送者看自己的消息是"未被查看"，接收者看是"未读"
	parentView, err := env.svc.GetMessageList(convId, "P1")
	if err != nil {
		t.Fatalf("GetMessageList failed: %v", err)
	}
	if len(parentView) != 1 {
		t.Fatalf("parent view size = %d, want 1", len(parentView))
	}
	if parentView[0].Seen {
		t.Error("sender should not see own message as seen before the counterpart reads")
	}

	teacherView, err := env.svc.GetMessageList(convId, "T1")
	if err != nil {
		t.Fatalf("GetMessageList failed: %v", err)
	}
	if teacherView[0].Seen {
		t.Error("recipient should see message as unseen before marking")
	}

	// 教师标记已读后：发送者拿到回执，接收者本人也已读
	_ = env.svc.MarkConversationAsRead("T1", convId)

	parentView, err = env.svc.GetMessageList(convId, "P1")
	if err != nil {
		t.Fatalf("GetMessageList failed: %v", err)
	}
	if !parentView[0].Seen {
		t.Error("sender should see own message as seen after the counterpart reads")
	}

	teacherView, err = env.svc.GetMessageList(convId, "T1")
	if err != nil {
		t.Fatalf("GetMessageList failed: %v", err)
	}
	if !teacherView[0].Seen {
		t.Error("recipient should see message as seen after marking")
	}
}

func TestGetMessageListOrdering(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	contents := []string{"孩子最近数学跟得上吗", "体育课表现也想了解下", "谢谢老师"}
	for _, content := range contents {
		if _, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
			ConversationId: convId, Content: content,
		}); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}

	list, err := env.svc.GetMessageList(convId, "T1")
	if err != nil {
		t.Fatalf("GetMessageList failed: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("message list size = %d, want 4 (first message + 3 sends)", len(list))
	}
	// 首条消息在最前，后续消息按发送顺序排列，时间不回退
	for i, want := range contents {
		if got := list[i+1].Content; got != want {
			t.Errorf("message %d content = %q, want %q", i+1, got, want)
		}
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt < list[i-1].CreatedAt {
			t.Errorf("message %d created before its predecessor: %s < %s",
				i, list[i].CreatedAt, list[i-1].CreatedAt)
		}
	}

	// 同一时间戳的消息按雪花 ID 升序兜底
	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, uuid := range []int64{300, 100, 200} {
		m := model.Message{
			Uuid:           uuid,
			ConversationId: convId,
			SenderId:       "T1",
			SenderRole:     constants.RoleTeacher,
			Content:        "补充",
			ReadBy:         model.IDSet{"T1"},
		}
		m.CreatedAt = base
		if err := env.msg.Create(&m); err != nil {
			t.Fatalf("seed message failed: %v", err)
		}
	}
	list, err = env.svc.GetMessageList(convId, "T1")
	if err != nil {
		t.Fatalf("GetMessageList failed: %v", err)
	}
	if list[0].MessageId != "100" || list[1].MessageId != "200" || list[2].MessageId != "300" {
		t.Errorf("same-timestamp messages not ordered by id: %s, %s, %s",
			list[0].MessageId, list[1].MessageId, list[2].MessageId)
	}
}

func TestConversationVisibleTo(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)

	cases := []struct {
		userId string
		want   bool
	}{
		{"P1", true},
		{"T1", true},
		{"A1", false},
		{"P2", false},
	}
	for _, c := range cases {
		got, err := env.svc.ConversationVisibleTo(convId, c.userId)
		if err != nil {
			t.Fatalf("ConversationVisibleTo(%s) failed: %v", c.userId, err)
		}
		if got != c.want {
			t.Errorf("ConversationVisibleTo(%s) = %v, want %v", c.userId, got, c.want)
		}
	}

	// 会话不存在视为不可见
	got, err := env.svc.ConversationVisibleTo("C404", "P1")
	if err != nil {
		t.Fatalf("ConversationVisibleTo on missing conversation failed: %v", err)
	}
	if got {
		t.Error("missing conversation should not be visible")
	}
}

// ==================== 事件通知 ====================

func TestSendMessagePublishesEvent(t *testing.T) {
	env := newTestEnv()
	convId := env.mustCreate(t, "P1", constants.RoleParent)
	if _, err := env.svc.SendMessage("P1", constants.RoleParent, request.SendMessageRequest{
		ConversationId: convId, Content: "你好",
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// 创建（随首条消息）和发送各通知一次
	if got := env.bus.count(live.EventMessage); got != 2 {
		t.Fatalf("expect 2 message events, got %d", got)
	}
	env.bus.mu.Lock()
	evt := env.bus.events[len(env.bus.events)-1]
	env.bus.mu.Unlock()
	if evt.ConversationId != convId {
		t.Errorf("event conversation id = %s, want %s", evt.ConversationId, convId)
	}
	if len(evt.UserIds) != 2 {
		t.Errorf("event should target both participants, got %v", evt.UserIds)
	}
}
