package conversation

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"zhixiao_school_server/internal/dao/mysql/repository"
	myredis "zhixiao_school_server/internal/dao/redis"
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/dto/respond"
	"zhixiao_school_server/internal/model"
	"zhixiao_school_server/internal/service/live"
	"zhixiao_school_server/pkg/constants"
	"zhixiao_school_server/pkg/errorx"
	"zhixiao_school_server/pkg/util/snowflake"
)

// timeLayout 响应中的时间格式
const timeLayout = "2006-01-02 15:04:05"

// conversationService 家校会话业务逻辑实现
// 通过构造函数注入 Repository、Cache 和事件总线依赖
type conversationService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
	bus   live.EventBus
}

// NewConversationService 构造函数，注入所有依赖
func NewConversationService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, bus live.EventBus) *conversationService {
	return &conversationService{
		repos: repos,
		cache: cacheService,
		bus:   bus,
	}
}

// CreateConversation 创建会话（幂等）
// 会话 ID 是 (学生, 家长, 教师) 的确定性复合键，数据库唯一索引兜底，
// 并发重复创建时只有一方写入成功，另一方拿到已有会话。
// 新会话与首条消息在同一事务内落库，创建即可见；
// 已存在时不写任何数据，携带的首条消息内容被丢弃
func (s *conversationService) CreateConversation(actorId, actorRole string, req request.CreateConversationRequest) (*respond.CreateConversationRespond, error) {
	// 1. 首条消息不能为空
	content := strings.TrimSpace(req.FirstMessageText)
	if content == "" {
		return nil, errorx.ErrEmptyMessage
	}

	// 2. 校验三方主体都存在
	student, err := s.repos.Student.FindByUuid(req.StudentId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			zap.L().Warn("创建会话失败：学生不存在", zap.String("student_id", req.StudentId))
			return nil, errorx.New(errorx.CodeNotFound, "学生不存在")
		}
		zap.L().Error("查询学生失败", zap.String("student_id", req.StudentId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	parent, err := s.findUserWithRole(req.ParentId, constants.RoleParent)
	if err != nil {
		return nil, err
	}
	teacher, err := s.findUserWithRole(req.TeacherId, constants.RoleTeacher)
	if err != nil {
		return nil, err
	}

	// 3. 构建会话和首条消息，发起者自动视为已读
	now := time.Now()
	conv := model.Conversation{
		Uuid:              model.ConversationUuid(req.StudentId, req.ParentId, req.TeacherId),
		StudentId:         req.StudentId,
		ParentId:          req.ParentId,
		TeacherId:         req.TeacherId,
		ClassId:           req.ClassId,
		StudentName:       student.Name,
		ParentName:        parent.Name,
		TeacherName:       teacher.Name,
		Status:            constants.ConversationOpen,
		LastMessage:       content,
		LastMessageAt:     sql.NullTime{Time: now, Valid: true},
		LastMessageReadBy: model.IDSet{actorId},
	}
	firstMessage := model.Message{
		Uuid:           snowflake.GenerateID(),
		ConversationId: conv.Uuid,
		SenderId:       actorId,
		SenderRole:     actorRole,
		Content:        content,
		ReadBy:         model.IDSet{actorId},
	}
	firstMessage.CreatedAt = now

	// 4. 事务内写入会话和首条消息，会话冲突即已存在、整体不写
	created := false
	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		var txErr error
		created, txErr = txRepos.Conversation.Create(&conv)
		if txErr != nil {
			return txErr
		}
		if !created {
			return nil
		}
		return txRepos.Message.Create(&firstMessage)
	})
	if err != nil {
		zap.L().Error("创建会话失败", zap.String("conversation_id", conv.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !created {
		zap.L().Info("会话已存在，返回已有会话",
			zap.String("conversation_id", conv.Uuid),
			zap.String("actor_id", actorId),
		)
		return &respond.CreateConversationRespond{
			ConversationId: conv.Uuid,
			AlreadyExisted: true,
		}, nil
	}

	// 5. 异步清理缓存并通知订阅端
	// 首条消息随会话一起落库，按消息事件广播，双方列表和消息流同时刷新
	s.cache.SubmitTask(func() {
		s.clearConversationCache(&conv)
	})
	s.publish(live.ChangeEvent{
		Kind:           live.EventMessage,
		ConversationId: conv.Uuid,
		UserIds:        []string{conv.ParentId, conv.TeacherId},
	})

	zap.L().Info("会话创建成功",
		zap.String("conversation_id", conv.Uuid),
		zap.String("student_id", req.StudentId),
		zap.String("actor_id", actorId),
	)
	return &respond.CreateConversationRespond{ConversationId: conv.Uuid}, nil
}

// findUserWithRole 查找用户并校验角色
func (s *conversationService) findUserWithRole(uuid, role string) (*model.UserInfo, error) {
	user, err := s.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			zap.L().Warn("用户不存在", zap.String("uuid", uuid))
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if user.Role != role {
		zap.L().Warn("用户角色不匹配",
			zap.String("uuid", uuid),
			zap.String("expect", role),
			zap.String("actual", user.Role),
		)
		return nil, errorx.Newf(errorx.CodeInvalidParam, "用户 %s 不是%s", uuid, roleLabel(role))
	}
	return user, nil
}

func roleLabel(role string) string {
	switch role {
	case constants.RoleParent:
		return "家长"
	case constants.RoleTeacher:
		return "教师"
	default:
		return "管理员"
	}
}

// SendMessage 发送消息
// 消息写入与会话元数据更新在同一事务内完成：
// 最新消息内容/时间刷新，已读集合重置为只含发送者
func (s *conversationService) SendMessage(actorId, actorRole string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	// 1. 空消息拒绝
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.ErrEmptyMessage
	}

	// 2. 会话必须存在且处于开启状态
	conv, err := s.repos.Conversation.FindByUuid(req.ConversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			zap.L().Warn("发送消息失败：会话不存在", zap.String("conversation_id", req.ConversationId))
			return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error("查询会话失败", zap.String("conversation_id", req.ConversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if conv.Status == constants.ConversationClosed {
		zap.L().Warn("发送消息失败：会话已关闭",
			zap.String("conversation_id", conv.Uuid),
			zap.String("sender_id", actorId),
		)
		return nil, errorx.ErrConversationClosed
	}

	// 3. 事务内写消息并更新会话元数据
	now := time.Now()
	message := model.Message{
		Uuid:           snowflake.GenerateID(),
		ConversationId: conv.Uuid,
		SenderId:       actorId,
		SenderRole:     actorRole,
		Content:        content,
		ReadBy:         model.IDSet{actorId},
	}
	message.CreatedAt = now
	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Message.Create(&message); err != nil {
			return err
		}
		return txRepos.Conversation.UpdateLastMessage(conv.Uuid, content, now, model.IDSet{actorId})
	})
	if err != nil {
		zap.L().Error("发送消息失败",
			zap.String("conversation_id", conv.Uuid),
			zap.String("sender_id", actorId),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}

	// 4. 异步清理缓存并通知订阅端
	s.cache.SubmitTask(func() {
		s.clearConversationCache(conv)
	})
	s.publish(live.ChangeEvent{
		Kind:           live.EventMessage,
		ConversationId: conv.Uuid,
		UserIds:        []string{conv.ParentId, conv.TeacherId},
	})

	rsp := toMessageRespond(&message, conv, actorId)
	return &rsp, nil
}

// MarkConversationAsRead 标记会话已读
// 尽力而为：失败只记日志不报错，前端下一次标记会补齐；
// 两条守卫 UPDATE 天然幂等，重复调用不产生额外写入
func (s *conversationService) MarkConversationAsRead(actorId, conversationId string) error {
	conv, err := s.repos.Conversation.FindByUuid(conversationId)
	if err != nil {
		zap.L().Warn("标记已读失败：查询会话失败",
			zap.String("conversation_id", conversationId),
			zap.Error(err),
		)
		return nil
	}
	if err := s.repos.Conversation.AddReader(conversationId, actorId); err != nil {
		zap.L().Warn("标记会话已读失败", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil
	}
	if err := s.repos.Message.AddReaderToAll(conversationId, actorId); err != nil {
		zap.L().Warn("标记消息已读失败", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil
	}

	s.cache.SubmitTask(func() {
		s.clearConversationCache(conv)
	})
	// 已读变更同时影响双方：本人的未读标记消失，对方看到"已读"回执
	s.publish(live.ChangeEvent{
		Kind:           live.EventMessage,
		ConversationId: conversationId,
		UserIds:        []string{conv.ParentId, conv.TeacherId},
	})
	return nil
}

// UpdateConversationStatus 更新会话状态
// 纯字段写入，不附带副作用；关闭后的发送拦截在 SendMessage 中
func (s *conversationService) UpdateConversationStatus(req request.UpdateConversationStatusRequest) error {
	conv, err := s.repos.Conversation.FindByUuid(req.ConversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error("查询会话失败", zap.String("conversation_id", req.ConversationId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := s.repos.Conversation.UpdateStatus(req.ConversationId, req.Status); err != nil {
		zap.L().Error("更新会话状态失败",
			zap.String("conversation_id", req.ConversationId),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}

	s.cache.SubmitTask(func() {
		s.clearConversationCache(conv)
	})
	s.publish(live.ChangeEvent{
		Kind:           live.EventConversation,
		ConversationId: conv.Uuid,
		UserIds:        []string{conv.ParentId, conv.TeacherId},
	})
	return nil
}

// GetConversationList 获取用户参与的会话列表
// 家长和教师各查各的参与字段，其他角色返回空列表
func (s *conversationService) GetConversationList(userId string) ([]respond.ConversationRespond, error) {
	cacheKey := "conversation_list_" + userId

	// 1. 尝试读缓存
	rspString, err := s.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp []respond.ConversationRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return rsp, nil
		}
		// 反序列化失败，记录日志并降级查库
		zap.L().Error("Unmarshal conversation list cache failed", zap.Error(err))
	} else if err != nil {
		zap.L().Error(err.Error())
	}

	// 2. 查库（缓存 Miss 或反序列化失败）
	user, err := s.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	var conversations []model.Conversation
	switch user.Role {
	case constants.RoleParent:
		conversations, err = s.repos.Conversation.FindByParentId(userId)
	case constants.RoleTeacher:
		conversations, err = s.repos.Conversation.FindByTeacherId(userId)
	default:
		return []respond.ConversationRespond{}, nil
	}
	if err != nil {
		zap.L().Error("查询会话列表失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	listRsp := make([]respond.ConversationRespond, 0, len(conversations))
	for i := range conversations {
		listRsp = append(listRsp, toConversationRespond(&conversations[i], userId))
	}

	// 3. 回写缓存
	s.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(listRsp)
		if err != nil {
			zap.L().Error("Marshal failed", zap.Error(err))
			return
		}
		_ = s.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*constants.REDIS_TIMEOUT)
	})

	return listRsp, nil
}

// GetMessageList 获取会话内全部消息
// 已读标记按查询者视角计算，缓存键带查询者
func (s *conversationService) GetMessageList(conversationId, viewerId string) ([]respond.MessageRespond, error) {
	cacheKey := "message_list_" + conversationId + "_" + viewerId

	rspString, err := s.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp []respond.MessageRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Error("Unmarshal message list cache failed", zap.Error(err))
	} else if err != nil {
		zap.L().Error(err.Error())
	}

	// 已读回执相对发送者的对方计算，需要会话中的参与方信息
	conv, err := s.repos.Conversation.FindByUuid(conversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error("查询会话失败", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	messages, err := s.repos.Message.FindByConversationId(conversationId)
	if err != nil {
		zap.L().Error("查询消息列表失败", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	listRsp := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		listRsp = append(listRsp, toMessageRespond(&messages[i], conv, viewerId))
	}

	s.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(listRsp)
		if err != nil {
			zap.L().Error("Marshal failed", zap.Error(err))
			return
		}
		_ = s.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*constants.REDIS_TIMEOUT)
	})

	return listRsp, nil
}

// ==================== 快照提供方（供订阅中心调用） ====================

// ConversationsForUser 用户视角的会话列表快照
func (s *conversationService) ConversationsForUser(userId string) ([]respond.ConversationRespond, error) {
	return s.GetConversationList(userId)
}

// MessagesInConversation 查询者视角的会话消息快照
func (s *conversationService) MessagesInConversation(conversationId, viewerId string) ([]respond.MessageRespond, error) {
	return s.GetMessageList(conversationId, viewerId)
}

// ConversationVisibleTo 判断用户是否为会话参与方，订阅鉴权用
// 会话不存在视为不可见，不报错
func (s *conversationService) ConversationVisibleTo(conversationId, viewerId string) (bool, error) {
	conv, err := s.repos.Conversation.FindByUuid(conversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return false, nil
		}
		return false, err
	}
	return viewerId == conv.ParentId || viewerId == conv.TeacherId, nil
}

// ==================== 内部辅助 ====================

// clearConversationCache 清理会话相关缓存
// 双方的会话列表 + 该会话的所有消息列表视图
func (s *conversationService) clearConversationCache(conv *model.Conversation) {
	patterns := []string{
		"conversation_list_" + conv.ParentId,
		"conversation_list_" + conv.TeacherId,
		"message_list_" + conv.Uuid + "_*",
	}
	if err := s.cache.DeleteByPatterns(context.Background(), patterns); err != nil {
		zap.L().Error("清除会话缓存失败", zap.String("conversation_id", conv.Uuid), zap.Error(err))
	}
}

// publish 发布变更事件，失败只记日志
func (s *conversationService) publish(evt live.ChangeEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), evt); err != nil {
		zap.L().Error("发布变更事件失败",
			zap.String("kind", evt.Kind),
			zap.String("conversation_id", evt.ConversationId),
			zap.Error(err),
		)
	}
}

// toConversationRespond 会话模型转响应
func toConversationRespond(c *model.Conversation, viewerId string) respond.ConversationRespond {
	lastMessageAt := ""
	if c.LastMessageAt.Valid {
		lastMessageAt = c.LastMessageAt.Time.Format(timeLayout)
	}
	return respond.ConversationRespond{
		ConversationId:    c.Uuid,
		StudentId:         c.StudentId,
		StudentName:       c.StudentName,
		ParentId:          c.ParentId,
		ParentName:        c.ParentName,
		TeacherId:         c.TeacherId,
		TeacherName:       c.TeacherName,
		ClassId:           c.ClassId,
		Status:            c.Status,
		LastMessage:       c.LastMessage,
		LastMessageAt:     lastMessageAt,
		LastMessageReadBy: c.LastMessageReadBy,
		Unread:            ConversationUnread(c, viewerId),
	}
}

// toMessageRespond 消息模型转响应
func toMessageRespond(m *model.Message, c *model.Conversation, viewerId string) respond.MessageRespond {
	return respond.MessageRespond{
		MessageId:      strconv.FormatInt(m.Uuid, 10),
		ConversationId: m.ConversationId,
		SenderId:       m.SenderId,
		SenderRole:     m.SenderRole,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt.Format(timeLayout),
		ReadBy:         m.ReadBy,
		Seen:           MessageSeenBy(m, c, viewerId),
	}
}
