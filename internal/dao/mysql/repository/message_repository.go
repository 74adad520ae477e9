package repository

import (
	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// FindByConversationId 按会话查找全部消息
// 创建时间升序，同一时刻按雪花 ID 升序保证全序
func (r *messageRepository) FindByConversationId(conversationId string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("conversation_id = ?", conversationId).
		Order("created_at ASC, uuid ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话消息 conversationId=%s", conversationId)
	}
	return messages, nil
}

// Create 创建消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// AddReaderToAll 将用户加入会话内所有未读消息的已读集合
// 单条守卫 UPDATE 完成整个会话的已读回写，代替逐条遍历
// JSON_CONTAINS 守卫保证重复调用幂等
func (r *messageRepository) AddReaderToAll(conversationId, userId string) error {
	err := r.db.Exec(
		`UPDATE message
		 SET read_by = JSON_ARRAY_APPEND(read_by, '$', ?)
		 WHERE conversation_id = ? AND NOT JSON_CONTAINS(read_by, JSON_QUOTE(?))`,
		userId, conversationId, userId,
	).Error
	if err != nil {
		return wrapDBErrorf(err, "标记消息已读 conversationId=%s userId=%s", conversationId, userId)
	}
	return nil
}
