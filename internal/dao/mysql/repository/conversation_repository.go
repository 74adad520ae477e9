package repository

import (
	"time"

	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话 Repository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindByUuid 按 UUID 查找会话
func (r *conversationRepository) FindByUuid(uuid string) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.First(&conversation, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 uuid=%s", uuid)
	}
	return &conversation, nil
}

// FindByParentId 查找家长参与的所有会话
// 按最近消息时间倒序，从未有消息的会话排在最后
func (r *conversationRepository) FindByParentId(parentId string) ([]model.Conversation, error) {
	var conversations []model.Conversation
	if err := r.db.Where("parent_id = ?", parentId).
		Order("last_message_at DESC").Find(&conversations).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询家长会话列表 parentId=%s", parentId)
	}
	return conversations, nil
}

// FindByTeacherId 查找教师参与的所有会话
func (r *conversationRepository) FindByTeacherId(teacherId string) ([]model.Conversation, error) {
	var conversations []model.Conversation
	if err := r.db.Where("teacher_id = ?", teacherId).
		Order("last_message_at DESC").Find(&conversations).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询教师会话列表 teacherId=%s", teacherId)
	}
	return conversations, nil
}

// Create 创建会话
// Uuid 为 (学生, 家长, 教师) 的确定性复合键，带唯一索引
// 并发创建时冲突方不写入，RowsAffected=0，返回 created=false
// 调用方据此实现"存在即返回"的幂等语义，无需先查后写
func (r *conversationRepository) Create(conversation *model.Conversation) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoNothing: true,
	}).Create(conversation)
	if result.Error != nil {
		return false, wrapDBErrorf(result.Error, "创建会话 uuid=%s", conversation.Uuid)
	}
	return result.RowsAffected > 0, nil
}

// UpdateLastMessage 更新会话的最新消息元数据
// 已读集合整体重置为 readBy（通常只含发送者）
func (r *conversationRepository) UpdateLastMessage(uuid, lastMessage string, at time.Time, readBy model.IDSet) error {
	updates := map[string]any{
		"last_message":         lastMessage,
		"last_message_at":      at,
		"last_message_read_by": readBy,
	}
	if err := r.db.Model(&model.Conversation{}).Where("uuid = ?", uuid).
		Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新会话最新消息 uuid=%s", uuid)
	}
	return nil
}

// AddReader 将用户加入会话最新消息的已读集合
// JSON_CONTAINS 守卫保证幂等，重复标记不产生写放大
func (r *conversationRepository) AddReader(uuid, userId string) error {
	err := r.db.Exec(
		`UPDATE conversation
		 SET last_message_read_by = JSON_ARRAY_APPEND(last_message_read_by, '$', ?)
		 WHERE uuid = ? AND NOT JSON_CONTAINS(last_message_read_by, JSON_QUOTE(?))`,
		userId, uuid, userId,
	).Error
	if err != nil {
		return wrapDBErrorf(err, "标记会话已读 uuid=%s userId=%s", uuid, userId)
	}
	return nil
}

// UpdateStatus 更新会话状态
func (r *conversationRepository) UpdateStatus(uuid, status string) error {
	if err := r.db.Model(&model.Conversation{}).Where("uuid = ?", uuid).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新会话状态 uuid=%s", uuid)
	}
	return nil
}
