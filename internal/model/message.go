// Package model 定义数据库实体模型
// 本文件定义消息模型，用于存储会话中的聊天消息
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
// 消息归属于一个会话，写入后除 ReadBy 只增外不可变，也不会被删除
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID，同会话内随时间单调递增
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// ConversationId 所属会话 Uuid
	// 消息由会话独占，不存在跨会话引用
	ConversationId string `gorm:"column:conversation_id;index;type:char(20);not null;comment:会话uuid"`

	// SenderId 发送者 UUID
	SenderId string `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者uuid"`

	// SenderRole 发送者角色
	// "parent" 或 "teacher"
	SenderRole string `gorm:"column:sender_role;type:varchar(10);not null;comment:发送者角色 parent/teacher"`

	// Content 消息文本内容，去除首尾空白后非空
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// ReadBy 已读该消息的用户 ID 集合
	// 只增不减，发送者在创建时即视为已读
	ReadBy IDSet `gorm:"column:read_by;type:json;comment:已读用户集合"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
