// Package model 定义数据库实体模型
// 本文件定义会话模型：一个家长与一个教师围绕一个学生的持久聊天线程
package model

import (
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"fmt"

	"gorm.io/gorm"
)

// Conversation 会话模型
// 对应数据库 conversation 表
// 同一 (学生, 家长, 教师) 三元组至多存在一个会话，
// 由确定性 Uuid + 唯一索引在数据库层面保证，而非应用层先查后写
type Conversation struct {
	gorm.Model

	// Uuid 会话唯一标识
	// 由参与者三元组确定性派生（见 ConversationUuid），并发首次发起也只会落下一行
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:会话uuid"`

	// StudentId 学生 UUID，创建后不可变
	StudentId string `gorm:"column:student_id;index;type:char(20);not null;comment:学生uuid"`

	// ParentId 家长 UUID，创建后不可变
	ParentId string `gorm:"column:parent_id;index;type:char(20);not null;comment:家长uuid"`

	// TeacherId 教师 UUID，创建后不可变
	TeacherId string `gorm:"column:teacher_id;index;type:char(20);not null;comment:教师uuid"`

	// ClassId 班级 UUID，创建后不可变
	ClassId string `gorm:"column:class_id;type:char(20);not null;comment:班级uuid"`

	// ParentName 家长姓名
	// 冗余存储，创建时快照，之后资料修改不回填（列表展示换取的一致性代价）
	ParentName string `gorm:"column:parent_name;type:varchar(50);not null;comment:家长姓名"`

	// StudentName 学生姓名，冗余存储，同上不回填
	StudentName string `gorm:"column:student_name;type:varchar(50);not null;comment:学生姓名"`

	// TeacherName 教师姓名，冗余存储，同上不回填
	TeacherName string `gorm:"column:teacher_name;type:varchar(50);not null;comment:教师姓名"`

	// Status 会话状态
	// "open" 或 "closed"，普通字段写入，无状态机约束
	Status string `gorm:"column:status;type:varchar(10);not null;default:open;comment:状态 open/closed"`

	// LastMessage 最新消息内容
	// 用于在会话列表中显示最后一条消息摘要
	LastMessage string `gorm:"column:last_message;type:TEXT;comment:最新的消息"`

	// LastMessageAt 最后消息时间
	// 用于会话列表排序（最近聊天的排在前面）
	LastMessageAt sql.NullTime `gorm:"column:last_message_at;index;type:datetime;comment:最近消息时间"`

	// LastMessageReadBy 已读最新消息的用户 ID 集合
	// 每条新消息都会重置为仅含发送者
	LastMessageReadBy IDSet `gorm:"column:last_message_read_by;type:json;comment:最新消息已读用户集合"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversation"
}

// ConversationUuid 由参与者三元组派生确定性会话 Uuid
// 格式: C + sha1(student|parent|teacher) 前 19 位十六进制，共 20 字符
// 相同三元组永远得到相同的 Uuid，配合唯一索引天然去重
func ConversationUuid(studentId, parentId, teacherId string) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%s", studentId, parentId, teacherId)))
	return "C" + hex.EncodeToString(sum[:])[:19]
}
