// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// UpdateLastOnlineAt 更新上次登录时间
	UpdateLastOnlineAt(uuid string, at time.Time) error
}

// ConversationRepository 会话数据访问接口
// 管理家长与教师之间围绕学生的聊天会话
type ConversationRepository interface {
	// FindByUuid 根据会话 UUID 查找会话
	FindByUuid(uuid string) (*model.Conversation, error)
	// FindByParentId 查找家长参与的所有会话，按最近消息时间倒序
	FindByParentId(parentId string) ([]model.Conversation, error)
	// FindByTeacherId 查找教师参与的所有会话，按最近消息时间倒序
	FindByTeacherId(teacherId string) ([]model.Conversation, error)
	// Create 创建会话
	// Uuid 为确定性复合键，冲突时不写入并返回 created=false
	Create(conversation *model.Conversation) (created bool, err error)
	// UpdateLastMessage 更新会话的最新消息元数据并重置已读集合
	UpdateLastMessage(uuid, lastMessage string, at time.Time, readBy model.IDSet) error
	// AddReader 将用户加入会话的最新消息已读集合（幂等）
	AddReader(uuid, userId string) error
	// UpdateStatus 更新会话状态（open/closed），普通字段写入
	UpdateStatus(uuid, status string) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// FindByConversationId 按会话查找全部消息，按创建时间升序
	FindByConversationId(conversationId string) ([]model.Message, error)
	// Create 创建消息
	Create(message *model.Message) error
	// AddReaderToAll 将用户加入会话内所有未读消息的已读集合
	// 以单条守卫 SQL 完成，不做逐条回写（幂等）
	AddReaderToAll(conversationId, userId string) error
}

// ClassRepository 班级与任课关系数据访问接口
type ClassRepository interface {
	// FindByUuid 根据 UUID 查找班级
	FindByUuid(uuid string) (*model.ClassInfo, error)
	// FindAll 查找所有班级
	FindAll() ([]model.ClassInfo, error)
	// Create 创建班级
	Create(class *model.ClassInfo) error
	// FindAssignmentsByTeacherId 查找教师的任课关系
	FindAssignmentsByTeacherId(teacherId string) ([]model.TeacherAssignment, error)
	// FindAssignmentsByClassId 查找班级的任课关系
	FindAssignmentsByClassId(classId string) ([]model.TeacherAssignment, error)
	// CreateAssignment 创建任课关系
	CreateAssignment(assignment *model.TeacherAssignment) error
}

// StudentRepository 学生档案数据访问接口
type StudentRepository interface {
	// FindByUuid 根据 UUID 查找学生
	FindByUuid(uuid string) (*model.Student, error)
	// FindByClassId 查找班级内的所有学生
	FindByClassId(classId string) ([]model.Student, error)
	// FindByParentId 查找家长名下的所有学生
	FindByParentId(parentId string) ([]model.Student, error)
	// Create 创建学生档案
	Create(student *model.Student) error
	// CountByStudentNoPrefix 统计学号前缀匹配的学生数（用于生成序号）
	CountByStudentNoPrefix(prefix string) (int64, error)
	// MoveClass 将源班级的全部学生迁移到目标班级（升级）
	MoveClass(sourceClassId, targetClassId string) error
}

// ApplicationRepository 入学申请数据访问接口
type ApplicationRepository interface {
	// FindByUuid 根据 UUID 查找申请
	FindByUuid(uuid string) (*model.Application, error)
	// FindByEmail 根据家长邮箱查找申请（重复申请检查）
	FindByEmail(email string) (*model.Application, error)
	// FindByStatus 按状态查找申请，空状态返回全部
	FindByStatus(status string) ([]model.Application, error)
	// Create 创建申请
	Create(application *model.Application) error
	// UpdateStatus 更新申请状态
	UpdateStatus(uuid, status string) error
}

// TermRepository 学期数据访问接口
type TermRepository interface {
	// FindByUuid 根据 UUID 查找学期
	FindByUuid(uuid string) (*model.Term, error)
	// FindActive 查找当前激活学期
	FindActive() (*model.Term, error)
	// FindAll 查找所有学期
	FindAll() ([]model.Term, error)
	// Create 创建学期
	Create(term *model.Term) error
	// DeactivateAll 取消所有学期的激活状态
	DeactivateAll() error
	// Activate 激活指定学期
	Activate(uuid string) error
	// SetLocked 锁定/解锁学期成绩
	SetLocked(uuid string, locked bool) error
}

// AcademicRepository 成绩、考勤与评语数据访问接口
type AcademicRepository interface {
	// UpsertMark 录入成绩，同 (学生, 学期, 科目) 覆盖写
	UpsertMark(mark *model.Mark) error
	// FindMarksByStudentAndTerm 查找学生某学期的全部成绩
	FindMarksByStudentAndTerm(studentId, termId string) ([]model.Mark, error)
	// FindMarksByClassAndTerm 查找班级某学期的全部成绩
	FindMarksByClassAndTerm(classId, termId string) ([]model.Mark, error)
	// CreateAttendances 批量写入考勤记录
	CreateAttendances(records []model.Attendance) error
	// FindAttendanceByStudentAndTerm 查找学生某学期的考勤记录
	FindAttendanceByStudentAndTerm(studentId, termId string) ([]model.Attendance, error)
	// CreateRemark 创建教师评语
	CreateRemark(remark *model.Remark) error
	// FindRemarksByStudentAndTerm 查找学生某学期的评语
	FindRemarksByStudentAndTerm(studentId, termId string) ([]model.Remark, error)
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB               // GORM 数据库实例
	User         UserRepository         // 用户 Repository
	Conversation ConversationRepository // 会话 Repository
	Message      MessageRepository      // 消息 Repository
	Class        ClassRepository        // 班级 Repository
	Student      StudentRepository      // 学生 Repository
	Application  ApplicationRepository  // 入学申请 Repository
	Term         TermRepository         // 学期 Repository
	Academic     AcademicRepository     // 成绩考勤 Repository
}

// NewRepositories 创建所有 Repository 实例
// db: GORM 数据库实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Conversation: NewConversationRepository(db),
		Message:      NewMessageRepository(db),
		Class:        NewClassRepository(db),
		Student:      NewStudentRepository(db),
		Application:  NewApplicationRepository(db),
		Term:         NewTermRepository(db),
		Academic:     NewAcademicRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// 会话创建与消息发送依赖此边界实现"消息 + 会话元数据"的原子批量写
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	// 无数据库实例时直接执行（内存实现不具备事务语义）
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
