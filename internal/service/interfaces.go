// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理账号开通、登录、令牌刷新等功能
type UserService interface {
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// Register 创建账号（管理员为教师/家长开通）
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// RefreshToken 用刷新令牌换取新的访问令牌
	RefreshToken(refreshToken string) (string, error)
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.RegisterRespond, error)
}

// ConversationService 家校会话业务接口
// 处理会话创建、消息收发、已读回写与状态管理
type ConversationService interface {
	// CreateConversation 创建会话（幂等），新会话连同首条消息一并落库
	// 相同 (学生, 家长, 教师) 组合重复创建时返回已有会话，不追加消息
	CreateConversation(actorId, actorRole string, req request.CreateConversationRequest) (*respond.CreateConversationRespond, error)
	// SendMessage 发送消息
	// 消息写入与会话元数据更新在同一事务内完成
	SendMessage(actorId, actorRole string, req request.SendMessageRequest) (*respond.MessageRespond, error)
	// MarkConversationAsRead 标记会话已读（尽力而为，幂等）
	MarkConversationAsRead(actorId, conversationId string) error
	// UpdateConversationStatus 更新会话状态（open/closed）
	UpdateConversationStatus(req request.UpdateConversationStatusRequest) error
	// GetConversationList 获取用户参与的会话列表，按最近消息倒序
	GetConversationList(userId string) ([]respond.ConversationRespond, error)
	// GetMessageList 获取会话内全部消息，按时间升序
	GetMessageList(conversationId, viewerId string) ([]respond.MessageRespond, error)
}

// AdmissionService 招生与学籍业务接口
// 处理班级管理、入学申请与学生档案
type AdmissionService interface {
	// CreateClass 创建班级
	CreateClass(req request.CreateClassRequest) (*respond.ClassRespond, error)
	// GetClassList 获取班级列表
	GetClassList() ([]respond.ClassRespond, error)
	// AssignTeacher 指派教师任课
	AssignTeacher(req request.AssignTeacherRequest) error
	// GetTeacherAssignments 获取教师的任课关系
	GetTeacherAssignments(teacherId string) ([]respond.TeacherAssignmentRespond, error)
	// SubmitApplication 提交入学申请（公开接口）
	SubmitApplication(req request.SubmitApplicationRequest) (*respond.ApplicationRespond, error)
	// GetApplicationList 按状态获取申请列表
	GetApplicationList(status string) ([]respond.ApplicationRespond, error)
	// ReviewApplication 审核申请，通过时开通家长账号并建立学生档案
	ReviewApplication(req request.ReviewApplicationRequest) (*respond.ReviewApplicationRespond, error)
	// CreateStudent 创建学生档案，学号自动生成
	CreateStudent(req request.CreateStudentRequest) (*respond.StudentRespond, error)
	// GetClassStudents 获取班级学生列表
	GetClassStudents(classId string) ([]respond.StudentRespond, error)
	// GetMyStudents 获取家长名下学生列表
	GetMyStudents(parentId string) ([]respond.StudentRespond, error)
	// PromoteStudents 整班升级
	PromoteStudents(req request.PromoteStudentsRequest) error
}

// AcademicService 教务业务接口
// 处理学期、成绩、考勤与评语
type AcademicService interface {
	// CreateTerm 创建学期
	CreateTerm(req request.CreateTermRequest) (*respond.TermRespond, error)
	// GetTermList 获取学期列表
	GetTermList() ([]respond.TermRespond, error)
	// ActivateTerm 激活学期（同时取消其他学期的激活状态）
	ActivateTerm(termId string) error
	// SetTermLocked 锁定/解锁学期成绩
	SetTermLocked(termId string, locked bool) error
	// UpsertMark 录入成绩，学期锁定后拒绝写入
	UpsertMark(teacherId string, req request.UpsertMarkRequest) error
	// RecordAttendance 录入班级考勤
	RecordAttendance(req request.RecordAttendanceRequest) error
	// CreateRemark 创建教师评语，学期锁定后拒绝写入
	CreateRemark(teacherId string, req request.CreateRemarkRequest) error
	// GetReportCard 获取学生学期成绩单
	GetReportCard(studentId, termId string) (*respond.ReportCardRespond, error)
}
