// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"zhixiao_school_server/internal/dao/mysql/repository"
	myredis "zhixiao_school_server/internal/dao/redis"
	"zhixiao_school_server/internal/service/academic"
	"zhixiao_school_server/internal/service/admission"
	"zhixiao_school_server/internal/service/conversation"
	"zhixiao_school_server/internal/service/live"
	"zhixiao_school_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	User         UserService          // 用户 Service
	Conversation ConversationService  // 家校会话 Service
	Admission    AdmissionService     // 招生学籍 Service
	Academic     AcademicService      // 教务 Service
	Snapshots    live.SnapshotProvider // 订阅中心的快照提供方
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合实例、缓存服务与事件总线
//  2. 创建各个 Service 实例，注入依赖
//  3. 返回 Services 聚合
//
// repos: Repository 层聚合实例
// cache: 异步缓存服务
// bus:   变更事件总线（channel 或 kafka 实现）
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, bus live.EventBus) *Services {
	userSvc := user.NewUserService(repos, cache)
	conversationSvc := conversation.NewConversationService(repos, cache, bus)
	admissionSvc := admission.NewAdmissionService(repos)
	academicSvc := academic.NewAcademicService(repos)

	return &Services{
		User:         userSvc,
		Conversation: conversationSvc,
		Admission:    admissionSvc,
		Academic:     academicSvc,
		Snapshots:    conversationSvc,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Conversation.SendMessage() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository / Redis / 事件总线初始化之后
func InitServices(repos *repository.Repositories, cache myredis.AsyncCacheService, bus live.EventBus) {
	Svc = NewServices(repos, cache, bus)
}
