// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"zhixiao_school_server/internal/handler"
	"zhixiao_school_server/internal/infrastructure/middleware"
)

// Router 路由管理器
// 持有 Handler 聚合实例，各模块路由通过其方法注册
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 公开接口直接挂在引擎上，其余路由统一套 JWT 认证
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterPublicRoutes(r)

	// 需要认证的路由组
	authed := r.Group("", middleware.JWTAuth())
	rt.RegisterUserRoutes(authed)         // 用户路由
	rt.RegisterConversationRoutes(authed) // 家校会话路由
	rt.RegisterAdmissionRoutes(authed)    // 招生学籍路由
	rt.RegisterAcademicRoutes(authed)     // 教务路由
	rt.RegisterWebSocketRoutes(authed)    // WebSocket 路由
}

// RegisterPublicRoutes 注册公开路由（无需认证）
func (rt *Router) RegisterPublicRoutes(r *gin.Engine) {
	r.POST("/user/login", rt.handlers.User.Login)                       // 密码登录
	r.POST("/user/refreshToken", rt.handlers.User.RefreshToken)         // 刷新令牌
	r.POST("/admission/apply", rt.handlers.Admission.SubmitApplication) // 提交入学申请
}
