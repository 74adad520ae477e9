// Package router 提供 HTTP 路由注册
// 本文件定义家校会话相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"zhixiao_school_server/internal/infrastructure/middleware"
	"zhixiao_school_server/pkg/constants"
)

// RegisterConversationRoutes 注册家校会话相关路由（需要认证）
// 会话参与方是家长和教师，管理员可关闭/重开会话
func (rt *Router) RegisterConversationRoutes(rg *gin.RouterGroup) {
	conversationGroup := rg.Group("/conversation",
		middleware.RequireRole(constants.RoleParent, constants.RoleTeacher, constants.RoleAdmin))
	{
		conversationGroup.POST("/create", rt.handlers.Conversation.CreateConversation)            // 创建会话（幂等）
		conversationGroup.POST("/sendMessage", rt.handlers.Conversation.SendMessage)              // 发送消息
		conversationGroup.POST("/markAsRead", rt.handlers.Conversation.MarkConversationAsRead)    // 标记已读
		conversationGroup.POST("/updateStatus", rt.handlers.Conversation.UpdateConversationStatus) // 更新状态
		conversationGroup.GET("/list", rt.handlers.Conversation.GetConversationList)              // 会话列表
		conversationGroup.GET("/messages", rt.handlers.Conversation.GetMessageList)               // 消息列表
	}
}
