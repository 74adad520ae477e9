// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 订阅相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"zhixiao_school_server/internal/handler"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由（需要认证）
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	// WebSocket 订阅入口
	// 客户端建立连接后发送 subscribe/unsubscribe 指令订阅会话列表或消息流
	rg.GET("/wss", handler.WsSubscribeHandler)
}
