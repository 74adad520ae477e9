// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 订阅连接的建立
package handler

import (
	"net/http"

	"zhixiao_school_server/internal/service/live"
	"zhixiao_school_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WsSubscribeHandler 建立实时订阅连接（升级 HTTP 连接为 WebSocket）
// GET /wss
// 功能:
//   - 将 HTTP 连接升级为 WebSocket 连接
//   - 连接建立后前端通过 subscribe/unsubscribe 指令订阅会话列表或消息流
//   - 身份取自 JWT 认证中间件写入的上下文
func WsSubscribeHandler(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		zap.L().Error("ws连接缺少用户身份")
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "请先登录",
		})
		return
	}
	live.NewClientInit(c, userId)
}
