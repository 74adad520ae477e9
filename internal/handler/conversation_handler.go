// Package handler 提供 HTTP 请求处理器
// 本文件处理家校会话相关的 API 请求
// 操作者身份一律取自 JWT 上下文
package handler

import (
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/service"
	"zhixiao_school_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 家校会话请求处理器
type ConversationHandler struct {
	conversationSvc service.ConversationService
}

// NewConversationHandler 创建会话处理器实例
func NewConversationHandler(conversationSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationSvc: conversationSvc}
}

// CreateConversation 创建会话（幂等）
// POST /conversation/create
// 请求体: request.CreateConversationRequest
// 响应: respond.CreateConversationRespond
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req request.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.CreateConversation(c.GetString("user_id"), c.GetString("user_role"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendMessage 发送消息
// POST /conversation/sendMessage
// 请求体: request.SendMessageRequest
// 响应: respond.MessageRespond
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.SendMessage(c.GetString("user_id"), c.GetString("user_role"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkConversationAsRead 标记会话已读
// POST /conversation/markAsRead
// 请求体: request.MarkReadRequest
// 响应: nil
func (h *ConversationHandler) MarkConversationAsRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.conversationSvc.MarkConversationAsRead(c.GetString("user_id"), req.ConversationId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpdateConversationStatus 更新会话状态
// POST /conversation/updateStatus
// 请求体: request.UpdateConversationStatusRequest
// 响应: nil
func (h *ConversationHandler) UpdateConversationStatus(c *gin.Context) {
	var req request.UpdateConversationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.conversationSvc.UpdateConversationStatus(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetConversationList 获取当前用户的会话列表
// GET /conversation/list
// 响应: []respond.ConversationRespond
func (h *ConversationHandler) GetConversationList(c *gin.Context) {
	data, err := h.conversationSvc.GetConversationList(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMessageList 获取会话内全部消息
// GET /conversation/messages?conversationId=xxx
// 响应: []respond.MessageRespond
func (h *ConversationHandler) GetMessageList(c *gin.Context) {
	conversationId := c.Query("conversationId")
	if conversationId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "conversationId 不能为空"))
		return
	}
	data, err := h.conversationSvc.GetMessageList(conversationId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
