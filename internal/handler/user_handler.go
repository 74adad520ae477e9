// Package handler 提供 HTTP 请求处理器
// 本文件处理用户账号相关的 API 请求
package handler

import (
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
// 通过构造函数注入 UserService，遵循依赖倒置原则
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Login 密码登录
// POST /user/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Register 创建账号（仅管理员）
// POST /user/register
// 请求体: request.RegisterRequest
// 响应: respond.RegisterRespond
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshToken 刷新访问令牌
// POST /user/refreshToken
// 请求体: request.RefreshTokenRequest
// 响应: string (新的 Access Token)
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	accessToken, err := h.userSvc.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, accessToken)
}

// GetUserInfo 获取当前登录用户信息
// GET /user/me
// 响应: respond.RegisterRespond
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	data, err := h.userSvc.GetUserInfo(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
