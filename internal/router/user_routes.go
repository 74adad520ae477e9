// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"zhixiao_school_server/internal/infrastructure/middleware"
	"zhixiao_school_server/pkg/constants"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/me", rt.handlers.User.GetUserInfo) // 当前登录用户信息
		// 开通账号仅限管理员
		userGroup.POST("/register",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.User.Register)
	}
}
