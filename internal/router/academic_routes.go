// Package router 提供 HTTP 路由注册
// 本文件定义学期、成绩、考勤与评语相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"zhixiao_school_server/internal/infrastructure/middleware"
	"zhixiao_school_server/pkg/constants"
)

// RegisterAcademicRoutes 注册教务相关路由（需要认证）
func (rt *Router) RegisterAcademicRoutes(rg *gin.RouterGroup) {
	// 学期管理
	termGroup := rg.Group("/term")
	{
		termGroup.GET("/list", rt.handlers.Academic.GetTermList) // 学期列表
		termGroup.POST("/create",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.Academic.CreateTerm) // 创建学期
		termGroup.POST("/activate",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.Academic.ActivateTerm) // 激活学期
		termGroup.POST("/setLocked",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.Academic.SetTermLocked) // 锁定/解锁成绩
	}

	// 成绩 / 考勤 / 评语
	academicGroup := rg.Group("/academic")
	{
		academicGroup.POST("/mark",
			middleware.RequireRole(constants.RoleTeacher),
			rt.handlers.Academic.UpsertMark) // 录入成绩
		academicGroup.POST("/attendance",
			middleware.RequireRole(constants.RoleTeacher),
			rt.handlers.Academic.RecordAttendance) // 录入考勤
		academicGroup.POST("/remark",
			middleware.RequireRole(constants.RoleTeacher),
			rt.handlers.Academic.CreateRemark) // 创建评语
		academicGroup.GET("/reportCard", rt.handlers.Academic.GetReportCard) // 成绩单
	}
}
