// Package router 提供 HTTP 路由注册
// 本文件定义班级、入学申请与学生档案相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"zhixiao_school_server/internal/infrastructure/middleware"
	"zhixiao_school_server/pkg/constants"
)

// RegisterAdmissionRoutes 注册招生学籍相关路由（需要认证）
func (rt *Router) RegisterAdmissionRoutes(rg *gin.RouterGroup) {
	// 班级管理
	classGroup := rg.Group("/class")
	{
		classGroup.GET("/list", rt.handlers.Admission.GetClassList) // 班级列表
		classGroup.GET("/myAssignments",
			middleware.RequireRole(constants.RoleTeacher),
			rt.handlers.Admission.GetMyAssignments) // 教师任课关系
		classGroup.POST("/create",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.Admission.CreateClass) // 创建班级
		classGroup.POST("/assignTeacher",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.Admission.AssignTeacher) // 指派任课
	}

	// 入学申请（提交为公开接口，在 RegisterPublicRoutes 中注册）
	admissionGroup := rg.Group("/admission", middleware.RequireRole(constants.RoleAdmin))
	{
		admissionGroup.GET("/list", rt.handlers.Admission.GetApplicationList)   // 申请列表
		admissionGroup.POST("/review", rt.handlers.Admission.ReviewApplication) // 审核申请
	}

	// 学生档案
	studentGroup := rg.Group("/student")
	{
		studentGroup.GET("/mine",
			middleware.RequireRole(constants.RoleParent),
			rt.handlers.Admission.GetMyStudents) // 家长名下学生
		studentGroup.GET("/listByClass",
			middleware.RequireRole(constants.RoleTeacher, constants.RoleAdmin),
			rt.handlers.Admission.GetClassStudents) // 班级学生列表
		studentGroup.POST("/create",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.Admission.CreateStudent) // 创建学生档案
		studentGroup.POST("/promote",
			middleware.RequireRole(constants.RoleAdmin),
			rt.handlers.Admission.PromoteStudents) // 整班升级
	}
}
