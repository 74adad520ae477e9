// Package handler 提供 HTTP 请求处理器
// 本文件处理班级、入学申请与学生档案相关的 API 请求
package handler

import (
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/service"
	"zhixiao_school_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AdmissionHandler 招生学籍请求处理器
type AdmissionHandler struct {
	admissionSvc service.AdmissionService
}

// NewAdmissionHandler 创建招生学籍处理器实例
func NewAdmissionHandler(admissionSvc service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissionSvc: admissionSvc}
}

// CreateClass 创建班级（仅管理员）
// POST /class/create
func (h *AdmissionHandler) CreateClass(c *gin.Context) {
	var req request.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.admissionSvc.CreateClass(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetClassList 获取班级列表
// GET /class/list
func (h *AdmissionHandler) GetClassList(c *gin.Context) {
	data, err := h.admissionSvc.GetClassList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AssignTeacher 指派教师任课（仅管理员）
// POST /class/assignTeacher
func (h *AdmissionHandler) AssignTeacher(c *gin.Context) {
	var req request.AssignTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.admissionSvc.AssignTeacher(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetMyAssignments 获取当前教师的任课关系
// GET /class/myAssignments
func (h *AdmissionHandler) GetMyAssignments(c *gin.Context) {
	data, err := h.admissionSvc.GetTeacherAssignments(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SubmitApplication 提交入学申请（公开接口，无需登录）
// POST /admission/apply
func (h *AdmissionHandler) SubmitApplication(c *gin.Context) {
	var req request.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.admissionSvc.SubmitApplication(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetApplicationList 获取申请列表（仅管理员）
// GET /admission/list?status=pending
func (h *AdmissionHandler) GetApplicationList(c *gin.Context) {
	data, err := h.admissionSvc.GetApplicationList(c.Query("status"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ReviewApplication 审核入学申请（仅管理员）
// POST /admission/review
func (h *AdmissionHandler) ReviewApplication(c *gin.Context) {
	var req request.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.admissionSvc.ReviewApplication(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateStudent 创建学生档案（仅管理员）
// POST /student/create
func (h *AdmissionHandler) CreateStudent(c *gin.Context) {
	var req request.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.admissionSvc.CreateStudent(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetClassStudents 获取班级学生列表
// GET /student/listByClass?classId=xxx
func (h *AdmissionHandler) GetClassStudents(c *gin.Context) {
	classId := c.Query("classId")
	if classId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "classId 不能为空"))
		return
	}
	data, err := h.admissionSvc.GetClassStudents(classId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyStudents 获取当前家长名下的学生列表
// GET /student/mine
func (h *AdmissionHandler) GetMyStudents(c *gin.Context) {
	data, err := h.admissionSvc.GetMyStudents(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// PromoteStudents 整班升级（仅管理员）
// POST /student/promote
func (h *AdmissionHandler) PromoteStudents(c *gin.Context) {
	var req request.PromoteStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.admissionSvc.PromoteStudents(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
