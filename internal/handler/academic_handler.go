// Package handler 提供 HTTP 请求处理器
// 本文件处理学期、成绩、考勤与评语相关的 API 请求
package handler

import (
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/service"
	"zhixiao_school_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AcademicHandler 教务请求处理器
type AcademicHandler struct {
	academicSvc service.AcademicService
}

// NewAcademicHandler 创建教务处理器实例
func NewAcademicHandler(academicSvc service.AcademicService) *AcademicHandler {
	return &AcademicHandler{academicSvc: academicSvc}
}

// CreateTerm 创建学期（仅管理员）
// POST /term/create
func (h *AcademicHandler) CreateTerm(c *gin.Context) {
	var req request.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.academicSvc.CreateTerm(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetTermList 获取学期列表
// GET /term/list
func (h *AcademicHandler) GetTermList(c *gin.Context) {
	data, err := h.academicSvc.GetTermList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ActivateTerm 激活学期（仅管理员）
// POST /term/activate
func (h *AcademicHandler) ActivateTerm(c *gin.Context) {
	var req request.TermActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.academicSvc.ActivateTerm(req.TermId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SetTermLocked 锁定/解锁学期成绩（仅管理员）
// POST /term/setLocked
func (h *AcademicHandler) SetTermLocked(c *gin.Context) {
	var req request.TermActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.academicSvc.SetTermLocked(req.TermId, req.Locked); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpsertMark 录入成绩（仅教师）
// POST /academic/mark
func (h *AcademicHandler) UpsertMark(c *gin.Context) {
	var req request.UpsertMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.academicSvc.UpsertMark(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RecordAttendance 录入班级考勤（仅教师）
// POST /academic/attendance
func (h *AcademicHandler) RecordAttendance(c *gin.Context) {
	var req request.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.academicSvc.RecordAttendance(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CreateRemark 创建教师评语（仅教师）
// POST /academic/remark
func (h *AcademicHandler) CreateRemark(c *gin.Context) {
	var req request.CreateRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.academicSvc.CreateRemark(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetReportCard 获取学生学期成绩单
// GET /academic/reportCard?studentId=xxx&termId=xxx
func (h *AcademicHandler) GetReportCard(c *gin.Context) {
	studentId := c.Query("studentId")
	termId := c.Query("termId")
	if studentId == "" || termId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "studentId 与 termId 不能为空"))
		return
	}
	data, err := h.academicSvc.GetReportCard(studentId, termId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
