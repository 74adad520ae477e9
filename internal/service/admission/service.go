package admission

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"zhixiao_school_server/internal/dao/mysql/repository"
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/dto/respond"
	"zhixiao_school_server/internal/model"
	"zhixiao_school_server/pkg/constants"
	"zhixiao_school_server/pkg/errorx"
	"zhixiao_school_server/pkg/util/random"
)

// admissionService 招生与学籍业务逻辑实现
type admissionService struct {
	repos *repository.Repositories
}

// NewAdmissionService 构造函数，注入所有依赖
func NewAdmissionService(repos *repository.Repositories) *admissionService {
	return &admissionService{repos: repos}
}

// ==================== 班级管理 ====================

// CreateClass 创建班级
func (a *admissionService) CreateClass(req request.CreateClassRequest) (*respond.ClassRespond, error) {
	class := model.ClassInfo{
		Uuid: "K" + random.GetNowAndLenRandomString(11),
		Name: req.Name,
	}
	if err := a.repos.Class.Create(&class); err != nil {
		zap.L().Error("创建班级失败", zap.String("name", req.Name), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.ClassRespond{ClassId: class.Uuid, Name: class.Name}, nil
}

// GetClassList 获取班级列表
func (a *admissionService) GetClassList() ([]respond.ClassRespond, error) {
	classes, err := a.repos.Class.FindAll()
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	listRsp := make([]respond.ClassRespond, 0, len(classes))
	for _, class := range classes {
		listRsp = append(listRsp, respond.ClassRespond{ClassId: class.Uuid, Name: class.Name})
	}
	return listRsp, nil
}

// AssignTeacher 指派教师任课
func (a *admissionService) AssignTeacher(req request.AssignTeacherRequest) error {
	teacher, err := a.repos.User.FindByUuid(req.TeacherId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "教师不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if teacher.Role != constants.RoleTeacher {
		return errorx.New(errorx.CodeInvalidParam, "该用户不是教师")
	}
	if _, err := a.repos.Class.FindByUuid(req.ClassId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "班级不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	assignment := model.TeacherAssignment{
		TeacherId: req.TeacherId,
		ClassId:   req.ClassId,
		Subject:   req.Subject,
	}
	if err := a.repos.Class.CreateAssignment(&assignment); err != nil {
		zap.L().Error("创建任课关系失败",
			zap.String("teacher_id", req.TeacherId),
			zap.String("class_id", req.ClassId),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}
	return nil
}

// GetTeacherAssignments 获取教师的任课关系
func (a *admissionService) GetTeacherAssignments(teacherId string) ([]respond.TeacherAssignmentRespond, error) {
	assignments, err := a.repos.Class.FindAssignmentsByTeacherId(teacherId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	listRsp := make([]respond.TeacherAssignmentRespond, 0, len(assignments))
	for _, assignment := range assignments {
		listRsp = append(listRsp, respond.TeacherAssignmentRespond{
			TeacherId: assignment.TeacherId,
			ClassId:   assignment.ClassId,
			Subject:   assignment.Subject,
		})
	}
	return listRsp, nil
}

// ==================== 入学申请 ====================

// SubmitApplication 提交入学申请
// 同一家长邮箱已有待处理或已录取的申请时拒绝重复提交
func (a *admissionService) SubmitApplication(req request.SubmitApplicationRequest) (*respond.ApplicationRespond, error) {
	existing, err := a.repos.Application.FindByEmail(req.Email)
	if err != nil && errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if existing != nil && existing.Status != constants.ApplicationRejected {
		zap.L().Info("重复的入学申请", zap.String("email", req.Email))
		return nil, errorx.New(errorx.CodeDuplicateApplication, "该邮箱已提交过申请，请勿重复提交")
	}

	application := model.Application{
		Uuid:         "A" + random.GetNowAndLenRandomString(11),
		StudentName:  req.StudentName,
		ParentName:   req.ParentName,
		Email:        req.Email,
		Telephone:    req.Telephone,
		ApplyClassId: req.ApplyClassId,
		Status:       constants.ApplicationPending,
	}
	application.CreatedAt = time.Now()
	if err := a.repos.Application.Create(&application); err != nil {
		zap.L().Error("创建入学申请失败", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("入学申请提交成功",
		zap.String("application_id", application.Uuid),
		zap.String("email", req.Email),
	)
	return toApplicationRespond(&application), nil
}

// GetApplicationList 按状态获取申请列表
func (a *admissionService) GetApplicationList(status string) ([]respond.ApplicationRespond, error) {
	applications, err := a.repos.Application.FindByStatus(status)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	listRsp := make([]respond.ApplicationRespond, 0, len(applications))
	for i := range applications {
		listRsp = append(listRsp, *toApplicationRespond(&applications[i]))
	}
	return listRsp, nil
}

// ReviewApplication 审核入学申请
// 通过时在同一事务内完成三件事：更新申请状态、开通家长账号、建立学生档案
func (a *admissionService) ReviewApplication(req request.ReviewApplicationRequest) (*respond.ReviewApplicationRespond, error) {
	application, err := a.repos.Application.FindByUuid(req.ApplicationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "申请不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if application.Status != constants.ApplicationPending {
		return nil, errorx.New(errorx.CodeInvalidParam, "该申请已处理过")
	}

	if req.Decision == constants.ApplicationRejected {
		if err := a.repos.Application.UpdateStatus(application.Uuid, constants.ApplicationRejected); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		return &respond.ReviewApplicationRespond{
			ApplicationId: application.Uuid,
			Status:        constants.ApplicationRejected,
		}, nil
	}

	classId := req.ClassId
	if classId == "" {
		classId = application.ApplyClassId
	}
	initialPassword := random.GetNowAndLenRandomString(12)
	parent := model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		Name:        application.ParentName,
		Email:       application.Email,
		Telephone:   application.Telephone,
		Role:        constants.RoleParent,
		RawPassword: initialPassword,
	}
	parent.CreatedAt = time.Now()
	var student model.Student

	err = a.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Application.UpdateStatus(application.Uuid, constants.ApplicationApproved); err != nil {
			return err
		}
		if err := txRepos.User.Create(&parent); err != nil {
			return err
		}
		studentNo, err := nextStudentNo(txRepos)
		if err != nil {
			return err
		}
		student = model.Student{
			Uuid:      "S" + random.GetNowAndLenRandomString(11),
			StudentNo: studentNo,
			Name:      application.StudentName,
			ParentId:  parent.Uuid,
			ClassId:   classId,
		}
		return txRepos.Student.Create(&student)
	})
	if err != nil {
		zap.L().Error("审核通过处理失败",
			zap.String("application_id", application.Uuid),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("入学申请已录取",
		zap.String("application_id", application.Uuid),
		zap.String("parent_id", parent.Uuid),
		zap.String("student_id", student.Uuid),
	)
	return &respond.ReviewApplicationRespond{
		ApplicationId:   application.Uuid,
		Status:          constants.ApplicationApproved,
		ParentId:        parent.Uuid,
		ParentEmail:     parent.Email,
		InitialPassword: initialPassword,
		StudentId:       student.Uuid,
		StudentNo:       student.StudentNo,
	}, nil
}

// ==================== 学生档案 ====================

// nextStudentNo 生成下一个学号
// 格式 STU-<年份>-<四位序号>，序号按当年已有学生数递增
func nextStudentNo(repos *repository.Repositories) (string, error) {
	prefix := fmt.Sprintf("STU-%d-", time.Now().Year())
	count, err := repos.Student.CountByStudentNoPrefix(prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// CreateStudent 创建学生档案
func (a *admissionService) CreateStudent(req request.CreateStudentRequest) (*respond.StudentRespond, error) {
	parent, err := a.repos.User.FindByUuid(req.ParentId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "家长不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if parent.Role != constants.RoleParent {
		return nil, errorx.New(errorx.CodeInvalidParam, "该用户不是家长")
	}

	var student model.Student
	err = a.repos.Transaction(func(txRepos *repository.Repositories) error {
		studentNo, err := nextStudentNo(txRepos)
		if err != nil {
			return err
		}
		student = model.Student{
			Uuid:      "S" + random.GetNowAndLenRandomString(11),
			StudentNo: studentNo,
			Name:      req.Name,
			ParentId:  req.ParentId,
			ClassId:   req.ClassId,
		}
		return txRepos.Student.Create(&student)
	})
	if err != nil {
		zap.L().Error("创建学生失败", zap.String("name", req.Name), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := toStudentRespond(&student)
	return &rsp, nil
}

// GetClassStudents 获取班级学生列表
func (a *admissionService) GetClassStudents(classId string) ([]respond.StudentRespond, error) {
	students, err := a.repos.Student.FindByClassId(classId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return toStudentRespondList(students), nil
}

// GetMyStudents 获取家长名下学生列表
func (a *admissionService) GetMyStudents(parentId string) ([]respond.StudentRespond, error) {
	students, err := a.repos.Student.FindByParentId(parentId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return toStudentRespondList(students), nil
}

// PromoteStudents 整班升级
func (a *admissionService) PromoteStudents(req request.PromoteStudentsRequest) error {
	if req.SourceClassId == req.TargetClassId {
		return errorx.New(errorx.CodeInvalidParam, "源班级与目标班级相同")
	}
	if _, err := a.repos.Class.FindByUuid(req.TargetClassId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "目标班级不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if err := a.repos.Student.MoveClass(req.SourceClassId, req.TargetClassId); err != nil {
		zap.L().Error("整班升级失败",
			zap.String("source", req.SourceClassId),
			zap.String("target", req.TargetClassId),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}
	zap.L().Info("整班升级完成",
		zap.String("source", req.SourceClassId),
		zap.String("target", req.TargetClassId),
	)
	return nil
}

// ==================== 内部辅助 ====================

func toApplicationRespond(a *model.Application) *respond.ApplicationRespond {
	return &respond.ApplicationRespond{
		ApplicationId: a.Uuid,
		StudentName:   a.StudentName,
		ParentName:    a.ParentName,
		Email:         a.Email,
		Telephone:     a.Telephone,
		ApplyClassId:  a.ApplyClassId,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toStudentRespond(s *model.Student) respond.StudentRespond {
	return respond.StudentRespond{
		StudentId: s.Uuid,
		StudentNo: s.StudentNo,
		Name:      s.Name,
		ParentId:  s.ParentId,
		ClassId:   s.ClassId,
	}
}

func toStudentRespondList(students []model.Student) []respond.StudentRespond {
	listRsp := make([]respond.StudentRespond, 0, len(students))
	for i := range students {
		listRsp = append(listRsp, toStudentRespond(&students[i]))
	}
	return listRsp
}
