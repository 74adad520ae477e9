package academic

import (
	"time"

	"go.uber.org/zap"

	"zhixiao_school_server/internal/dao/mysql/repository"
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/dto/respond"
	"zhixiao_school_server/internal/model"
	"zhixiao_school_server/pkg/errorx"
	"zhixiao_school_server/pkg/util/random"
)

// academicService 教务业务逻辑实现
// 学期锁定是所有写入操作的共同闸门：锁定后成绩、评语一律拒绝
type academicService struct {
	repos *repository.Repositories
}

// NewAcademicService 构造函数，注入所有依赖
func NewAcademicService(repos *repository.Repositories) *academicService {
	return &academicService{repos: repos}
}

// ==================== 学期管理 ====================

// CreateTerm 创建学期，新学期默认未激活未锁定
func (a *academicService) CreateTerm(req request.CreateTermRequest) (*respond.TermRespond, error) {
	term := model.Term{
		Uuid: "E" + random.GetNowAndLenRandomString(11),
		Name: req.Name,
	}
	if err := a.repos.Term.Create(&term); err != nil {
		zap.L().Error("创建学期失败", zap.String("name", req.Name), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := toTermRespond(&term)
	return &rsp, nil
}

// GetTermList 获取学期列表
func (a *academicService) GetTermList() ([]respond.TermRespond, error) {
	terms, err := a.repos.Term.FindAll()
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	listRsp := make([]respond.TermRespond, 0, len(terms))
	for i := range terms {
		listRsp = append(listRsp, toTermRespond(&terms[i]))
	}
	return listRsp, nil
}

// ActivateTerm 激活学期
// 同一时间只允许一个激活学期，在事务内先全部取消再激活目标
func (a *academicService) ActivateTerm(termId string) error {
	if _, err := a.repos.Term.FindByUuid(termId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "学期不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	err := a.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Term.DeactivateAll(); err != nil {
			return err
		}
		return txRepos.Term.Activate(termId)
	})
	if err != nil {
		zap.L().Error("激活学期失败", zap.String("term_id", termId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	zap.L().Info("学期已激活", zap.String("term_id", termId))
	return nil
}

// SetTermLocked 锁定/解锁学期成绩
func (a *academicService) SetTermLocked(termId string, locked bool) error {
	if _, err := a.repos.Term.FindByUuid(termId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "学期不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if err := a.repos.Term.SetLocked(termId, locked); err != nil {
		zap.L().Error("更新学期锁定状态失败", zap.String("term_id", termId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// checkTermWritable 校验学期存在且未锁定
func (a *academicService) checkTermWritable(termId string) error {
	term, err := a.repos.Term.FindByUuid(termId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "学期不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if term.Locked {
		return errorx.ErrTermLocked
	}
	return nil
}

// ==================== 成绩 / 考勤 / 评语 ====================

// UpsertMark 录入成绩
// 同 (学生, 学期, 科目) 覆盖写；学期锁定后拒绝
func (a *academicService) UpsertMark(teacherId string, req request.UpsertMarkRequest) error {
	if err := a.checkTermWritable(req.TermId); err != nil {
		return err
	}
	if _, err := a.repos.Student.FindByUuid(req.StudentId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "学生不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	mark := model.Mark{
		StudentId: req.StudentId,
		TermId:    req.TermId,
		ClassId:   req.ClassId,
		Subject:   req.Subject,
		Score:     req.Score,
		TeacherId: teacherId,
	}
	if err := a.repos.Academic.UpsertMark(&mark); err != nil {
		zap.L().Error("录入成绩失败",
			zap.String("student_id", req.StudentId),
			zap.String("subject", req.Subject),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}
	return nil
}

// RecordAttendance 录入班级考勤
// 一次写入一个班级某天的全部出勤记录
func (a *academicService) RecordAttendance(req request.RecordAttendanceRequest) error {
	if err := a.checkTermWritable(req.TermId); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return errorx.New(errorx.CodeInvalidParam, "日期格式错误，应为 2006-01-02")
	}

	records := make([]model.Attendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		records = append(records, model.Attendance{
			StudentId: entry.StudentId,
			TermId:    req.TermId,
			Date:      date,
			Present:   entry.Present,
		})
	}
	if err := a.repos.Academic.CreateAttendances(records); err != nil {
		zap.L().Error("录入考勤失败",
			zap.String("class_id", req.ClassId),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}
	return nil
}

// CreateRemark 创建教师评语
func (a *academicService) CreateRemark(teacherId string, req request.CreateRemarkRequest) error {
	if err := a.checkTermWritable(req.TermId); err != nil {
		return err
	}
	remark := model.Remark{
		StudentId: req.StudentId,
		TermId:    req.TermId,
		TeacherId: teacherId,
		Content:   req.Content,
	}
	if err := a.repos.Academic.CreateRemark(&remark); err != nil {
		zap.L().Error("创建评语失败",
			zap.String("student_id", req.StudentId),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}
	return nil
}

// GetReportCard 获取学生学期成绩单
// 聚合成绩、考勤汇总与评语
func (a *academicService) GetReportCard(studentId, termId string) (*respond.ReportCardRespond, error) {
	student, err := a.repos.Student.FindByUuid(studentId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "学生不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	term, err := a.repos.Term.FindByUuid(termId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "学期不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	marks, err := a.repos.Academic.FindMarksByStudentAndTerm(studentId, termId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	attendance, err := a.repos.Academic.FindAttendanceByStudentAndTerm(studentId, termId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	remarks, err := a.repos.Academic.FindRemarksByStudentAndTerm(studentId, termId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.ReportCardRespond{
		StudentId: student.Uuid,
		StudentNo: student.StudentNo,
		TermId:    term.Uuid,
		TermName:  term.Name,
		Marks:     make([]respond.MarkRespond, 0, len(marks)),
		Remarks:   make([]respond.RemarkRespond, 0, len(remarks)),
	}
	for _, mark := range marks {
		rsp.Marks = append(rsp.Marks, respond.MarkRespond{
			Subject:   mark.Subject,
			Score:     mark.Score,
			TeacherId: mark.TeacherId,
		})
	}
	for _, record := range attendance {
		rsp.Attendance.TotalDays++
		if record.Present {
			rsp.Attendance.PresentDays++
		} else {
			rsp.Attendance.AbsentDays++
		}
	}
	for _, remark := range remarks {
		rsp.Remarks = append(rsp.Remarks, respond.RemarkRespond{
			TeacherId: remark.TeacherId,
			Content:   remark.Content,
			CreatedAt: remark.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rsp, nil
}

func toTermRespond(t *model.Term) respond.TermRespond {
	return respond.TermRespond{
		TermId: t.Uuid,
		Name:   t.Name,
		Active: t.Active,
		Locked: t.Locked,
	}
}
