package repository

import (
	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type academicRepository struct {
	db *gorm.DB
}

// NewAcademicRepository 创建成绩考勤 Repository
func NewAcademicRepository(db *gorm.DB) AcademicRepository {
	return &academicRepository{db: db}
}

// UpsertMark 录入成绩
// 同 (学生, 学期, 科目) 已有记录时覆盖分数与教师
func (r *academicRepository) UpsertMark(mark *model.Mark) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "term_id"}, {Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "teacher_id", "class_id", "updated_at"}),
	}).Create(mark).Error
	if err != nil {
		return wrapDBErrorf(err, "录入成绩 studentId=%s subject=%s", mark.StudentId, mark.Subject)
	}
	return nil
}

// FindMarksByStudentAndTerm 查找学生某学期的全部成绩
func (r *academicRepository) FindMarksByStudentAndTerm(studentId, termId string) ([]model.Mark, error) {
	var marks []model.Mark
	if err := r.db.Where("student_id = ? AND term_id = ?", studentId, termId).
		Order("subject ASC").Find(&marks).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询学生成绩 studentId=%s termId=%s", studentId, termId)
	}
	return marks, nil
}

// FindMarksByClassAndTerm 查找班级某学期的全部成绩
func (r *academicRepository) FindMarksByClassAndTerm(classId, termId string) ([]model.Mark, error) {
	var marks []model.Mark
	if err := r.db.Where("class_id = ? AND term_id = ?", classId, termId).
		Find(&marks).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询班级成绩 classId=%s termId=%s", classId, termId)
	}
	return marks, nil
}

// CreateAttendances 批量写入考勤记录
func (r *academicRepository) CreateAttendances(records []model.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.Create(&records).Error; err != nil {
		return wrapDBError(err, "批量写入考勤")
	}
	return nil
}

// FindAttendanceByStudentAndTerm 查找学生某学期的考勤记录
func (r *academicRepository) FindAttendanceByStudentAndTerm(studentId, termId string) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := r.db.Where("student_id = ? AND term_id = ?", studentId, termId).
		Order("date ASC").Find(&records).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询学生考勤 studentId=%s termId=%s", studentId, termId)
	}
	return records, nil
}

// CreateRemark 创建教师评语
func (r *academicRepository) CreateRemark(remark *model.Remark) error {
	if err := r.db.Create(remark).Error; err != nil {
		return wrapDBError(err, "创建评语")
	}
	return nil
}

// FindRemarksByStudentAndTerm 查找学生某学期的评语
func (r *academicRepository) FindRemarksByStudentAndTerm(studentId, termId string) ([]model.Remark, error) {
	var remarks []model.Remark
	if err := r.db.Where("student_id = ? AND term_id = ?", studentId, termId).
		Order("created_at DESC").Find(&remarks).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询学生评语 studentId=%s termId=%s", studentId, termId)
	}
	return remarks, nil
}
