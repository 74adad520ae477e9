package repository

import (
	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
)

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository 创建班级 Repository
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

// FindByUuid 按 UUID 查找班级
func (r *classRepository) FindByUuid(uuid string) (*model.ClassInfo, error) {
	var class model.ClassInfo
	if err := r.db.First(&class, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询班级 uuid=%s", uuid)
	}
	return &class, nil
}

// FindAll 查找所有班级
func (r *classRepository) FindAll() ([]model.ClassInfo, error) {
	var classes []model.ClassInfo
	if err := r.db.Order("name ASC").Find(&classes).Error; err != nil {
		return nil, wrapDBError(err, "查询班级列表")
	}
	return classes, nil
}

// Create 创建班级
func (r *classRepository) Create(class *model.ClassInfo) error {
	if err := r.db.Create(class).Error; err != nil {
		return wrapDBError(err, "创建班级")
	}
	return nil
}

// FindAssignmentsByTeacherId 查找教师的任课关系
func (r *classRepository) FindAssignmentsByTeacherId(teacherId string) ([]model.TeacherAssignment, error) {
	var assignments []model.TeacherAssignment
	if err := r.db.Where("teacher_id = ?", teacherId).Find(&assignments).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询教师任课 teacherId=%s", teacherId)
	}
	return assignments, nil
}

// FindAssignmentsByClassId 查找班级的任课关系
func (r *classRepository) FindAssignmentsByClassId(classId string) ([]model.TeacherAssignment, error) {
	var assignments []model.TeacherAssignment
	if err := r.db.Where("class_id = ?", classId).Find(&assignments).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询班级任课 classId=%s", classId)
	}
	return assignments, nil
}

// CreateAssignment 创建任课关系
func (r *classRepository) CreateAssignment(assignment *model.TeacherAssignment) error {
	if err := r.db.Create(assignment).Error; err != nil {
		return wrapDBError(err, "创建任课关系")
	}
	return nil
}
