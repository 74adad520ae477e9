package repository

import (
	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 创建学生 Repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// FindByUuid 按 UUID 查找学生
func (r *studentRepository) FindByUuid(uuid string) (*model.Student, error) {
	var student model.Student
	if err := r.db.First(&student, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询学生 uuid=%s", uuid)
	}
	return &student, nil
}

// FindByClassId 查找班级内所有学生
func (r *studentRepository) FindByClassId(classId string) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.Where("class_id = ?", classId).
		Order("student_no ASC").Find(&students).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询班级学生 classId=%s", classId)
	}
	return students, nil
}

// FindByParentId 查找家长名下所有学生
func (r *studentRepository) FindByParentId(parentId string) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.Where("parent_id = ?", parentId).Find(&students).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询家长学生 parentId=%s", parentId)
	}
	return students, nil
}

// Create 创建学生档案
func (r *studentRepository) Create(student *model.Student) error {
	if err := r.db.Create(student).Error; err != nil {
		return wrapDBError(err, "创建学生")
	}
	return nil
}

// CountByStudentNoPrefix 统计学号前缀匹配的学生数
// 用于生成当年的下一个学号序号
func (r *studentRepository) CountByStudentNoPrefix(prefix string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Student{}).
		Where("student_no LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计学号前缀 prefix=%s", prefix)
	}
	return count, nil
}

// MoveClass 将源班级的全部学生迁移到目标班级
func (r *studentRepository) MoveClass(sourceClassId, targetClassId string) error {
	if err := r.db.Model(&model.Student{}).Where("class_id = ?", sourceClassId).
		Update("class_id", targetClassId).Error; err != nil {
		return wrapDBErrorf(err, "迁移班级学生 %s -> %s", sourceClassId, targetClassId)
	}
	return nil
}
