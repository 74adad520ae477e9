package repository

import (
	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
)

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository 创建入学申请 Repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// FindByUuid 按 UUID 查找申请
func (r *applicationRepository) FindByUuid(uuid string) (*model.Application, error) {
	var application model.Application
	if err := r.db.First(&application, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入学申请 uuid=%s", uuid)
	}
	return &application, nil
}

// FindByEmail 按家长邮箱查找申请
// 用于提交前的重复申请检查
func (r *applicationRepository) FindByEmail(email string) (*model.Application, error) {
	var application model.Application
	if err := r.db.First(&application, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入学申请 email=%s", email)
	}
	return &application, nil
}

// FindByStatus 按状态查找申请，空状态返回全部
func (r *applicationRepository) FindByStatus(status string) ([]model.Application, error) {
	var applications []model.Application
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&applications).Error; err != nil {
		return nil, wrapDBError(err, "查询入学申请列表")
	}
	return applications, nil
}

// Create 创建申请
func (r *applicationRepository) Create(application *model.Application) error {
	if err := r.db.Create(application).Error; err != nil {
		return wrapDBError(err, "创建入学申请")
	}
	return nil
}

// UpdateStatus 更新申请状态
func (r *applicationRepository) UpdateStatus(uuid, status string) error {
	if err := r.db.Model(&model.Application{}).Where("uuid = ?", uuid).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新入学申请状态 uuid=%s", uuid)
	}
	return nil
}
