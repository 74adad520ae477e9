package repository

import (
	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
)

type termRepository struct {
	db *gorm.DB
}

// NewTermRepository 创建学期 Repository
func NewTermRepository(db *gorm.DB) TermRepository {
	return &termRepository{db: db}
}

// FindByUuid 按 UUID 查找学期
func (r *termRepository) FindByUuid(uuid string) (*model.Term, error) {
	var term model.Term
	if err := r.db.First(&term, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询学期 uuid=%s", uuid)
	}
	return &term, nil
}

// FindActive 查找当前激活学期
func (r *termRepository) FindActive() (*model.Term, error) {
	var term model.Term
	if err := r.db.First(&term, "active = ?", true).Error; err != nil {
		return nil, wrapDBError(err, "查询激活学期")
	}
	return &term, nil
}

// FindAll 查找所有学期
func (r *termRepository) FindAll() ([]model.Term, error) {
	var terms []model.Term
	if err := r.db.Order("created_at DESC").Find(&terms).Error; err != nil {
		return nil, wrapDBError(err, "查询学期列表")
	}
	return terms, nil
}

// Create 创建学期
func (r *termRepository) Create(term *model.Term) error {
	if err := r.db.Create(term).Error; err != nil {
		return wrapDBError(err, "创建学期")
	}
	return nil
}

// DeactivateAll 取消所有学期的激活状态
// 与 Activate 在同一事务中调用，保证单激活学期不变式
func (r *termRepository) DeactivateAll() error {
	if err := r.db.Model(&model.Term{}).Where("active = ?", true).
		Update("active", false).Error; err != nil {
		return wrapDBError(err, "取消学期激活状态")
	}
	return nil
}

// Activate 激活指定学期
func (r *termRepository) Activate(uuid string) error {
	if err := r.db.Model(&model.Term{}).Where("uuid = ?", uuid).
		Update("active", true).Error; err != nil {
		return wrapDBErrorf(err, "激活学期 uuid=%s", uuid)
	}
	return nil
}

// SetLocked 锁定/解锁学期成绩
func (r *termRepository) SetLocked(uuid string, locked bool) error {
	if err := r.db.Model(&model.Term{}).Where("uuid = ?", uuid).
		Update("locked", locked).Error; err != nil {
		return wrapDBErrorf(err, "更新学期锁定状态 uuid=%s", uuid)
	}
	return nil
}
