package repository

import (
	"time"

	"zhixiao_school_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 按 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByEmail 按邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// FindByUuids 按 UUID 列表查找用户
func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// Create 创建用户
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// UpdateLastOnlineAt 更新上次登录时间
func (r *userRepository) UpdateLastOnlineAt(uuid string, at time.Time) error {
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).
		Update("last_online_at", at).Error; err != nil {
		return wrapDBErrorf(err, "更新用户登录时间 uuid=%s", uuid)
	}
	return nil
}
