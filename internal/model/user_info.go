// Package model 定义数据库实体模型
// 本文件定义用户信息模型，包含门户用户的基本资料和认证信息
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo 用户信息模型
// 对应数据库 user_info 表
// 覆盖三类门户用户：管理员、教师、家长
type UserInfo struct {
	gorm.Model

	// Uuid 用户唯一标识
	// 格式：角色前缀 + 时间戳随机字符串，如 "T260829xxxx"（教师）、"P260829xxxx"（家长）
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// Name 用户姓名
	Name string `gorm:"column:name;type:varchar(50);not null;comment:姓名"`

	// Email 邮箱地址，登录凭据
	Email string `gorm:"column:email;uniqueIndex;type:varchar(100);not null;comment:邮箱"`

	// Telephone 手机号码（可选）
	Telephone string `gorm:"column:telephone;type:char(20);comment:电话"`

	// Role 用户角色
	// "admin"、"teacher"、"parent"，权限判断仅做字符串比较
	Role string `gorm:"column:role;index;type:varchar(10);not null;comment:角色 admin/teacher/parent"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// LastOnlineAt 上次登录时间
	LastOnlineAt sql.NullTime `gorm:"column:last_online_at;type:datetime;comment:上次登录时间"`

	// Status 账号状态
	// 0=正常, 1=禁用
	Status int8 `gorm:"column:status;index;not null;comment:状态，0.正常，1.禁用"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		// 使用 bcrypt 算法加密，DefaultCost=10
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = "" // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确
// 用于登录时验证用户输入的密码
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
