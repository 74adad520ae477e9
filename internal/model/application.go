// Package model 定义数据库实体模型
// 本文件定义入学申请模型
package model

import (
	"gorm.io/gorm"
)

// Application 入学申请模型
// 对应数据库 application 表
// 同一邮箱只允许存在一份申请，录取后转为学生档案
type Application struct {
	gorm.Model

	// Uuid 申请唯一标识，格式 "A" + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:申请uuid"`

	// StudentName 拟入学学生姓名
	StudentName string `gorm:"column:student_name;type:varchar(50);not null;comment:学生姓名"`

	// ParentName 家长姓名
	ParentName string `gorm:"column:parent_name;type:varchar(50);not null;comment:家长姓名"`

	// Email 家长邮箱，用于重复申请检查
	Email string `gorm:"column:email;index;type:varchar(100);not null;comment:家长邮箱"`

	// Telephone 联系电话
	Telephone string `gorm:"column:telephone;type:char(20);comment:电话"`

	// ApplyClassId 申请入读的班级 UUID
	ApplyClassId string `gorm:"column:apply_class_id;type:char(20);not null;comment:申请班级uuid"`

	// Status 申请状态
	// "pending"、"approved"、"rejected"
	Status string `gorm:"column:status;index;type:varchar(10);not null;default:pending;comment:状态"`
}

// TableName 指定表名
func (Application) TableName() string {
	return "application"
}
