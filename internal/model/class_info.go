// Package model 定义数据库实体模型
// 本文件定义班级与任课关系模型
package model

import (
	"gorm.io/gorm"
)

// ClassInfo 班级模型
// 对应数据库 class_info 表
type ClassInfo struct {
	gorm.Model

	// Uuid 班级唯一标识，格式 "K" + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:班级uuid"`

	// Name 班级名称，如 "Grade 5A"
	Name string `gorm:"column:name;uniqueIndex;type:varchar(50);not null;comment:班级名称"`
}

// TableName 指定表名
func (ClassInfo) TableName() string {
	return "class_info"
}

// TeacherAssignment 任课关系模型
// 对应数据库 teacher_assignment 表
// 记录教师在某班级承担的科目
type TeacherAssignment struct {
	gorm.Model

	// TeacherId 教师 UUID
	TeacherId string `gorm:"column:teacher_id;index;type:char(20);not null;comment:教师uuid"`

	// ClassId 班级 UUID
	ClassId string `gorm:"column:class_id;index;type:char(20);not null;comment:班级uuid"`

	// Subject 科目名称
	Subject string `gorm:"column:subject;type:varchar(50);not null;comment:科目"`
}

// TableName 指定表名
func (TeacherAssignment) TableName() string {
	return "teacher_assignment"
}
