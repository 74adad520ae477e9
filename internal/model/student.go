// Package model 定义数据库实体模型
// 本文件定义学生档案模型
package model

import (
	"gorm.io/gorm"
)

// Student 学生档案模型
// 对应数据库 student 表
// 学生档案在入学申请获批时创建，关联一位家长账号和一个班级
type Student struct {
	gorm.Model

	// Uuid 学生唯一标识，格式 "S" + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:学生uuid"`

	// StudentNo 学号
	// 录取时生成，格式 STU-<年份>-<序号>，对家长可见
	StudentNo string `gorm:"column:student_no;uniqueIndex;type:varchar(20);not null;comment:学号"`

	// Name 学生姓名
	Name string `gorm:"column:name;type:varchar(50);not null;comment:姓名"`

	// ParentId 家长账号 UUID
	ParentId string `gorm:"column:parent_id;index;type:char(20);not null;comment:家长uuid"`

	// ClassId 所在班级 UUID
	// 升级（promote）时批量改写
	ClassId string `gorm:"column:class_id;index;type:char(20);not null;comment:班级uuid"`
}

// TableName 指定表名
func (Student) TableName() string {
	return "student"
}
