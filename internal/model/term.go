// Package model 定义数据库实体模型
// 本文件定义学期、成绩、考勤与评语模型
package model

import (
	"time"

	"gorm.io/gorm"
)

// Term 学期模型
// 对应数据库 term 表
// 任一时刻至多一个学期处于激活状态；锁定后成绩不可再录入
type Term struct {
	gorm.Model

	// Uuid 学期唯一标识，格式 "E" + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:学期uuid"`

	// Name 学期名称，如 "2026 Term 1"
	Name string `gorm:"column:name;uniqueIndex;type:varchar(50);not null;comment:学期名称"`

	// Active 是否为当前激活学期
	Active bool `gorm:"column:active;index;not null;default:false;comment:是否激活"`

	// Locked 成绩是否已锁定
	Locked bool `gorm:"column:locked;not null;default:false;comment:成绩是否锁定"`
}

// TableName 指定表名
func (Term) TableName() string {
	return "term"
}

// Mark 成绩模型
// 对应数据库 mark 表
// 每条记录是一个学生在一个学期某科目的分数，同键重复录入按覆盖处理
type Mark struct {
	gorm.Model

	// StudentId 学生 UUID
	StudentId string `gorm:"column:student_id;uniqueIndex:uk_mark_student_term_subject;type:char(20);not null;comment:学生uuid"`

	// TermId 学期 UUID
	TermId string `gorm:"column:term_id;uniqueIndex:uk_mark_student_term_subject;type:char(20);not null;comment:学期uuid"`

	// ClassId 录入时所在班级 UUID
	ClassId string `gorm:"column:class_id;index;type:char(20);not null;comment:班级uuid"`

	// Subject 科目名称
	Subject string `gorm:"column:subject;uniqueIndex:uk_mark_student_term_subject;type:varchar(50);not null;comment:科目"`

	// Score 分数，0-100
	Score int `gorm:"column:score;not null;comment:分数"`

	// TeacherId 录入教师 UUID
	TeacherId string `gorm:"column:teacher_id;type:char(20);not null;comment:录入教师uuid"`
}

// TableName 指定表名
func (Mark) TableName() string {
	return "mark"
}

// Attendance 考勤模型
// 对应数据库 attendance 表
type Attendance struct {
	gorm.Model

	// StudentId 学生 UUID
	StudentId string `gorm:"column:student_id;index;type:char(20);not null;comment:学生uuid"`

	// TermId 学期 UUID
	TermId string `gorm:"column:term_id;index;type:char(20);not null;comment:学期uuid"`

	// Date 考勤日期
	Date time.Time `gorm:"column:date;type:date;not null;comment:日期"`

	// Present 是否出勤
	Present bool `gorm:"column:present;not null;comment:是否出勤"`
}

// TableName 指定表名
func (Attendance) TableName() string {
	return "attendance"
}

// Remark 教师评语模型
// 对应数据库 remark 表
type Remark struct {
	gorm.Model

	// StudentId 学生 UUID
	StudentId string `gorm:"column:student_id;index;type:char(20);not null;comment:学生uuid"`

	// TermId 学期 UUID
	TermId string `gorm:"column:term_id;index;type:char(20);not null;comment:学期uuid"`

	// TeacherId 评语教师 UUID
	TeacherId string `gorm:"column:teacher_id;type:char(20);not null;comment:教师uuid"`

	// Content 评语内容
	Content string `gorm:"column:content;type:TEXT;not null;comment:评语内容"`
}

// TableName 指定表名
func (Remark) TableName() string {
	return "remark"
}
