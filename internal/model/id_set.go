// Package model 定义数据库实体模型
// 本文件定义 IDSet 类型，用于已读回执中的用户 ID 集合
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDSet 用户 ID 集合，以 JSON 数组形式存入数据库
// 集合只增不减：ID 只会被加入，不会被移除，Add 操作天然幂等
type IDSet []string

// Contains 判断集合中是否包含指定 ID
func (s IDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add 将 ID 加入集合并返回新集合
// 已存在时原样返回，重复调用结果相同
func (s IDSet) Add(id string) IDSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// Value 实现 driver.Valuer 接口，序列化为 JSON 数组
// nil 集合序列化为 "[]"，避免数据库中出现 NULL 与空数组两种表示
func (s IDSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner 接口，从 JSON 数组反序列化
func (s *IDSet) Scan(value interface{}) error {
	if value == nil {
		*s = IDSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("IDSet scan: unsupported type %T", value)
	}
	if len(data) == 0 {
		*s = IDSet{}
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("IDSet scan: %w", err)
	}
	*s = IDSet(ids)
	return nil
}
