package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList 有序字符串列表
// 仅在落库时序列化为 JSON 文本，业务层始终使用 []string 语义。
type StringList []string

// Value 写库
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	payload, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan 读库
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported string list type: %T", value)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*l = StringList{}
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode string list failed: %w", err)
	}
	*l = StringList(items)
	return nil
}

// Normalize 去除首尾空白与空项，保持原有顺序
func (l StringList) Normalize() StringList {
	result := make(StringList, 0, len(l))
	for _, item := range l {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	return result
}
