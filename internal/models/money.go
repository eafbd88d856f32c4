package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money 金额类型，落库与输出统一保留 2 位小数
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额（四舍五入到分）
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyPtr 创建可空金额
func NewMoneyPtr(amount decimal.Decimal) *Money {
	m := NewMoneyFromDecimal(amount)
	return &m
}

// MoneyValue 读取可空金额，nil 视为 0
func MoneyValue(m *Money) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Decimal
}

// MarshalJSON 以 2 位小数字符串输出，避免浮点误差
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON 支持字符串与数字两种输入
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("invalid money %q: %w", s, err)
		}
		m.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value 写库
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 读库
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
