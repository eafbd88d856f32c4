package attribution

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/clickpath/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount 销售金额为负数或非有限数
	ErrInvalidAmount = errors.New("invalid sale amount")
	// ErrInvalidTerms 佣金条款不合法
	ErrInvalidTerms = errors.New("invalid commission terms")
)

var hundred = decimal.NewFromInt(100)

// CommissionKind 佣金计算方式
type CommissionKind int

const (
	// CommissionPercentage 按销售额百分比计佣
	CommissionPercentage CommissionKind = iota + 1
	// CommissionFixed 每笔转化固定佣金
	CommissionFixed
)

// String 返回存储使用的类型名
func (k CommissionKind) String() string {
	switch k {
	case CommissionPercentage:
		return constants.CommissionTypePercentage
	case CommissionFixed:
		return constants.CommissionTypeFixed
	default:
		return "unknown"
	}
}

// ParseCommissionKind 解析存储中的佣金类型
func ParseCommissionKind(raw string) (CommissionKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.CommissionTypePercentage:
		return CommissionPercentage, nil
	case constants.CommissionTypeFixed:
		return CommissionFixed, nil
	default:
		return 0, fmt.Errorf("%w: unknown commission type %q", ErrInvalidTerms, raw)
	}
}

// CommissionTerms 推广方佣金条款
// Percentage 时 Rate 为百分比，Fixed 时 Rate 为每笔金额。
type CommissionTerms struct {
	Kind CommissionKind
	Rate decimal.Decimal
}

// Commission 佣金计算结果
type Commission struct {
	Amount      decimal.Decimal
	RatePercent decimal.Decimal // 生效比例（百分比），固定佣金为 0
}

// SaleAmountFromFloat 校验外部提交的销售金额
func SaleAmountFromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return decimal.NewFromFloat(v), nil
}

// ComputeCommission 计算单笔转化佣金
// saleAmount 为空时：百分比佣金为 0，固定佣金为固定金额。
// bonusRate 为活动额外比例，仅对百分比佣金生效。
func ComputeCommission(saleAmount *decimal.Decimal, terms CommissionTerms, bonusRate *decimal.Decimal) (Commission, error) {
	if saleAmount != nil && saleAmount.IsNegative() {
		return Commission{}, ErrInvalidAmount
	}
	if terms.Rate.IsNegative() {
		return Commission{}, fmt.Errorf("%w: negative rate", ErrInvalidTerms)
	}

	switch terms.Kind {
	case CommissionFixed:
		return Commission{
			Amount:      RoundMoney(terms.Rate),
			RatePercent: decimal.Zero,
		}, nil
	case CommissionPercentage:
		rate := terms.Rate
		if bonusRate != nil {
			if bonusRate.IsNegative() {
				return Commission{}, fmt.Errorf("%w: negative bonus rate", ErrInvalidTerms)
			}
			rate = rate.Add(*bonusRate)
		}
		if saleAmount == nil {
			return Commission{Amount: decimal.Zero, RatePercent: rate}, nil
		}
		return Commission{
			Amount:      RoundMoney(saleAmount.Mul(rate).Div(hundred)),
			RatePercent: rate,
		}, nil
	default:
		return Commission{}, fmt.Errorf("%w: unknown commission kind %d", ErrInvalidTerms, int(terms.Kind))
	}
}

// RoundMoney 金额四舍五入到 2 位小数（非负金额即 half-up）
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
