package trader

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// 交易所未返回最小名义金额时的兜底值（quote 计价）。
const defaultMinNotional = 5.0

// RoundToStep 将数量向下取整到 stepSize 的整数倍。
// 使用十进制运算避免 0.1+0.2 式的二进制误差导致步进校验失败。
func RoundToStep(qty, stepSize float64) float64 {
	if stepSize <= 0 || qty <= 0 {
		return qty
	}
	q := decimal.NewFromFloat(qty)
	step := decimal.NewFromFloat(stepSize)
	floored := q.Div(step).Floor().Mul(step)
	out, _ := floored.Float64()
	return out
}

// checkFilter 校验取整后的数量是否满足交易对约束。
// price 用于名义金额检查；filter 缺失时仅做兜底的最小名义金额检查。
func checkFilter(qty, price float64, f ExchangeFilter, hasFilter bool) (bool, string) {
	if qty <= 0 {
		return false, "quantity rounds to zero"
	}
	minNotional := defaultMinNotional
	if hasFilter {
		if f.MinQty > 0 && qty < f.MinQty {
			return false, fmt.Sprintf("quantity %v below minQty %v", qty, f.MinQty)
		}
		if f.MinNotional > 0 {
			minNotional = f.MinNotional
		}
	}
	if notional := qty * price; notional < minNotional {
		return false, fmt.Sprintf("notional %.4f below minNotional %.4f", notional, minNotional)
	}
	return true, ""
}
