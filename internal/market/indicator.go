package market

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// RSI 计算收盘价序列的 RSI（talib，Wilder 平滑）。
// 数据不足（len < period+1）时返回 (0, false)。
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 {
		period = 14
	}
	if len(closes) < period+1 {
		return 0, false
	}
	series := talib.Rsi(closes, period)
	if len(series) == 0 {
		return 0, false
	}
	val := series[len(series)-1]
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

// Volatility 计算简单收益率的样本标准差。
// 少于 3 个价格点时返回 (0, false)。
func Volatility(closes []float64) (float64, bool) {
	if len(closes) < 3 {
		return 0, false
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev, cur := closes[i-1], closes[i]
		if prev <= 0 {
			continue
		}
		returns = append(returns, (cur-prev)/prev)
	}
	if len(returns) == 0 {
		return 0, false
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	n := len(returns) - 1
	if n < 1 {
		n = 1
	}
	variance /= float64(n)
	return math.Sqrt(variance), true
}

// BuildSnapshot 将价格与历史收盘序列合并为一轮周期的市场快照。
func BuildSnapshot(prices map[string]float64, history map[string][]float64, rsiPeriod int) Snapshot {
	snap := make(Snapshot, len(prices))
	for sym, price := range prices {
		entry := SymbolSnapshot{Symbol: sym, Price: price}
		if closes, ok := history[sym]; ok && len(closes) > 0 {
			entry.Closes = closes
			if rsi, ok := RSI(closes, rsiPeriod); ok {
				entry.RSI = &rsi
			}
			if vol, ok := Volatility(closes); ok {
				entry.Volatility = &vol
			}
		}
		snap[sym] = entry
	}
	return snap
}
