package market

// SymbolSnapshot 单个交易对在本轮决策周期内的市场切片。
// RSI/Volatility 为 nil 表示历史数据不足，指标不可用。
type SymbolSnapshot struct {
	Symbol     string
	Price      float64
	RSI        *float64
	Volatility *float64
	Closes     []float64
}

// Snapshot 一轮周期内所有交易对的市场切片，只读输入。
type Snapshot map[string]SymbolSnapshot

// ValidSymbols 返回拥有有效价格（>0）的交易对集合。
func (s Snapshot) ValidSymbols() map[string]bool {
	out := make(map[string]bool, len(s))
	for sym, entry := range s {
		if entry.Price > 0 {
			out[sym] = true
		}
	}
	return out
}

// Price 返回交易对的最新价格，不存在时返回 0。
func (s Snapshot) Price(symbol string) float64 {
	return s[symbol].Price
}
