package decision

import (
	"math"

	symbolpkg "arena/internal/pkg/symbol"
)

// 中文说明：
// Sanitize 是模型输出的唯一信任边界。输入是 Parse 产出的 RawDecision，
// 输出满足两条不变量：
//   1. 每个 (symbol, side) 至多一条 Intent（重复取首次出现）；
//   2. 同一 symbol 不会同时出现买与卖（冲突时两边都丢弃，宁可不动）。
// 组合方案清洗后非空则整体优先；否则回退单一动作，二者绝不合并。

// Sanitize 将 RawDecision 清洗为合法 Intent 集合。
// validPrices 为本轮有有效价格的交易对集合；tradingSymbols 为配置允许的交易对。
func Sanitize(d RawDecision, validPrices map[string]bool, tradingSymbols []string, quote string) []Intent {
	allowed := make(map[string]bool, len(tradingSymbols))
	for _, s := range tradingSymbols {
		allowed[symbolpkg.Resolve(s, quote)] = true
	}

	if d.Kind == KindCombo && d.Combo != nil {
		if intents := sanitizeCombo(d.Combo, validPrices, allowed, quote); len(intents) > 0 {
			return intents
		}
		// 清洗后为空的组合方案等同于没有组合方案，回退单一动作。
	}
	if d.Single != nil {
		return sanitizeSingle(d.Single, validPrices, quote)
	}
	return nil
}

func sanitizeCombo(plan *ComboPlan, validPrices, allowed map[string]bool, quote string) []Intent {
	seenSell := make(map[string]int)
	seenBuy := make(map[string]int)
	var out []Intent

	admit := func(sym string, amount float64) (string, bool) {
		pair := symbolpkg.Resolve(sym, quote)
		if pair == "" || !validPrices[pair] || !allowed[pair] {
			return "", false
		}
		if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return "", false
		}
		return pair, true
	}

	// 卖在前、买在后写入，方便编排阶段保持原始相对顺序。
	for _, leg := range plan.Sells {
		pair, ok := admit(leg.Symbol, leg.Quantity)
		if !ok {
			continue
		}
		if _, dup := seenSell[pair]; dup {
			continue
		}
		seenSell[pair] = len(out)
		out = append(out, Intent{
			Symbol:        pair,
			Side:          SideSell,
			Quantity:      leg.Quantity,
			Confidence:    plan.Confidence,
			HasConfidence: plan.HasConfidence,
		})
	}
	for _, leg := range plan.Buys {
		pair, ok := admit(leg.Symbol, leg.QuoteUSDT)
		if !ok {
			continue
		}
		if _, dup := seenBuy[pair]; dup {
			continue
		}
		seenBuy[pair] = len(out)
		out = append(out, Intent{
			Symbol:        pair,
			Side:          SideBuy,
			QuoteUSDT:     leg.QuoteUSDT,
			Confidence:    plan.Confidence,
			HasConfidence: plan.HasConfidence,
		})
	}

	// 冲突消除：同一 symbol 同时买卖，两边都不做。
	conflict := make(map[string]bool)
	for pair := range seenBuy {
		if _, ok := seenSell[pair]; ok {
			conflict[pair] = true
		}
	}
	if len(conflict) == 0 {
		return out
	}
	kept := out[:0]
	for _, in := range out {
		if !conflict[in.Symbol] {
			kept = append(kept, in)
		}
	}
	return kept
}

func sanitizeSingle(single *SingleAction, validPrices map[string]bool, quote string) []Intent {
	action := NormalizeAction(single.Action)
	if action == "HOLD" {
		return nil
	}
	pair := symbolpkg.Resolve(single.Symbol, quote)
	if pair == "" || !validPrices[pair] {
		// 单一动作的 symbol 无效时整条决策作废（fail-closed）。
		return nil
	}
	in := Intent{
		Symbol:        pair,
		Confidence:    single.Confidence,
		HasConfidence: single.HasConfidence,
	}
	switch action {
	case "BUY":
		in.Side = SideBuy
	case "SELL":
		in.Side = SideSell
	default:
		return nil
	}
	return []Intent{in}
}
