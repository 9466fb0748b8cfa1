package decision

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// PromptInput 构建提示词所需的上下文。
type PromptInput struct {
	Prices   map[string]float64
	History  map[string][]float64 // 收盘价序列（从旧到新）
	Balances map[string]float64   // 资产 -> 可用数量
	Quote    string               // 计价货币，如 USDT

	QuoteFree       float64
	MaxTradeUSDT    float64
	MaxPositionUSDT float64
	MinNotionalHint float64
	MinConfidence   float64

	MemoryLines []string // 最近几轮的决策/执行摘要
}

func (p PromptInput) validSymbols() []string {
	syms := make([]string, 0, len(p.Prices))
	for sym, price := range p.Prices {
		if price > 0 {
			syms = append(syms, sym)
		}
	}
	sort.Strings(syms)
	return syms
}

// BuildComboPrompt 生成持仓优化（组合方案）的提示词。
func BuildComboPrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString("你是一名加密货币现货交易顾问。请基于当前价格、历史走势与账户持仓，给出可执行的持仓优化方案。\n")
	b.WriteString("目标：在控制风险的前提下提高账户的风险回报，允许卖出与买入多个币种。\n\n")

	b.WriteString("当前价格（" + in.Quote + " 计价）：\n")
	for _, sym := range in.validSymbols() {
		fmt.Fprintf(&b, "- %s: $%.4f\n", sym, in.Prices[sym])
	}

	b.WriteString("\n历史特征摘要（从旧到新）：\n")
	for _, sym := range in.validSymbols() {
		series := in.History[sym]
		if len(series) < 2 {
			fmt.Fprintf(&b, "- %s: 历史数据不可用\n", sym)
			continue
		}
		change, mean, std, momentum := seriesFeatures(series)
		fmt.Fprintf(&b, "- %s: 共%d点 | 区间涨跌 %.2f%% | 收益均值 %.2f%% | 波动 %.2f%% | 末端动量 %.2f%%\n",
			sym, len(series), change*100, mean*100, std*100, momentum*100)
	}

	b.WriteString("\n账户持仓（可用数量）：\n")
	assets := make([]string, 0, len(in.Balances))
	for asset := range in.Balances {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	for _, asset := range assets {
		fmt.Fprintf(&b, "- %s: %g\n", asset, in.Balances[asset])
	}
	fmt.Fprintf(&b, "- %s 余额(可用于买入): %.4f\n", in.Quote, in.QuoteFree)
	fmt.Fprintf(&b, "- 风控上限: 单笔买入≤%.2f %s, 单币持仓≤%.2f %s\n",
		in.MaxTradeUSDT, in.Quote, in.MaxPositionUSDT, in.Quote)
	fmt.Fprintf(&b, "- 通用最小名义额参考: %.2f %s（最终以交易所过滤器为准）\n", in.MinNotionalHint, in.Quote)

	if len(in.MemoryLines) > 0 {
		b.WriteString("\n最近操作记忆：\n")
		for _, line := range in.MemoryLines {
			b.WriteString("- " + line + "\n")
		}
	}

	b.WriteString("\n请严格输出以下JSON格式（不要包含多余文本或代码块）：\n")
	b.WriteString("{\n")
	b.WriteString("  \"buys\": [ { \"symbol\": \"<BASE>" + in.Quote + "\", \"quote_usdt\": <number> }, ... ],\n")
	b.WriteString("  \"sells\": [ { \"symbol\": \"<BASE>" + in.Quote + "\", \"quantity\": <number> }, ... ],\n")
	b.WriteString("  \"rationale\": \"<简要理由>\",\n")
	b.WriteString("  \"confidence\": <0.0-1.0>\n")
	b.WriteString("}\n")
	b.WriteString("要求：\n")
	b.WriteString("- 仅使用上方列出的有效交易对；不需要买或卖时对应数组给空列表[]。\n")
	fmt.Fprintf(&b, "- 每笔买入金额尽量≥%.2f，买入金额总和不要超过预计可用余额（当前余额+卖出预计入账）。\n", in.MinNotionalHint)
	b.WriteString("- 卖出数量考虑交易所数量步长与最小数量，可取3~6位小数的合理值。\n")
	b.WriteString("- 考虑交易所手续费：买入金额可适度上浮、卖出数量可适度下调，避免成交后不满足过滤器。\n")
	b.WriteString("- 禁止同时对同一symbol给出买与卖。\n")
	fmt.Fprintf(&b, "- 置信度低于%.2f或信号不可靠时，返回空的buys与sells。\n", in.MinConfidence)
	return b.String()
}

// BuildSinglePrompt 生成单一动作的提示词（无持仓数据时的回退形态）。
func BuildSinglePrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString("你是专业的量化交易分析师，基于历史序列与当前价格输出一个明确的交易决策。\n\n")
	b.WriteString("当前价格（" + in.Quote + "）：\n")
	for _, sym := range in.validSymbols() {
		fmt.Fprintf(&b, "- %s: $%.4f\n", sym, in.Prices[sym])
	}
	b.WriteString("\n历史特征摘要：\n")
	for _, sym := range in.validSymbols() {
		series := in.History[sym]
		if len(series) < 2 {
			fmt.Fprintf(&b, "- %s: 历史数据不可用\n", sym)
			continue
		}
		change, mean, std, momentum := seriesFeatures(series)
		fmt.Fprintf(&b, "- %s: 区间涨跌 %.2f%% | 收益均值 %.2f%% | 波动 %.2f%% | 末端动量 %.2f%%\n",
			sym, change*100, mean*100, std*100, momentum*100)
	}
	if len(in.MemoryLines) > 0 {
		b.WriteString("\n最近操作记忆：\n")
		for _, line := range in.MemoryLines {
			b.WriteString("- " + line + "\n")
		}
	}
	b.WriteString("\n严格输出要求（仅返回JSON）：\n")
	b.WriteString("{\n")
	b.WriteString("    \"symbol\": \"<BASE>" + in.Quote + "|null\",\n")
	b.WriteString("    \"action\": \"BUY|SELL|HOLD\",\n")
	b.WriteString("    \"confidence\": 0.0-1.0,\n")
	b.WriteString("    \"rationale\": \"简短理由（不超过50字）\"\n")
	b.WriteString("}\n")
	b.WriteString("约束：\n")
	b.WriteString("- 仅从上方列出的有效交易对中选择symbol；无明确选择则返回null并HOLD。\n")
	fmt.Fprintf(&b, "- 当置信度低于%.2f或信号不一致时，必须返回HOLD。\n", in.MinConfidence)
	b.WriteString("- 禁止输出解释性文本、标题、前后缀或代码框。\n")
	return b.String()
}

// seriesFeatures 计算区间涨跌幅、收益均值/标准差、末端动量。
func seriesFeatures(series []float64) (change, mean, std, momentum float64) {
	if len(series) < 2 {
		return
	}
	if series[0] != 0 {
		change = (series[len(series)-1] - series[0]) / series[0]
	}
	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		if series[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (series[i]-series[i-1])/series[i-1])
	}
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
	std = math.Sqrt(variance)
	momentum = returns[len(returns)-1]
	return
}
