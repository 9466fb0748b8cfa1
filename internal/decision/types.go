package decision

// 中文说明：
// 本文件定义模型决策的通用数据结构。RawDecision 是未经信任的模型输出，
// Sanitize 之后才会得到满足去重/无冲突不变量的 Intent 集合。

// Side 交易方向。
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Kind 标记 RawDecision 的形态。
type Kind int

const (
	KindNone Kind = iota
	KindSingle
	KindCombo
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindCombo:
		return "combo"
	default:
		return "none"
	}
}

// BuyLeg 组合方案中的单笔买入（quote 计价金额）。
type BuyLeg struct {
	Symbol    string  `json:"symbol"`
	QuoteUSDT float64 `json:"quote_usdt"`
}

// SellLeg 组合方案中的单笔卖出（基础币数量）。
type SellLeg struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

// ComboPlan 模型一次给出的多币种买卖组合。
type ComboPlan struct {
	Buys          []BuyLeg  `json:"buys"`
	Sells         []SellLeg `json:"sells"`
	Rationale     string    `json:"rationale,omitempty"`
	Confidence    float64   `json:"confidence"`
	HasConfidence bool      `json:"-"`
}

// SingleAction 旧格式：单一 symbol + action。
type SingleAction struct {
	Symbol        string  `json:"symbol"`
	Action        string  `json:"action"`
	Rationale     string  `json:"rationale,omitempty"`
	Confidence    float64 `json:"confidence"`
	HasConfidence bool    `json:"-"`
}

// RawDecision 模型输出的带标记联合：Combo、Single 或 None。
// 字段互斥，Kind 指明有效分支；Raw 保留原始文本便于审计。
type RawDecision struct {
	Kind   Kind          `json:"kind"`
	Combo  *ComboPlan    `json:"combo,omitempty"`
	Single *SingleAction `json:"single,omitempty"`
	Raw    string        `json:"-"`
}

// Intent 清洗后的最小交易意图。
// 不变量：每个 (symbol, side) 至多一条，且同一 symbol 不同时出现买与卖。
// BUY 的 QuoteUSDT<=0 或 SELL 的 Quantity<=0 表示「按额度/持仓兜底」，
// 仅出现在单一动作形态（组合方案的非正数金额在清洗阶段即被丢弃）。
type Intent struct {
	Symbol        string
	Side          Side
	QuoteUSDT     float64
	Quantity      float64
	Confidence    float64
	HasConfidence bool
}
