package trader

import (
	"context"
	"time"

	"arena/internal/pkg/symbol"
)

// Mode 执行模式：monitor 只评估不下单，test 走交易所测试端点，live 真实下单。
type Mode string

const (
	ModeMonitor Mode = "monitor"
	ModeTest    Mode = "test"
	ModeLive    Mode = "live"
)

// Submits 返回该模式是否会触达交易所下单端点（含测试端点）。
func (m Mode) Submits() bool {
	return m == ModeTest || m == ModeLive
}

// 订单终态。
const (
	StatusSkipped   = "SKIPPED"
	StatusSimulated = "SIMULATED"
	StatusSubmitted = "SUBMITTED"
	StatusFailed    = "FAILED"
)

// 拒绝/失败的原因码，写入 OrderResult.Reason。
const (
	ReasonGateRejected   = "GATE_REJECTED"
	ReasonFilterRejected = "FILTER_REJECTED"
	ReasonQuotaExhausted = "QUOTA_EXHAUSTED"
	ReasonSubmitFailed   = "SUBMIT_FAILED"
)

// Limits 一轮周期内生效的风控与额度阈值快照。
// 阈值可能来自热更新的 profile，因此按值传入而非全局读取。
type Limits struct {
	RSIBuyMax         float64
	RSISellMin        float64
	MaxVolatility     float64
	Cooldown          time.Duration
	MinConfidenceBuy  float64
	MinConfidenceSell float64
	MaxTradeUSDT      float64
	MaxPositionUSDT   float64
}

// AccountState 下单前的账户快照。Holdings 以基础币种（BTC 而非 BTCUSDT）为键。
type AccountState struct {
	QuoteFree float64
	Holdings  map[string]float64
}

// BaseQuantity 返回交易对对应基础币的可用数量。
func (a AccountState) BaseQuantity(pair string) float64 {
	return a.Holdings[symbol.Base(pair)]
}

// ExchangeFilter 交易对的下单约束（LOT_SIZE/NOTIONAL 的抽取结果）。
type ExchangeFilter struct {
	MinQty      float64
	StepSize    float64
	MinNotional float64
}

// OrderRequest 提交给执行器的市价单请求。Quantity 已按 StepSize 取整。
type OrderRequest struct {
	Symbol   string
	Side     string
	Quantity float64
	Test     bool
}

// Fill 执行器返回的成交回执。测试端点无回执时字段为零值。
type Fill struct {
	OrderID   int64
	Quantity  float64
	QuoteUSDT float64
}

// Executor 市价单提交接口，由交易所网关实现。
type Executor interface {
	SubmitMarketOrder(ctx context.Context, req OrderRequest) (Fill, error)
}

// OrderResult 单笔意图经过门控、校验、额度与执行后的最终记录。
type OrderResult struct {
	Symbol         string  `json:"symbol"`
	Side           string  `json:"side"`
	RequestedQuote float64 `json:"requested_quote,omitempty"`
	RequestedQty   float64 `json:"requested_qty,omitempty"`
	Quantity       float64 `json:"quantity,omitempty"`
	Notional       float64 `json:"notional,omitempty"`
	FilledQty      float64 `json:"filled_qty,omitempty"`
	OrderID        int64   `json:"order_id,omitempty"`
	Status         string  `json:"status"`
	Reason         string  `json:"reason,omitempty"`
	Detail         string  `json:"detail,omitempty"`
}
