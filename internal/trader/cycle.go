package trader

import (
	"context"
	"fmt"

	"arena/internal/decision"
	"arena/internal/logger"
	"arena/internal/market"
)

// Trader 把清洗后的交易意图变成实际（或模拟）订单：
// 门控 -> 交易所约束校验 -> 额度收敛 -> 提交，全程留痕。
type Trader struct {
	exec     Executor
	cooldown *CooldownTracker
}

func New(exec Executor, cooldown *CooldownTracker) *Trader {
	if cooldown == nil {
		cooldown = NewCooldownTracker()
	}
	return &Trader{exec: exec, cooldown: cooldown}
}

// Cooldown 暴露冷却追踪器，供状态接口查询。
func (t *Trader) Cooldown() *CooldownTracker { return t.cooldown }

// CycleInput 一轮执行周期的全部只读输入。
type CycleInput struct {
	TraceID  string
	Intents  []decision.Intent
	Snapshot market.Snapshot
	Account  AccountState
	Filters  map[string]ExchangeFilter
	Mode     Mode
	Limits   Limits
}

// RunCycle 按「先卖后买」顺序处理意图并返回逐笔结果。
// 卖出成功后释放的 quote 余额会计入后续买入的可用额度；
// monitor 模式不改动任何状态，只输出本会如何执行。
func (t *Trader) RunCycle(ctx context.Context, in CycleInput) []OrderResult {
	results := make([]OrderResult, 0, len(in.Intents))

	var sells, buys []decision.Intent
	for _, intent := range in.Intents {
		snap := in.Snapshot[intent.Symbol]
		if ok, detail := t.checkGate(intent, snap, in.Limits); !ok {
			logger.Infof("[%s] %s %s 被风控拦截: %s", in.TraceID, intent.Side, intent.Symbol, detail)
			results = append(results, OrderResult{
				Symbol: intent.Symbol,
				Side:   string(intent.Side),
				Status: StatusSkipped,
				Reason: ReasonGateRejected,
				Detail: detail,
			})
			continue
		}
		if intent.Side == decision.SideSell {
			sells = append(sells, intent)
		} else {
			buys = append(buys, intent)
		}
	}

	remaining := in.Account.QuoteFree
	for _, intent := range sells {
		res := t.runSell(ctx, intent, in)
		if in.Mode.Submits() && res.Status != StatusFailed && res.Status != StatusSkipped {
			remaining += res.Notional
		}
		results = append(results, res)
	}
	for _, intent := range buys {
		res := t.runBuy(ctx, intent, in, remaining)
		if in.Mode.Submits() && res.Status != StatusFailed && res.Status != StatusSkipped {
			remaining -= res.Notional
		}
		results = append(results, res)
	}
	return results
}

func (t *Trader) runSell(ctx context.Context, in decision.Intent, cyc CycleInput) OrderResult {
	res := OrderResult{Symbol: in.Symbol, Side: string(decision.SideSell), RequestedQty: in.Quantity}
	price := cyc.Snapshot.Price(in.Symbol)
	held := cyc.Account.BaseQuantity(in.Symbol)
	f, hasF := cyc.Filters[in.Symbol]

	requested := in.Quantity
	if requested <= 0 {
		// 单一动作形态未给数量，默认清仓。
		requested = held
	}
	qty := RoundToStep(requested, f.StepSize)
	if ok, detail := checkFilter(qty, price, f, hasF); !ok {
		return skipResult(cyc.TraceID, res, ReasonFilterRejected, detail)
	}

	capped := clampSellQty(qty, held)
	if capped <= 0 {
		return skipResult(cyc.TraceID, res, ReasonQuotaExhausted, fmt.Sprintf("no holdings to sell (held %v)", held))
	}
	if capped < qty {
		qty = RoundToStep(capped, f.StepSize)
		if ok, detail := checkFilter(qty, price, f, hasF); !ok {
			return skipResult(cyc.TraceID, res, ReasonFilterRejected, detail)
		}
	}
	res.Quantity = qty
	res.Notional = qty * price
	return t.dispatch(ctx, res, cyc)
}

func (t *Trader) runBuy(ctx context.Context, in decision.Intent, cyc CycleInput, available float64) OrderResult {
	res := OrderResult{Symbol: in.Symbol, Side: string(decision.SideBuy), RequestedQuote: in.QuoteUSDT}
	price := cyc.Snapshot.Price(in.Symbol)
	if price <= 0 {
		return skipResult(cyc.TraceID, res, ReasonFilterRejected, "no valid price")
	}
	f, hasF := cyc.Filters[in.Symbol]

	requested := in.QuoteUSDT
	if requested <= 0 {
		// 单一动作形态未给金额，以可用余额为起点再做收敛。
		requested = available
	}
	qty := RoundToStep(requested/price, f.StepSize)
	if ok, detail := checkFilter(qty, price, f, hasF); !ok {
		return skipResult(cyc.TraceID, res, ReasonFilterRejected, detail)
	}

	heldNotional := cyc.Account.BaseQuantity(in.Symbol) * price
	target := clampBuyQuote(requested, heldNotional, available, cyc.Limits)
	if target <= 0 {
		return skipResult(cyc.TraceID, res, ReasonQuotaExhausted,
			fmt.Sprintf("quota exhausted (requested %.2f, position %.2f, available %.2f)", requested, heldNotional, available))
	}
	if target < requested {
		qty = RoundToStep(target/price, f.StepSize)
		if ok, detail := checkFilter(qty, price, f, hasF); !ok {
			return skipResult(cyc.TraceID, res, ReasonFilterRejected, detail)
		}
	}
	res.Quantity = qty
	res.Notional = qty * price
	return t.dispatch(ctx, res, cyc)
}

// dispatch 按模式提交订单。monitor 只记录，test 走交易所测试端点，
// live 真实下单。提交成功才进入冷却。
func (t *Trader) dispatch(ctx context.Context, res OrderResult, cyc CycleInput) OrderResult {
	if cyc.Mode == ModeMonitor {
		res.Status = StatusSimulated
		logger.Infof("[%s] monitor 模式: %s %s 数量 %v 名义金额 %.4f", cyc.TraceID, res.Side, res.Symbol, res.Quantity, res.Notional)
		return res
	}
	if t.exec == nil {
		res.Status = StatusFailed
		res.Reason = ReasonSubmitFailed
		res.Detail = "no executor configured"
		return res
	}
	fill, err := t.exec.SubmitMarketOrder(ctx, OrderRequest{
		Symbol:   res.Symbol,
		Side:     res.Side,
		Quantity: res.Quantity,
		Test:     cyc.Mode == ModeTest,
	})
	if err != nil {
		res.Status = StatusFailed
		res.Reason = ReasonSubmitFailed
		res.Detail = err.Error()
		logger.Errorf("[%s] 下单失败: %s %s 数量 %v: %v", cyc.TraceID, res.Side, res.Symbol, res.Quantity, err)
		return res
	}
	res.Status = StatusSubmitted
	res.OrderID = fill.OrderID
	res.FilledQty = fill.Quantity
	if fill.QuoteUSDT > 0 {
		res.Notional = fill.QuoteUSDT
	}
	t.cooldown.MarkTraded(res.Symbol)
	logger.Infof("[%s] 订单已提交: %s %s 数量 %v 状态 %s", cyc.TraceID, res.Side, res.Symbol, res.Quantity, res.Status)
	return res
}

func skipResult(traceID string, res OrderResult, reason, detail string) OrderResult {
	res.Status = StatusSkipped
	res.Reason = reason
	res.Detail = detail
	logger.Infof("[%s] %s %s 跳过: %s (%s)", traceID, res.Side, res.Symbol, reason, detail)
	return res
}
