package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arena/internal/decision"
	"arena/internal/logger"
	"arena/internal/market"
	"arena/internal/notifier"
	"arena/internal/pkg/symbol"
	"arena/internal/store"
	"arena/internal/trader"

	"github.com/google/uuid"
)

// runCycle 执行一轮完整的决策周期：
// 阈值快照 -> 行情快照 -> 账户 -> 模型决策 -> 清洗 -> 执行 -> 落库/通知。
// 任何前置输入失败都跳过本轮，不影响调度节奏。
func (a *App) runCycle(ctx context.Context) {
	traceID := uuid.NewString()[:8]
	started := time.Now()
	logger.Infof("[%s] 周期开始 mode=%s symbols=%d", traceID, a.mode, len(a.symbols))

	riskSnap := a.riskReg.Snapshot()
	limits := riskSnap.Profile.Limits()

	snapshot, err := a.marketSvc.GetSnapshot(ctx, a.symbols)
	if err != nil {
		logger.Errorf("[%s] 行情拉取失败，跳过本轮: %v", traceID, err)
		return
	}

	account := a.fetchAccount(ctx, traceID)
	filters := a.symbolFilters(ctx)

	memory, err := a.cycles.RecentSummaries(ctx, a.cfg.Store.MemoryItems)
	if err != nil {
		logger.Warnf("[%s] 读取历史摘要失败: %v", traceID, err)
	}

	input := decision.PromptInput{
		Prices:          snapshotPrices(snapshot),
		History:         snapshotHistory(snapshot),
		Balances:        tradableHoldings(account, a.symbols),
		Quote:           a.cfg.Market.Quote,
		QuoteFree:       account.QuoteFree,
		MaxTradeUSDT:    limits.MaxTradeUSDT,
		MaxPositionUSDT: limits.MaxPositionUSDT,
		MinNotionalHint: minNotionalHint(filters),
		MinConfidence:   limits.MinConfidenceBuy,
		MemoryLines:     memory,
	}

	raw, err := a.engine.GetDecision(ctx, input)
	if err != nil {
		logger.Errorf("[%s] 获取决策失败，跳过本轮: %v", traceID, err)
		return
	}
	logger.Infof("[%s] 模型决策: %s", traceID, raw.Summary())

	intents := decision.Sanitize(raw, snapshot.ValidSymbols(), a.symbols, a.cfg.Market.Quote)
	if len(intents) == 0 {
		logger.Infof("[%s] 清洗后无可执行意图，本轮结束", traceID)
		a.persist(ctx, traceID, raw, nil, started)
		return
	}

	results := a.trader.RunCycle(ctx, trader.CycleInput{
		TraceID:  traceID,
		Intents:  intents,
		Snapshot: snapshot,
		Account:  account,
		Filters:  filters,
		Mode:     a.mode,
		Limits:   limits,
	})

	a.persist(ctx, traceID, raw, results, started)

	if report := notifier.FormatCycleReport(traceID, string(a.mode), results); report != "" {
		if err := a.notify.SendText(report); err != nil {
			logger.Warnf("[%s] 通知发送失败: %v", traceID, err)
		}
	}
	logger.Infof("[%s] 周期结束 耗时=%s 结果数=%d", traceID, time.Since(started).Truncate(time.Millisecond), len(results))
}

// fetchAccount 拉取账户快照。monitor 模式未配置密钥时允许失败，
// 返回空账户（提示词走单一动作形态，额度按零余额收敛）。
func (a *App) fetchAccount(ctx context.Context, traceID string) trader.AccountState {
	account, err := a.gateway.FetchAccount(ctx, a.cfg.Market.Quote)
	if err != nil {
		if a.mode == trader.ModeMonitor {
			logger.Warnf("[%s] 账户拉取失败（monitor 模式继续）: %v", traceID, err)
			return trader.AccountState{Holdings: map[string]float64{}}
		}
		logger.Errorf("[%s] 账户拉取失败: %v", traceID, err)
		return trader.AccountState{Holdings: map[string]float64{}}
	}
	return account
}

func (a *App) persist(ctx context.Context, traceID string, raw decision.RawDecision, results []trader.OrderResult, at time.Time) {
	rec := store.CycleRecord{
		TraceID:   traceID,
		Mode:      string(a.mode),
		Summary:   cycleSummary(raw, results),
		Decision:  raw,
		Results:   results,
		CreatedAt: at,
	}
	if err := a.cycles.SaveCycle(ctx, rec); err != nil {
		logger.Warnf("[%s] 周期记录落库失败: %v", traceID, err)
	}
}

// cycleSummary 把决策与执行结果压成一行，作为后续轮次的记忆。
func cycleSummary(raw decision.RawDecision, results []trader.OrderResult) string {
	base := raw.Summary()
	if len(results) == 0 {
		return base + " -> no action"
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		item := fmt.Sprintf("%s %s %s", r.Side, r.Symbol, r.Status)
		if r.Reason != "" {
			item += "(" + r.Reason + ")"
		}
		parts = append(parts, item)
	}
	return base + " -> " + strings.Join(parts, "; ")
}

func snapshotPrices(snap market.Snapshot) map[string]float64 {
	out := make(map[string]float64, len(snap))
	for sym, entry := range snap {
		out[sym] = entry.Price
	}
	return out
}

func snapshotHistory(snap market.Snapshot) map[string][]float64 {
	out := make(map[string][]float64, len(snap))
	for sym, entry := range snap {
		if len(entry.Closes) > 0 {
			out[sym] = entry.Closes
		}
	}
	return out
}

// tradableHoldings 只保留参与交易的基础币持仓，避免把无关资产塞进提示词。
func tradableHoldings(account trader.AccountState, symbols []string) map[string]float64 {
	out := make(map[string]float64)
	for _, pair := range symbols {
		base := symbol.Base(pair)
		if qty := account.Holdings[base]; qty > 0 {
			out[base] = qty
		}
	}
	return out
}

// minNotionalHint 取各交易对最小名义金额的最大值作为提示词下限，
// 模型给出的金额低于它大概率会被过滤。
func minNotionalHint(filters map[string]trader.ExchangeFilter) float64 {
	hint := 5.0
	for _, f := range filters {
		if f.MinNotional > hint {
			hint = f.MinNotional
		}
	}
	return hint
}
