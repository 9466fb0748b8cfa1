package trader

import (
	"fmt"

	"arena/internal/decision"
	"arena/internal/market"
)

// checkGate 对单笔意图做指标与冷却门控。
// 任一谓词失败即拒绝并给出原因；指标缺失（nil）不拦截，
// 未携带置信度的决策跳过置信度检查。
func (t *Trader) checkGate(in decision.Intent, snap market.SymbolSnapshot, lim Limits) (bool, string) {
	if snap.Volatility != nil && *snap.Volatility > lim.MaxVolatility {
		return false, fmt.Sprintf("volatility %.4f exceeds max %.4f", *snap.Volatility, lim.MaxVolatility)
	}
	if !t.cooldown.Ready(in.Symbol, lim.Cooldown) {
		return false, fmt.Sprintf("cooldown active (%s)", lim.Cooldown)
	}
	if snap.RSI != nil {
		switch in.Side {
		case decision.SideBuy:
			if *snap.RSI > lim.RSIBuyMax {
				return false, fmt.Sprintf("RSI %.2f above buy max %.2f", *snap.RSI, lim.RSIBuyMax)
			}
		case decision.SideSell:
			if *snap.RSI < lim.RSISellMin {
				return false, fmt.Sprintf("RSI %.2f below sell min %.2f", *snap.RSI, lim.RSISellMin)
			}
		}
	}
	if in.HasConfidence {
		switch in.Side {
		case decision.SideBuy:
			if in.Confidence < lim.MinConfidenceBuy {
				return false, fmt.Sprintf("confidence %.2f below buy min %.2f", in.Confidence, lim.MinConfidenceBuy)
			}
		case decision.SideSell:
			if in.Confidence < lim.MinConfidenceSell {
				return false, fmt.Sprintf("confidence %.2f below sell min %.2f", in.Confidence, lim.MinConfidenceSell)
			}
		}
	}
	return true, ""
}
