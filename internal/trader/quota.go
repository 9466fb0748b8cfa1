package trader

// clampBuyQuote 对买入金额做三重收敛：单笔上限、单币仓位上限剩余空间、
// 可用余额。返回值可能为零或负数，表示额度已耗尽。
func clampBuyQuote(requested, heldNotional, available float64, lim Limits) float64 {
	target := requested
	if lim.MaxTradeUSDT > 0 && target > lim.MaxTradeUSDT {
		target = lim.MaxTradeUSDT
	}
	if lim.MaxPositionUSDT > 0 {
		if room := lim.MaxPositionUSDT - heldNotional; target > room {
			target = room
		}
	}
	if target > available {
		target = available
	}
	return target
}

// clampSellQty 卖出数量不超过实际持仓。
func clampSellQty(requested, held float64) float64 {
	if requested > held {
		return held
	}
	return requested
}
