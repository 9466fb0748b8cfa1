package notifier

import (
	"fmt"
	"strings"

	"arena/internal/trader"
)

// FormatCycleReport 将一轮执行结果渲染成推送文本。
// 只在存在已提交/模拟/失败订单时返回非空串，纯跳过的周期不打扰。
func FormatCycleReport(traceID, mode string, results []trader.OrderResult) string {
	var lines []string
	for _, r := range results {
		switch r.Status {
		case trader.StatusSubmitted, trader.StatusSimulated:
			lines = append(lines, fmt.Sprintf("✅ %s %s 数量 %v 名义 %.2f (%s)",
				r.Side, r.Symbol, r.Quantity, r.Notional, r.Status))
		case trader.StatusFailed:
			lines = append(lines, fmt.Sprintf("❌ %s %s 失败: %s", r.Side, r.Symbol, r.Detail))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*交易周期* `%s` (mode=%s)\n", traceID, mode)
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
