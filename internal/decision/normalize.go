package decision

import "strings"

// NormalizeAction 统一动作名称，兼容 buy/long 等同义词。
// 未识别的动作一律按 HOLD 处理（宁可观望，不猜意图）。
func NormalizeAction(a string) string {
	replacer := strings.NewReplacer(" ", "_", "-", "_")
	a = strings.ToLower(strings.TrimSpace(a))
	a = replacer.Replace(a)
	switch a {
	case "buy", "long", "open_long", "go_long", "enter_long":
		return "BUY"
	case "sell", "short", "close", "exit", "close_long", "exit_long", "reduce":
		return "SELL"
	case "hold", "wait", "stay", "neutral", "none":
		return "HOLD"
	default:
		return "HOLD"
	}
}
