package decision

import (
	"strings"

	"github.com/tidwall/gjson"

	"arena/internal/logger"
	"arena/internal/pkg/jsonutil"
)

// Parse 将模型原始输出解析为带标记的 RawDecision。
// 解析永不返回错误：畸形输入降级为文本嗅探，再不行就是 KindNone。
// 字段级的合法性（symbol 是否可交易、金额是否为正）由 Sanitize 负责。
func Parse(raw string) RawDecision {
	out := RawDecision{Kind: KindNone, Raw: raw}
	payload, ok := jsonutil.ExtractJSON(raw)
	if !ok || !gjson.Valid(payload) {
		return sniffText(raw)
	}
	parsed := gjson.Parse(payload)
	if !parsed.IsObject() {
		return sniffText(raw)
	}
	if parsed.Get("buys").Exists() || parsed.Get("sells").Exists() {
		if err := ValidateComboShape(payload); err != nil {
			logger.Warnf("组合方案结构校验失败，按畸形输出丢弃: %v", err)
			return sniffText(raw)
		}
		out.Kind = KindCombo
		out.Combo = parseCombo(parsed)
		// 有的模型在组合方案外还附带单一动作字段，保留它作为
		// 组合清洗为空时的回退。
		if parsed.Get("action").Exists() && parsed.Get("symbol").Exists() {
			out.Single = parseSingle(parsed)
		}
		return out
	}
	out.Kind = KindSingle
	out.Single = parseSingle(parsed)
	return out
}

func parseCombo(parsed gjson.Result) *ComboPlan {
	plan := &ComboPlan{Rationale: strings.TrimSpace(parsed.Get("rationale").String())}
	if conf := parsed.Get("confidence"); conf.Exists() {
		plan.Confidence = conf.Float()
		plan.HasConfidence = true
	}
	parsed.Get("buys").ForEach(func(_, leg gjson.Result) bool {
		plan.Buys = append(plan.Buys, BuyLeg{
			Symbol:    strings.TrimSpace(leg.Get("symbol").String()),
			QuoteUSDT: leg.Get("quote_usdt").Float(),
		})
		return true
	})
	parsed.Get("sells").ForEach(func(_, leg gjson.Result) bool {
		plan.Sells = append(plan.Sells, SellLeg{
			Symbol:   strings.TrimSpace(leg.Get("symbol").String()),
			Quantity: leg.Get("quantity").Float(),
		})
		return true
	})
	return plan
}

func parseSingle(parsed gjson.Result) *SingleAction {
	single := &SingleAction{
		Symbol:    strings.TrimSpace(parsed.Get("symbol").String()),
		Action:    NormalizeAction(parsed.Get("action").String()),
		Rationale: strings.TrimSpace(parsed.Get("rationale").String()),
	}
	if conf := parsed.Get("confidence"); conf.Exists() {
		single.Confidence = conf.Float()
		single.HasConfidence = true
	}
	return single
}

// sniffText 兜底解析：在非 JSON 文本里嗅探方向词，置信度按 0.5 记。
func sniffText(raw string) RawDecision {
	txt := strings.ToUpper(raw)
	action := "HOLD"
	if strings.Contains(txt, "BUY") {
		action = "BUY"
	} else if strings.Contains(txt, "SELL") {
		action = "SELL"
	}
	if action == "HOLD" {
		return RawDecision{Kind: KindNone, Raw: raw}
	}
	return RawDecision{
		Kind:   KindSingle,
		Single: &SingleAction{Action: action, Confidence: 0.5, HasConfidence: true},
		Raw:    raw,
	}
}
