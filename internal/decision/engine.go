package decision

import (
	"context"
	"fmt"
	"strings"

	"arena/internal/gateway/provider"
	"arena/internal/logger"
)

// Engine 调用模型并把原始输出解析为 RawDecision。
type Engine struct {
	provider provider.ModelProvider
}

func NewEngine(p provider.ModelProvider) *Engine {
	return &Engine{provider: p}
}

const systemPrompt = "你是严格遵守输出格式的量化交易助手，只返回要求的JSON，不输出任何多余文字。"

// GetDecision 构建提示词、调用模型、解析输出。
// 有持仓数据时走组合方案提示词，否则回退单一动作提示词。
func (e *Engine) GetDecision(ctx context.Context, in PromptInput) (RawDecision, error) {
	var prompt string
	if len(in.Balances) > 0 {
		prompt = BuildComboPrompt(in)
	} else {
		prompt = BuildSinglePrompt(in)
	}
	raw, err := e.provider.Call(ctx, systemPrompt, prompt)
	if err != nil {
		return RawDecision{Kind: KindNone}, fmt.Errorf("模型调用失败: %w", err)
	}
	d := Parse(raw)
	logger.Debugf("模型 %s 决策形态=%s", e.provider.ID(), d.Kind)
	return d, nil
}

// Summary 生成一行决策摘要，用于日志与记忆存储。
func (d RawDecision) Summary() string {
	switch d.Kind {
	case KindCombo:
		buys := make([]string, 0, len(d.Combo.Buys))
		for _, leg := range d.Combo.Buys {
			buys = append(buys, leg.Symbol)
		}
		sells := make([]string, 0, len(d.Combo.Sells))
		for _, leg := range d.Combo.Sells {
			sells = append(sells, leg.Symbol)
		}
		return fmt.Sprintf("PLAN buys=%s sells=%s conf=%.2f",
			orEmpty(strings.Join(buys, ",")), orEmpty(strings.Join(sells, ",")), d.Combo.Confidence)
	case KindSingle:
		sym := d.Single.Symbol
		if sym == "" {
			sym = "None"
		}
		return fmt.Sprintf("%s %s conf=%.2f", NormalizeAction(d.Single.Action), sym, d.Single.Confidence)
	default:
		return "NONE"
	}
}

func orEmpty(s string) string {
	if s == "" {
		return "[]"
	}
	return s
}
