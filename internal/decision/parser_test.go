package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComboPlan(t *testing.T) {
	raw := "```json\n" + `{
		"buys": [{"symbol": "BTCUSDT", "quote_usdt": 15}],
		"sells": [{"symbol": "ETHUSDT", "quantity": 0.02}],
		"rationale": "rotate into BTC",
		"confidence": 0.72
	}` + "\n```"

	d := Parse(raw)

	assert.Equal(t, KindCombo, d.Kind)
	if assert.NotNil(t, d.Combo) {
		assert.Len(t, d.Combo.Buys, 1)
		assert.Equal(t, "BTCUSDT", d.Combo.Buys[0].Symbol)
		assert.Equal(t, 15.0, d.Combo.Buys[0].QuoteUSDT)
		assert.Len(t, d.Combo.Sells, 1)
		assert.Equal(t, 0.02, d.Combo.Sells[0].Quantity)
		assert.True(t, d.Combo.HasConfidence)
		assert.Equal(t, 0.72, d.Combo.Confidence)
	}
}

func TestParseComboWithSingleFallback(t *testing.T) {
	// 组合方案之外附带的单一动作字段要保留，供组合清洗为空时回退。
	d := Parse(`{
		"buys": [{"symbol": "DOGEUSDT", "quote_usdt": 10}],
		"symbol": "BTCUSDT",
		"action": "buy",
		"confidence": 0.8
	}`)

	assert.Equal(t, KindCombo, d.Kind)
	assert.NotNil(t, d.Combo)
	if assert.NotNil(t, d.Single) {
		assert.Equal(t, "BTCUSDT", d.Single.Symbol)
		assert.Equal(t, "BUY", d.Single.Action)
	}
}

func TestParseSingleAction(t *testing.T) {
	d := Parse(`分析如下：{"symbol": "ethusdt", "action": "open_long", "confidence": 0.8}`)

	assert.Equal(t, KindSingle, d.Kind)
	if assert.NotNil(t, d.Single) {
		assert.Equal(t, "BUY", d.Single.Action)
		assert.True(t, d.Single.HasConfidence)
	}
}

func TestParseSingleWithoutConfidence(t *testing.T) {
	d := Parse(`{"symbol": "BTCUSDT", "action": "sell"}`)

	assert.Equal(t, KindSingle, d.Kind)
	assert.False(t, d.Single.HasConfidence)
}

func TestParseMalformedCombo(t *testing.T) {
	// buys 元素缺少 symbol，结构校验失败后整体降级。
	d := Parse(`{"buys": [{"quote_usdt": 10}], "confidence": 0.9}`)
	assert.NotEqual(t, KindCombo, d.Kind)
}

func TestParseSniffsPlainText(t *testing.T) {
	t.Run("方向词嗅探", func(t *testing.T) {
		d := Parse("我建议现在BUY，理由如下……")
		assert.Equal(t, KindSingle, d.Kind)
		assert.Equal(t, "BUY", d.Single.Action)
		assert.Equal(t, 0.5, d.Single.Confidence)
	})

	t.Run("无方向词则为空决策", func(t *testing.T) {
		d := Parse("市场震荡，建议观望。")
		assert.Equal(t, KindNone, d.Kind)
	})
}

func TestNormalizeAction(t *testing.T) {
	cases := map[string]string{
		"buy":        "BUY",
		"LONG":       "BUY",
		"open_long":  "BUY",
		"sell":       "SELL",
		"close":      "SELL",
		"exit":       "SELL",
		"hold":       "HOLD",
		"wait":       "HOLD",
		"法外之词":       "HOLD",
		"":           "HOLD",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeAction(in), "input=%q", in)
	}
}

func TestDecisionSummary(t *testing.T) {
	combo := RawDecision{Kind: KindCombo, Combo: &ComboPlan{
		Buys:       []BuyLeg{{Symbol: "BTCUSDT"}},
		Confidence: 0.8,
	}}
	assert.Equal(t, "PLAN buys=BTCUSDT sells=[] conf=0.80", combo.Summary())

	single := RawDecision{Kind: KindSingle, Single: &SingleAction{Symbol: "ETHUSDT", Action: "buy", Confidence: 0.66}}
	assert.Equal(t, "BUY ETHUSDT conf=0.66", single.Summary())

	assert.Equal(t, "NONE", RawDecision{Kind: KindNone}.Summary())
}
