package decision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSet(pairs ...string) map[string]bool {
	out := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		out[p] = true
	}
	return out
}

func TestSanitizeComboConflictDropsBothSides(t *testing.T) {
	d := RawDecision{
		Kind: KindCombo,
		Combo: &ComboPlan{
			Buys:          []BuyLeg{{Symbol: "BTCUSDT", QuoteUSDT: 10}, {Symbol: "ETHUSDT", QuoteUSDT: 15}},
			Sells:         []SellLeg{{Symbol: "BTCUSDT", Quantity: 0.001}},
			Confidence:    0.8,
			HasConfidence: true,
		},
	}
	intents := Sanitize(d, validSet("BTCUSDT", "ETHUSDT"), []string{"BTCUSDT", "ETHUSDT"}, "USDT")

	assert.Len(t, intents, 1)
	assert.Equal(t, "ETHUSDT", intents[0].Symbol)
	assert.Equal(t, SideBuy, intents[0].Side)
}

func TestSanitizeComboDuplicateKeepsFirst(t *testing.T) {
	d := RawDecision{
		Kind: KindCombo,
		Combo: &ComboPlan{
			Buys: []BuyLeg{
				{Symbol: "BTCUSDT", QuoteUSDT: 10},
				{Symbol: "btc", QuoteUSDT: 99},
			},
			Confidence:    0.7,
			HasConfidence: true,
		},
	}
	intents := Sanitize(d, validSet("BTCUSDT"), []string{"BTCUSDT"}, "USDT")

	assert.Len(t, intents, 1)
	assert.Equal(t, 10.0, intents[0].QuoteUSDT)
}

func TestSanitizeComboSellsBeforeBuys(t *testing.T) {
	d := RawDecision{
		Kind: KindCombo,
		Combo: &ComboPlan{
			Buys:  []BuyLeg{{Symbol: "ETHUSDT", QuoteUSDT: 10}},
			Sells: []SellLeg{{Symbol: "SOLUSDT", Quantity: 2}},
		},
	}
	intents := Sanitize(d, validSet("ETHUSDT", "SOLUSDT"), []string{"ETHUSDT", "SOLUSDT"}, "USDT")

	assert.Len(t, intents, 2)
	assert.Equal(t, SideSell, intents[0].Side)
	assert.Equal(t, SideBuy, intents[1].Side)
}

func TestSanitizeComboDropsInvalidLegs(t *testing.T) {
	t.Run("非正数与非有限金额被丢弃", func(t *testing.T) {
		d := RawDecision{
			Kind: KindCombo,
			Combo: &ComboPlan{
				Buys: []BuyLeg{
					{Symbol: "BTCUSDT", QuoteUSDT: 0},
					{Symbol: "ETHUSDT", QuoteUSDT: -3},
					{Symbol: "SOLUSDT", QuoteUSDT: math.NaN()},
				},
			},
		}
		intents := Sanitize(d, validSet("BTCUSDT", "ETHUSDT", "SOLUSDT"),
			[]string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}, "USDT")
		assert.Empty(t, intents)
	})

	t.Run("无价格或不在白名单的交易对被丢弃", func(t *testing.T) {
		d := RawDecision{
			Kind: KindCombo,
			Combo: &ComboPlan{
				Buys: []BuyLeg{
					{Symbol: "DOGEUSDT", QuoteUSDT: 10}, // 不在白名单
					{Symbol: "ETHUSDT", QuoteUSDT: 10},  // 无有效价格
				},
			},
		}
		intents := Sanitize(d, validSet("BTCUSDT"), []string{"BTCUSDT", "ETHUSDT"}, "USDT")
		assert.Empty(t, intents)
	})
}

func TestSanitizeEmptyComboFallsBackToSingle(t *testing.T) {
	d := RawDecision{
		Kind: KindCombo,
		Combo: &ComboPlan{
			Buys: []BuyLeg{{Symbol: "DOGEUSDT", QuoteUSDT: 10}},
		},
		Single: &SingleAction{Symbol: "BTCUSDT", Action: "BUY", Confidence: 0.9, HasConfidence: true},
	}
	intents := Sanitize(d, validSet("BTCUSDT"), []string{"BTCUSDT"}, "USDT")

	assert.Len(t, intents, 1)
	assert.Equal(t, "BTCUSDT", intents[0].Symbol)
	assert.Equal(t, SideBuy, intents[0].Side)
	// 单一形态不带金额，由执行阶段按额度兜底。
	assert.Zero(t, intents[0].QuoteUSDT)
}

func TestSanitizeParsedComboFallsBackToAttachedSingle(t *testing.T) {
	// 模型输出同时带组合方案和单一动作字段，组合腿全被清洗掉时
	// 回退到附带的单一动作。
	d := Parse(`{
		"buys": [{"symbol": "DOGEUSDT", "quote_usdt": 10}],
		"symbol": "BTCUSDT",
		"action": "buy",
		"confidence": 0.9
	}`)
	intents := Sanitize(d, validSet("BTCUSDT"), []string{"BTCUSDT"}, "USDT")

	assert.Len(t, intents, 1)
	assert.Equal(t, "BTCUSDT", intents[0].Symbol)
	assert.Equal(t, SideBuy, intents[0].Side)
}

func TestSanitizeSingle(t *testing.T) {
	t.Run("HOLD 不产生意图", func(t *testing.T) {
		d := RawDecision{Kind: KindSingle, Single: &SingleAction{Symbol: "BTCUSDT", Action: "HOLD"}}
		assert.Empty(t, Sanitize(d, validSet("BTCUSDT"), []string{"BTCUSDT"}, "USDT"))
	})

	t.Run("裸币名补全计价后缀", func(t *testing.T) {
		d := RawDecision{Kind: KindSingle, Single: &SingleAction{Symbol: "btc", Action: "sell"}}
		intents := Sanitize(d, validSet("BTCUSDT"), []string{"BTCUSDT"}, "USDT")
		assert.Len(t, intents, 1)
		assert.Equal(t, "BTCUSDT", intents[0].Symbol)
		assert.Equal(t, SideSell, intents[0].Side)
	})

	t.Run("symbol 无有效价格时整条作废", func(t *testing.T) {
		d := RawDecision{Kind: KindSingle, Single: &SingleAction{Symbol: "ETHUSDT", Action: "BUY"}}
		assert.Empty(t, Sanitize(d, validSet("BTCUSDT"), []string{"BTCUSDT", "ETHUSDT"}, "USDT"))
	})
}
