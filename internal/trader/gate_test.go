package trader

import (
	"testing"
	"time"

	"arena/internal/decision"
	"arena/internal/market"

	"github.com/stretchr/testify/assert"
)

func testLimits() Limits {
	return Limits{
		RSIBuyMax:         65,
		RSISellMin:        35,
		MaxVolatility:     0.12,
		Cooldown:          5 * time.Minute,
		MinConfidenceBuy:  0.65,
		MinConfidenceSell: 0.65,
		MaxTradeUSDT:      20,
		MaxPositionUSDT:   50,
	}
}

func fp(v float64) *float64 { return &v }

func buyIntent(conf float64) decision.Intent {
	return decision.Intent{Symbol: "BTCUSDT", Side: decision.SideBuy, QuoteUSDT: 10, Confidence: conf, HasConfidence: true}
}

func TestGateRSIBounds(t *testing.T) {
	tr := New(nil, NewCooldownTracker())
	lim := testLimits()

	t.Run("买入方向 RSI 超上限被拦", func(t *testing.T) {
		snap := market.SymbolSnapshot{Price: 100, RSI: fp(70)}
		ok, detail := tr.checkGate(buyIntent(0.9), snap, lim)
		assert.False(t, ok)
		assert.Contains(t, detail, "RSI")
	})

	t.Run("买入方向 RSI 恰在上限放行", func(t *testing.T) {
		snap := market.SymbolSnapshot{Price: 100, RSI: fp(65)}
		ok, _ := tr.checkGate(buyIntent(0.9), snap, lim)
		assert.True(t, ok)
	})

	t.Run("卖出方向 RSI 低于下限被拦", func(t *testing.T) {
		in := decision.Intent{Symbol: "BTCUSDT", Side: decision.SideSell, Quantity: 1, Confidence: 0.9, HasConfidence: true}
		snap := market.SymbolSnapshot{Price: 100, RSI: fp(30)}
		ok, _ := tr.checkGate(in, snap, lim)
		assert.False(t, ok)
	})

	t.Run("指标缺失不拦截", func(t *testing.T) {
		snap := market.SymbolSnapshot{Price: 100}
		ok, _ := tr.checkGate(buyIntent(0.9), snap, lim)
		assert.True(t, ok)
	})
}

func TestGateVolatility(t *testing.T) {
	tr := New(nil, NewCooldownTracker())
	lim := testLimits()

	ok, detail := tr.checkGate(buyIntent(0.9), market.SymbolSnapshot{Price: 100, Volatility: fp(0.15)}, lim)
	assert.False(t, ok)
	assert.Contains(t, detail, "volatility")

	ok, _ = tr.checkGate(buyIntent(0.9), market.SymbolSnapshot{Price: 100, Volatility: fp(0.12)}, lim)
	assert.True(t, ok)
}

func TestGateConfidence(t *testing.T) {
	tr := New(nil, NewCooldownTracker())
	lim := testLimits()
	snap := market.SymbolSnapshot{Price: 100}

	ok, detail := tr.checkGate(buyIntent(0.5), snap, lim)
	assert.False(t, ok)
	assert.Contains(t, detail, "confidence")

	// 未携带置信度的决策跳过该检查。
	in := decision.Intent{Symbol: "BTCUSDT", Side: decision.SideBuy, QuoteUSDT: 10}
	ok, _ = tr.checkGate(in, snap, lim)
	assert.True(t, ok)
}

func TestGateCooldown(t *testing.T) {
	cd := NewCooldownTracker()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	cd.now = func() time.Time { return now }
	tr := New(nil, cd)
	lim := testLimits()
	snap := market.SymbolSnapshot{Price: 100}

	cd.MarkTraded("BTCUSDT")

	now = base.Add(4 * time.Minute)
	ok, detail := tr.checkGate(buyIntent(0.9), snap, lim)
	assert.False(t, ok)
	assert.Contains(t, detail, "cooldown")

	// 恰好到达冷却时长放行。
	now = base.Add(5 * time.Minute)
	ok, _ = tr.checkGate(buyIntent(0.9), snap, lim)
	assert.True(t, ok)

	// 其他交易对不受影响。
	other := decision.Intent{Symbol: "ETHUSDT", Side: decision.SideBuy, QuoteUSDT: 10, Confidence: 0.9, HasConfidence: true}
	now = base.Add(time.Minute)
	ok, _ = tr.checkGate(other, snap, lim)
	assert.True(t, ok)
}
