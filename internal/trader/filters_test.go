package trader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToStep(t *testing.T) {
	assert.Equal(t, 0.123, RoundToStep(0.12345, 0.001))
	assert.Equal(t, 5.0, RoundToStep(5.999, 1))
	assert.Equal(t, 0.0, RoundToStep(0.0004, 0.001))
	// 二进制浮点容易出错的组合。
	assert.Equal(t, 0.3, RoundToStep(0.3, 0.1))
	// 无步进约束时原样返回。
	assert.Equal(t, 1.2345, RoundToStep(1.2345, 0))
}

func TestCheckFilter(t *testing.T) {
	f := ExchangeFilter{MinQty: 0.001, StepSize: 0.001, MinNotional: 10}

	t.Run("数量取整为零", func(t *testing.T) {
		ok, detail := checkFilter(0, 100, f, true)
		assert.False(t, ok)
		assert.Contains(t, detail, "zero")
	})

	t.Run("低于最小数量", func(t *testing.T) {
		ok, _ := checkFilter(0.0005, 100000, ExchangeFilter{MinQty: 0.001}, true)
		assert.False(t, ok)
	})

	t.Run("低于最小名义金额", func(t *testing.T) {
		ok, detail := checkFilter(0.05, 100, f, true)
		assert.False(t, ok)
		assert.Contains(t, detail, "minNotional")
	})

	t.Run("全部通过", func(t *testing.T) {
		ok, _ := checkFilter(0.2, 100, f, true)
		assert.True(t, ok)
	})

	t.Run("约束缺失时按兜底名义金额检查", func(t *testing.T) {
		ok, _ := checkFilter(0.04, 100, ExchangeFilter{}, false)
		assert.False(t, ok) // 4 < 5
		ok, _ = checkFilter(0.06, 100, ExchangeFilter{}, false)
		assert.True(t, ok)
	})
}

func TestClampBuyQuote(t *testing.T) {
	lim := testLimits() // MaxTrade 20, MaxPosition 50

	t.Run("单笔上限", func(t *testing.T) {
		assert.Equal(t, 20.0, clampBuyQuote(30, 0, 1000, lim))
	})

	t.Run("仓位剩余空间", func(t *testing.T) {
		// 已持有名义 45，仓位上限 50，哪怕请求 30 也只剩 5。
		assert.Equal(t, 5.0, clampBuyQuote(30, 45, 1000, lim))
	})

	t.Run("余额不足", func(t *testing.T) {
		assert.Equal(t, 8.0, clampBuyQuote(30, 0, 8, lim))
	})

	t.Run("额度耗尽", func(t *testing.T) {
		assert.LessOrEqual(t, clampBuyQuote(10, 60, 1000, lim), 0.0)
	})
}

func TestClampSellQty(t *testing.T) {
	assert.Equal(t, 1.5, clampSellQty(2, 1.5))
	assert.Equal(t, 1.0, clampSellQty(1, 1.5))
}
