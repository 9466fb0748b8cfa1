package trader

import (
	"sync"
	"time"
)

// CooldownTracker 记录每个交易对最近一次成功下单的时间，
// 用于抑制同一交易对的高频追单。进程内存态，重启后清零。
type CooldownTracker struct {
	mu   sync.RWMutex
	last map[string]time.Time
	now  func() time.Time
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Ready 判断交易对是否已脱离冷却期。恰好到达冷却时长时放行。
func (c *CooldownTracker) Ready(symbol string, cooldown time.Duration) bool {
	if cooldown <= 0 {
		return true
	}
	c.mu.RLock()
	last, ok := c.last[symbol]
	c.mu.RUnlock()
	if !ok {
		return true
	}
	return c.now().Sub(last) >= cooldown
}

// MarkTraded 在订单提交成功后调用。提交失败与 monitor 模式不触发冷却。
func (c *CooldownTracker) MarkTraded(symbol string) {
	c.mu.Lock()
	c.last[symbol] = c.now()
	c.mu.Unlock()
}

// Snapshot 导出各交易对的最近成交时间，供状态接口查询。
func (c *CooldownTracker) Snapshot() map[string]time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]time.Time, len(c.last))
	for k, v := range c.last {
		out[k] = v
	}
	return out
}
