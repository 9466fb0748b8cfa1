package risk

import (
	"time"

	"arena/internal/config"
	"arena/internal/trader"
)

// Profile 一份完整的风控阈值集合。字段与配置文件中的 risk 段同名，
// 便于静态配置与热更新 profile 共用一套映射。
type Profile struct {
	RSIBuyMax         float64 `mapstructure:"rsi_buy_max" yaml:"rsi_buy_max"`
	RSISellMin        float64 `mapstructure:"rsi_sell_min" yaml:"rsi_sell_min"`
	MaxVolatility     float64 `mapstructure:"max_volatility" yaml:"max_volatility"`
	CooldownSeconds   int     `mapstructure:"trade_cooldown_sec" yaml:"trade_cooldown_sec"`
	MinConfidenceBuy  float64 `mapstructure:"min_confidence_buy" yaml:"min_confidence_buy"`
	MinConfidenceSell float64 `mapstructure:"min_confidence_sell" yaml:"min_confidence_sell"`
	MaxTradeUSDT      float64 `mapstructure:"max_trade_usdt" yaml:"max_trade_usdt"`
	MaxPositionUSDT   float64 `mapstructure:"max_position_usdt_per_symbol" yaml:"max_position_usdt_per_symbol"`
}

// FromConfig 由主配置组装初始 profile。
func FromConfig(r config.RiskConfig, q config.QuotaConfig) Profile {
	return Profile{
		RSIBuyMax:         r.RSIBuyMax,
		RSISellMin:        r.RSISellMin,
		MaxVolatility:     r.MaxVolatility,
		CooldownSeconds:   r.CooldownSeconds,
		MinConfidenceBuy:  r.MinConfidenceBuy,
		MinConfidenceSell: r.MinConfidenceSell,
		MaxTradeUSDT:      q.MaxTradeUSDT,
		MaxPositionUSDT:   q.MaxPositionUSDT,
	}
}

// Limits 转换为执行层使用的阈值快照。
func (p Profile) Limits() trader.Limits {
	return trader.Limits{
		RSIBuyMax:         p.RSIBuyMax,
		RSISellMin:        p.RSISellMin,
		MaxVolatility:     p.MaxVolatility,
		Cooldown:          time.Duration(p.CooldownSeconds) * time.Second,
		MinConfidenceBuy:  p.MinConfidenceBuy,
		MinConfidenceSell: p.MinConfidenceSell,
		MaxTradeUSDT:      p.MaxTradeUSDT,
		MaxPositionUSDT:   p.MaxPositionUSDT,
	}
}

// merge 用 override 中的正值覆盖基础 profile，零值表示沿用兜底。
func (p Profile) merge(override Profile) Profile {
	out := p
	if override.RSIBuyMax > 0 {
		out.RSIBuyMax = override.RSIBuyMax
	}
	if override.RSISellMin > 0 {
		out.RSISellMin = override.RSISellMin
	}
	if override.MaxVolatility > 0 {
		out.MaxVolatility = override.MaxVolatility
	}
	if override.CooldownSeconds > 0 {
		out.CooldownSeconds = override.CooldownSeconds
	}
	if override.MinConfidenceBuy > 0 {
		out.MinConfidenceBuy = override.MinConfidenceBuy
	}
	if override.MinConfidenceSell > 0 {
		out.MinConfidenceSell = override.MinConfidenceSell
	}
	if override.MaxTradeUSDT > 0 {
		out.MaxTradeUSDT = override.MaxTradeUSDT
	}
	if override.MaxPositionUSDT > 0 {
		out.MaxPositionUSDT = override.MaxPositionUSDT
	}
	return out
}
