package risk

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"arena/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Snapshot 注册表对外的只读快照。
type Snapshot struct {
	Profile  Profile
	Version  int64
	LoadedAt time.Time
}

// Registry 管理风控 profile：以主配置为兜底，
// 可选地从独立文件加载覆盖项并监听热更新。
type Registry struct {
	base Profile
	path string
	v    *viper.Viper

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewRegistry 构建注册表。path 为空时只用静态兜底，不做监听。
func NewRegistry(base Profile, path string) (*Registry, error) {
	r := &Registry{base: base, path: strings.TrimSpace(path)}
	r.snapshot = Snapshot{Profile: base, Version: 1, LoadedAt: time.Now()}
	if r.path == "" {
		return r, nil
	}
	v := viper.New()
	v.SetConfigFile(r.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read risk profile failed: %w", err)
	}
	r.v = v
	if err := r.reload(); err != nil {
		return nil, err
	}
	v.OnConfigChange(func(evt fsnotify.Event) {
		if err := r.reload(); err != nil {
			logger.Errorf("risk profile 热更新失败: %v", err)
			return
		}
		snap := r.Snapshot()
		logger.Infof("risk profile 已热更新 (version=%d): rsi_buy_max=%.1f max_volatility=%.3f",
			snap.Version, snap.Profile.RSIBuyMax, snap.Profile.MaxVolatility)
	})
	v.WatchConfig()
	return r, nil
}

// Snapshot 返回当前生效的阈值集合。
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

func (r *Registry) reload() error {
	if err := r.v.ReadInConfig(); err != nil {
		return fmt.Errorf("re-read risk profile failed: %w", err)
	}
	var override Profile
	if err := r.v.Unmarshal(&override); err != nil {
		return fmt.Errorf("parse risk profile failed: %w", err)
	}
	merged := r.base.merge(override)
	if err := validateProfile(merged); err != nil {
		return err
	}
	r.mu.Lock()
	r.snapshot = Snapshot{
		Profile:  merged,
		Version:  r.snapshot.Version + 1,
		LoadedAt: time.Now(),
	}
	r.mu.Unlock()
	return nil
}

// validateProfile 拒绝会导致门控失效的阈值组合，保留上一份快照。
func validateProfile(p Profile) error {
	if p.RSIBuyMax <= 0 || p.RSIBuyMax > 100 {
		return fmt.Errorf("risk profile: rsi_buy_max out of range: %.2f", p.RSIBuyMax)
	}
	if p.RSISellMin < 0 || p.RSISellMin >= 100 {
		return fmt.Errorf("risk profile: rsi_sell_min out of range: %.2f", p.RSISellMin)
	}
	if p.MaxVolatility <= 0 {
		return fmt.Errorf("risk profile: max_volatility must be positive: %.4f", p.MaxVolatility)
	}
	if p.MaxTradeUSDT <= 0 || p.MaxPositionUSDT <= 0 {
		return fmt.Errorf("risk profile: trade/position caps must be positive")
	}
	return nil
}
