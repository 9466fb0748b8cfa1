package risk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"arena/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProfile() Profile {
	return FromConfig(config.RiskConfig{
		RSIBuyMax:         65,
		RSISellMin:        35,
		MaxVolatility:     0.12,
		CooldownSeconds:   300,
		MinConfidenceBuy:  0.65,
		MinConfidenceSell: 0.65,
	}, config.QuotaConfig{
		MaxTradeUSDT:    20,
		MaxPositionUSDT: 50,
	})
}

func TestProfileMergeKeepsBaseForZeroValues(t *testing.T) {
	merged := baseProfile().merge(Profile{RSIBuyMax: 70, MaxTradeUSDT: 15})

	assert.Equal(t, 70.0, merged.RSIBuyMax)
	assert.Equal(t, 15.0, merged.MaxTradeUSDT)
	// 未覆盖的字段保持兜底值。
	assert.Equal(t, 35.0, merged.RSISellMin)
	assert.Equal(t, 0.12, merged.MaxVolatility)
	assert.Equal(t, 300, merged.CooldownSeconds)
}

func TestProfileLimits(t *testing.T) {
	lim := baseProfile().Limits()
	assert.Equal(t, 5*time.Minute, lim.Cooldown)
	assert.Equal(t, 65.0, lim.RSIBuyMax)
	assert.Equal(t, 50.0, lim.MaxPositionUSDT)
}

func TestRegistryWithoutPathUsesStaticProfile(t *testing.T) {
	r, err := NewRegistry(baseProfile(), "")
	require.NoError(t, err)

	snap := r.Snapshot()
	assert.Equal(t, int64(1), snap.Version)
	assert.Equal(t, baseProfile(), snap.Profile)
}

func TestRegistryLoadsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risk_profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rsi_buy_max: 60\nmax_trade_usdt: 10\n"), 0o644))

	r, err := NewRegistry(baseProfile(), path)
	require.NoError(t, err)

	snap := r.Snapshot()
	assert.Equal(t, 60.0, snap.Profile.RSIBuyMax)
	assert.Equal(t, 10.0, snap.Profile.MaxTradeUSDT)
	assert.Equal(t, 35.0, snap.Profile.RSISellMin)
}

func TestRegistryRejectsBrokenOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risk_profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rsi_buy_max: 120\n"), 0o644))

	_, err := NewRegistry(baseProfile(), path)
	assert.Error(t, err)
}
