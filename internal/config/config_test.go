package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
ai:
  api_key: sk-test
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "monitor", cfg.Exec.Mode)
	assert.Equal(t, 60, cfg.Exec.IntervalSeconds)
	assert.Equal(t, "USDT", cfg.Market.Quote)
	assert.Equal(t, 14, cfg.Market.RSIPeriod)
	assert.Equal(t, 65.0, cfg.Risk.RSIBuyMax)
	assert.Equal(t, 35.0, cfg.Risk.RSISellMin)
	assert.Equal(t, 0.12, cfg.Risk.MaxVolatility)
	assert.Equal(t, 300, cfg.Risk.CooldownSeconds)
	assert.Equal(t, 20.0, cfg.Quota.MaxTradeUSDT)
	assert.Equal(t, 50.0, cfg.Quota.MaxPositionUSDT)
	assert.Equal(t, 10, cfg.Store.MemoryItems)
	// provider 预设补全 api_url 与 model。
	assert.Equal(t, "deepseek", cfg.AI.Provider)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.AI.APIURL)
	assert.Equal(t, "deepseek-chat", cfg.AI.Model)
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	path := writeConfig(t, `
ai:
  api_key: sk-test
exec:
  mode: yolo
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "exec.mode")
}

func TestLoadRequiresKeysForTradingModes(t *testing.T) {
	path := writeConfig(t, `
ai:
  api_key: sk-test
exec:
  mode: live
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "binance.api_key")
}

func TestLoadRequiresAIKey(t *testing.T) {
	path := writeConfig(t, `
market:
  quote: USDT
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "ai.api_key")
}

func TestLoadUnknownProviderNeedsExplicitEndpoint(t *testing.T) {
	path := writeConfig(t, `
ai:
  api_key: sk-test
  provider: mystery
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "provider")

	path = writeConfig(t, `
ai:
  api_key: sk-test
  provider: mystery
  api_url: https://example.com/v1
  model: custom
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.AI.Model)
}
