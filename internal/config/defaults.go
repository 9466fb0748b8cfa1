package config

import "strings"

// applyDefaults 填充未显式配置的字段。
func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}

	if len(c.Market.Symbols) == 0 {
		c.Market.Symbols = []string{"BTCUSDT", "ETHUSDT", "BNBUSDT", "SOLUSDT", "XRPUSDT"}
	}
	if c.Market.Quote == "" {
		c.Market.Quote = "USDT"
	}
	if c.Market.HistInterval == "" {
		c.Market.HistInterval = "3m"
	}
	if c.Market.HistLimit <= 0 {
		c.Market.HistLimit = 20
	}
	if c.Market.RSIPeriod <= 0 {
		c.Market.RSIPeriod = 14
	}

	if c.Binance.TimeoutSeconds <= 0 {
		c.Binance.TimeoutSeconds = 10
	}

	if c.AI.Provider == "" {
		c.AI.Provider = "deepseek"
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = 60
	}
	if c.AI.Temperature <= 0 {
		c.AI.Temperature = 0.5
	}
	if c.AI.Presets == nil {
		c.AI.Presets = map[string]ModelPreset{}
	}
	if _, ok := c.AI.Presets["deepseek"]; !ok {
		c.AI.Presets["deepseek"] = ModelPreset{APIURL: "https://api.deepseek.com/v1", Model: "deepseek-chat"}
	}
	if _, ok := c.AI.Presets["qwen"]; !ok {
		c.AI.Presets["qwen"] = ModelPreset{APIURL: "https://dashscope.aliyuncs.com/compatible-mode/v1", Model: "qwen-plus"}
	}

	if c.Risk.RSIBuyMax <= 0 {
		c.Risk.RSIBuyMax = 65
	}
	if c.Risk.RSISellMin <= 0 {
		c.Risk.RSISellMin = 35
	}
	if c.Risk.MaxVolatility <= 0 {
		c.Risk.MaxVolatility = 0.12
	}
	if c.Risk.CooldownSeconds <= 0 {
		c.Risk.CooldownSeconds = 300
	}
	if c.Risk.MinConfidenceBuy <= 0 {
		c.Risk.MinConfidenceBuy = 0.65
	}
	if c.Risk.MinConfidenceSell <= 0 {
		c.Risk.MinConfidenceSell = 0.65
	}

	if c.Quota.MaxTradeUSDT <= 0 {
		c.Quota.MaxTradeUSDT = 20
	}
	if c.Quota.MaxPositionUSDT <= 0 {
		c.Quota.MaxPositionUSDT = 50
	}

	c.Exec.Mode = strings.ToLower(strings.TrimSpace(c.Exec.Mode))
	if c.Exec.Mode == "" {
		c.Exec.Mode = "monitor"
	}
	if c.Exec.IntervalSeconds <= 0 {
		c.Exec.IntervalSeconds = 60
	}

	if c.Store.Path == "" {
		c.Store.Path = "data/arena.db"
	}
	if c.Store.MemoryItems <= 0 {
		c.Store.MemoryItems = 10
	}
}
