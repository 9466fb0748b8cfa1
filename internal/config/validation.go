package config

import "fmt"

func validate(c *Config) error {
	if err := validateMarket(&c.Market); err != nil {
		return err
	}
	if err := validateAI(&c.AI); err != nil {
		return err
	}
	if err := validateRisk(&c.Risk); err != nil {
		return err
	}
	if err := validateExec(&c.Exec, &c.Binance); err != nil {
		return err
	}
	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.BotToken == "" || c.Notify.Telegram.ChatID == "" {
			return fmt.Errorf("telegram notify enabled but bot_token/chat_id missing")
		}
	}
	return nil
}

func validateMarket(m *MarketConfig) error {
	if len(m.Symbols) == 0 {
		return fmt.Errorf("market.symbols cannot be empty")
	}
	if m.Quote == "" {
		return fmt.Errorf("market.quote cannot be empty")
	}
	return nil
}

func validateAI(a *AIConfig) error {
	if a.APIKey == "" {
		return fmt.Errorf("ai.api_key is required")
	}
	if a.APIURL == "" || a.Model == "" {
		preset, ok := a.Presets[a.Provider]
		if !ok {
			return fmt.Errorf("unknown ai.provider %q and no explicit api_url/model given", a.Provider)
		}
		if a.APIURL == "" {
			a.APIURL = preset.APIURL
		}
		if a.Model == "" {
			a.Model = preset.Model
		}
	}
	return nil
}

func validateRisk(r *RiskConfig) error {
	if r.RSIBuyMax <= 0 || r.RSIBuyMax > 100 {
		return fmt.Errorf("risk.rsi_buy_max must be in (0, 100], got %.2f", r.RSIBuyMax)
	}
	if r.RSISellMin < 0 || r.RSISellMin >= 100 {
		return fmt.Errorf("risk.rsi_sell_min must be in [0, 100), got %.2f", r.RSISellMin)
	}
	if r.MinConfidenceBuy < 0 || r.MinConfidenceBuy > 1 {
		return fmt.Errorf("risk.min_confidence_buy must be in [0, 1], got %.2f", r.MinConfidenceBuy)
	}
	if r.MinConfidenceSell < 0 || r.MinConfidenceSell > 1 {
		return fmt.Errorf("risk.min_confidence_sell must be in [0, 1], got %.2f", r.MinConfidenceSell)
	}
	return nil
}

func validateExec(e *ExecConfig, b *BinanceConfig) error {
	switch e.Mode {
	case "monitor", "test", "live":
	default:
		return fmt.Errorf("exec.mode must be monitor, test or live, got %q", e.Mode)
	}
	// monitor 模式仍需行情接口，但 key 可以为空；下单模式必须配置密钥。
	if e.Mode != "monitor" && (b.APIKey == "" || b.APISecret == "") {
		return fmt.Errorf("exec.mode=%s requires binance.api_key and binance.api_secret", e.Mode)
	}
	return nil
}
