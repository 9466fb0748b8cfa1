package config

// Config 是 arena 的主配置载体。
type Config struct {
	App     AppConfig     `toml:"app"`
	Market  MarketConfig  `toml:"market"`
	Binance BinanceConfig `toml:"binance"`
	AI      AIConfig      `toml:"ai"`
	Risk    RiskConfig    `toml:"risk"`
	Quota   QuotaConfig   `toml:"quota"`
	Exec    ExecConfig    `toml:"exec"`
	Store   StoreConfig   `toml:"store"`
	Notify  NotifyConfig  `toml:"notify"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
	LLMLog   string `toml:"llm_log_path"`
	LLMDump  bool   `toml:"llm_dump_payload"`
}

// MarketConfig 行情拉取与指标参数。
type MarketConfig struct {
	Symbols      []string `toml:"symbols"`
	Quote        string   `toml:"quote"`
	HistInterval string   `toml:"hist_interval"`
	HistLimit    int      `toml:"hist_limit"`
	RSIPeriod    int      `toml:"rsi_period"`
}

type BinanceConfig struct {
	APIKey         string `toml:"api_key"`
	APISecret      string `toml:"api_secret"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ModelPreset 描述可复用的模型接入配置。
type ModelPreset struct {
	APIURL string `toml:"api_url"`
	Model  string `toml:"model"`
}

// AIConfig 模型调用相关设置。Provider 指向 presets 中的一项（deepseek/qwen），
// APIURL/Model 显式给出时覆盖 preset。
type AIConfig struct {
	Provider       string                 `toml:"provider"`
	Model          string                 `toml:"model"`
	APIURL         string                 `toml:"api_url"`
	APIKey         string                 `toml:"api_key"`
	TimeoutSeconds int                    `toml:"timeout_seconds"`
	MaxRetries     int                    `toml:"max_retries"`
	Temperature    float64                `toml:"temperature"`
	Presets        map[string]ModelPreset `toml:"presets"`
}

// RiskConfig 指标门控与冷却阈值。ProfilePath 非空时这些阈值
// 由外部 profile 文件提供并支持热更新，此处的值作为初始兜底。
type RiskConfig struct {
	RSIBuyMax         float64 `toml:"rsi_buy_max"`
	RSISellMin        float64 `toml:"rsi_sell_min"`
	MaxVolatility     float64 `toml:"max_volatility"`
	CooldownSeconds   int     `toml:"trade_cooldown_sec"`
	MinConfidenceBuy  float64 `toml:"min_confidence_buy"`
	MinConfidenceSell float64 `toml:"min_confidence_sell"`
	ProfilePath       string  `toml:"profile_path"`
}

// QuotaConfig 资金额度上限（quote 计价）。
type QuotaConfig struct {
	MaxTradeUSDT    float64 `toml:"max_trade_usdt"`
	MaxPositionUSDT float64 `toml:"max_position_usdt_per_symbol"`
}

// ExecConfig 执行模式与轮询节奏。Mode ∈ monitor|test|live。
type ExecConfig struct {
	Mode            string `toml:"mode"`
	IntervalSeconds int    `toml:"interval_seconds"`
	RunImmediately  bool   `toml:"run_immediately"`
}

type StoreConfig struct {
	Path        string `toml:"path"`
	MemoryItems int    `toml:"memory_items"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}
