package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"arena/internal/config"
	"arena/internal/decision"
	bingw "arena/internal/gateway/binance"
	"arena/internal/gateway/provider"
	"arena/internal/logger"
	"arena/internal/market"
	"arena/internal/notifier"
	"arena/internal/pkg/symbol"
	"arena/internal/risk"
	"arena/internal/store"
	"arena/internal/trader"
	httpapi "arena/internal/transport/http"
)

// App 应用级编排：配置 -> 依赖装配 -> 周期调度与状态服务。
type App struct {
	cfg     *config.Config
	symbols []string
	mode    trader.Mode

	gateway   *bingw.Gateway
	marketSvc *market.Service
	engine    *decision.Engine
	trader    *trader.Trader
	riskReg   *risk.Registry
	cycles    *store.Store
	notify    notifier.TextNotifier
	httpSrv   *httpapi.Server

	filterMu sync.Mutex
	filters  map[string]trader.ExchangeFilter
}

// New 根据配置装配应用对象（不启动）。
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	symbols := symbol.ResolveList(cfg.Market.Symbols, cfg.Market.Quote)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no valid trading symbols after normalization")
	}

	gw := bingw.New(bingw.Config{
		APIKey:      cfg.Binance.APIKey,
		APISecret:   cfg.Binance.APISecret,
		BaseURL:     cfg.Binance.BaseURL,
		HTTPTimeout: time.Duration(cfg.Binance.TimeoutSeconds) * time.Second,
	})
	marketSvc := market.NewService(gw, cfg.Market.HistInterval, cfg.Market.HistLimit, cfg.Market.RSIPeriod)

	model, err := provider.FromConfig(&cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("building model provider failed: %w", err)
	}
	engine := decision.NewEngine(model)

	riskReg, err := risk.NewRegistry(risk.FromConfig(cfg.Risk, cfg.Quota), cfg.Risk.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("building risk registry failed: %w", err)
	}

	cycles, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening cycle store failed: %w", err)
	}

	cooldown := trader.NewCooldownTracker()
	trd := trader.New(gw, cooldown)

	var notify notifier.TextNotifier = notifier.Noop{}
	if cfg.Notify.Telegram.Enabled {
		notify = notifier.NewTelegram(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
	}

	a := &App{
		cfg:       cfg,
		symbols:   symbols,
		mode:      trader.Mode(cfg.Exec.Mode),
		gateway:   gw,
		marketSvc: marketSvc,
		engine:    engine,
		trader:    trd,
		riskReg:   riskReg,
		cycles:    cycles,
		notify:    notify,
	}

	if cfg.App.HTTPAddr != "" {
		srv, err := httpapi.NewServer(httpapi.ServerConfig{
			Addr:     cfg.App.HTTPAddr,
			Mode:     cfg.Exec.Mode,
			Store:    cycles,
			Cooldown: cooldown,
			Risk:     riskReg,
		})
		if err != nil {
			return nil, fmt.Errorf("building http server failed: %w", err)
		}
		a.httpSrv = srv
	}
	return a, nil
}

// symbolFilters 懒加载并缓存交易对约束。拉取失败不阻塞周期，
// 本轮按约束缺失处理（仅兜底名义金额检查）。
func (a *App) symbolFilters(ctx context.Context) map[string]trader.ExchangeFilter {
	a.filterMu.Lock()
	defer a.filterMu.Unlock()
	if a.filters != nil {
		return a.filters
	}
	filters, err := a.gateway.SymbolFilters(ctx, a.symbols)
	if err != nil {
		logger.Warnf("拉取交易对约束失败，本轮使用兜底校验: %v", err)
		return nil
	}
	a.filters = filters
	return filters
}
