package binance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"arena/internal/logger"
	"arena/internal/market"
	"arena/internal/pkg/convert"
	"arena/internal/trader"

	"github.com/adshao/go-binance/v2"
)

const maxHistoryLimit = 1000

// Gateway 基于 go-binance SDK 的现货接入层：行情（market.Source）、
// 账户快照、交易对约束与市价单提交共用同一个客户端。
type Gateway struct {
	cfg    Config
	client *binance.Client
}

func New(cfg Config) *Gateway {
	final := cfg.withDefaults()
	client := binance.NewClient(final.APIKey, final.APISecret)
	client.BaseURL = final.BaseURL
	client.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &Gateway{cfg: final, client: client}
}

// SyncTime 校准与交易所的时间偏移，签名接口依赖本地时间戳。
func (g *Gateway) SyncTime(ctx context.Context) error {
	if _, err := g.client.NewSetServerTimeService().Do(ctx); err != nil {
		return fmt.Errorf("syncing server time failed: %w", err)
	}
	return nil
}

// FetchPrices 批量拉取最新成交价。
func (g *Gateway) FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbols are required")
	}
	prices, err := g.client.NewListPricesService().Symbols(symbols).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching prices failed: %w", err)
	}
	out := make(map[string]float64, len(prices))
	for _, p := range prices {
		if p == nil {
			continue
		}
		out[strings.ToUpper(p.Symbol)] = convert.ParseFloat(p.Price)
	}
	return out, nil
}

func (g *Gateway) FetchHistory(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	interval = strings.ToLower(strings.TrimSpace(interval))
	if interval == "" {
		return nil, fmt.Errorf("interval is required")
	}
	kls, err := g.client.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit).Do(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]market.Candle, 0, len(kls))
	for _, kl := range kls {
		if kl == nil {
			continue
		}
		out = append(out, market.Candle{
			OpenTime:  kl.OpenTime,
			CloseTime: kl.CloseTime,
			Open:      convert.ParseFloat(kl.Open),
			High:      convert.ParseFloat(kl.High),
			Low:       convert.ParseFloat(kl.Low),
			Close:     convert.ParseFloat(kl.Close),
			Volume:    convert.ParseFloat(kl.Volume),
		})
	}
	return out, nil
}

// FetchAccount 拉取现货账户快照。quote 对应的可用余额进入 QuoteFree，
// 其余非零资产进入 Holdings（以基础币为键）。
func (g *Gateway) FetchAccount(ctx context.Context, quote string) (trader.AccountState, error) {
	acct, err := g.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return trader.AccountState{}, fmt.Errorf("fetching account failed: %w", err)
	}
	quote = strings.ToUpper(strings.TrimSpace(quote))
	state := trader.AccountState{Holdings: make(map[string]float64)}
	for _, b := range acct.Balances {
		free := convert.ParseFloat(b.Free)
		if free <= 0 {
			continue
		}
		asset := strings.ToUpper(b.Asset)
		if asset == quote {
			state.QuoteFree = free
			continue
		}
		state.Holdings[asset] = free
	}
	return state, nil
}

// SymbolFilters 抽取各交易对的 LOT_SIZE 与名义金额约束。
// 交易所返回的 filter 是松散的 map，按 filterType 手工解析。
func (g *Gateway) SymbolFilters(ctx context.Context, symbols []string) (map[string]trader.ExchangeFilter, error) {
	info, err := g.client.NewExchangeInfoService().Symbols(symbols...).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching exchange info failed: %w", err)
	}
	out := make(map[string]trader.ExchangeFilter, len(info.Symbols))
	for _, s := range info.Symbols {
		var f trader.ExchangeFilter
		for _, raw := range s.Filters {
			switch raw["filterType"] {
			case "LOT_SIZE":
				f.MinQty = convert.ToFloat64(raw["minQty"])
				f.StepSize = convert.ToFloat64(raw["stepSize"])
			case "MIN_NOTIONAL":
				f.MinNotional = convert.ToFloat64(raw["minNotional"])
			case "NOTIONAL":
				// 现货新接口用 NOTIONAL 替代 MIN_NOTIONAL，两者字段名一致。
				if v := convert.ToFloat64(raw["minNotional"]); v > 0 {
					f.MinNotional = v
				}
			}
		}
		out[strings.ToUpper(s.Symbol)] = f
	}
	return out, nil
}

// SubmitMarketOrder 提交市价单。Test 为真时走交易所测试端点，
// 只做参数校验不产生成交。
func (g *Gateway) SubmitMarketOrder(ctx context.Context, req trader.OrderRequest) (trader.Fill, error) {
	qty := strconv.FormatFloat(req.Quantity, 'f', -1, 64)
	svc := g.client.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(binance.SideType(req.Side)).
		Type(binance.OrderTypeMarket).
		Quantity(qty)
	if req.Test {
		if err := svc.Test(ctx); err != nil {
			return trader.Fill{}, err
		}
		logger.Debugf("[binance] 测试单通过校验: %s %s %s", req.Side, req.Symbol, qty)
		return trader.Fill{Quantity: req.Quantity}, nil
	}
	res, err := svc.Do(ctx)
	if err != nil {
		return trader.Fill{}, err
	}
	return trader.Fill{
		OrderID:   res.OrderID,
		Quantity:  convert.ParseFloat(res.ExecutedQuantity),
		QuoteUSDT: convert.ParseFloat(res.CummulativeQuoteQuantity),
	}, nil
}
