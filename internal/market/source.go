package market

import "context"

// Source 市场数据来源（行情协作方）。
type Source interface {
	FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error)

	FetchHistory(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)
}

// Service 按周期拉取价格与历史，产出只读快照。
type Service struct {
	src       Source
	interval  string
	histLimit int
	rsiPeriod int
}

func NewService(src Source, interval string, histLimit, rsiPeriod int) *Service {
	if interval == "" {
		interval = "3m"
	}
	if histLimit <= 0 {
		histLimit = 20
	}
	if rsiPeriod <= 0 {
		rsiPeriod = 14
	}
	return &Service{src: src, interval: interval, histLimit: histLimit, rsiPeriod: rsiPeriod}
}

// GetSnapshot 拉取实时价格与历史收盘价并计算指标。
// 行情接口整体失败返回 error（上游按「跳过本轮」处理）；
// 单个交易对的历史拉取失败仅导致该交易对指标缺失。
func (s *Service) GetSnapshot(ctx context.Context, symbols []string) (Snapshot, error) {
	prices, err := s.src.FetchPrices(ctx, symbols)
	if err != nil {
		return nil, err
	}
	history := make(map[string][]float64, len(symbols))
	for _, sym := range symbols {
		if prices[sym] <= 0 {
			continue
		}
		candles, err := s.src.FetchHistory(ctx, sym, s.interval, s.histLimit)
		if err != nil {
			continue
		}
		history[sym] = Closes(candles)
	}
	return BuildSnapshot(prices, history, s.rsiPeriod), nil
}
