package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arena/internal/logger"
	"arena/internal/scheduler"
	"arena/internal/trader"

	"golang.org/x/sync/errgroup"
)

// Run 启动状态服务与周期调度，阻塞直到 ctx 取消或任一组件出错。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}

	if a.mode.Submits() {
		if err := a.gateway.SyncTime(ctx); err != nil {
			return fmt.Errorf("time sync with exchange failed: %w", err)
		}
	}

	logger.Infof("arena 启动: mode=%s symbols=%v interval=%ds quote=%s",
		a.mode, a.symbols, a.cfg.Exec.IntervalSeconds, a.cfg.Market.Quote)
	if a.mode == trader.ModeLive {
		logger.Warnf("live 模式已启用，将提交真实订单")
	}

	group, ctx := errgroup.WithContext(ctx)

	if a.httpSrv != nil {
		group.Go(func() error {
			logger.Infof("状态服务监听 %s", a.httpSrv.Addr())
			if err := a.httpSrv.Start(ctx); err != nil {
				return fmt.Errorf("http server error: %w", err)
			}
			return nil
		})
	}

	group.Go(func() error {
		defer a.Close()
		sched := scheduler.NewIntervalScheduler(ctx, time.Duration(a.cfg.Exec.IntervalSeconds)*time.Second)
		sched.RunImmediately = a.cfg.Exec.RunImmediately
		sched.Start(func() { a.runCycle(ctx) })
		return ctx.Err()
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Close() {
	if a.cycles != nil {
		if err := a.cycles.Close(); err != nil {
			logger.Warnf("关闭周期存储失败: %v", err)
		}
	}
}
