package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"arena/internal/logger"
	"arena/internal/risk"
	"arena/internal/store"
	"arena/internal/trader"

	"github.com/gin-gonic/gin"
)

// Server 提供只读的状态查询接口：健康检查、最近周期与冷却状态。
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig 描述状态服务的依赖。
type ServerConfig struct {
	Addr     string
	Mode     string
	Store    *store.Store
	Cooldown *trader.CooldownTracker
	Risk     *risk.Registry
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("http server requires a cycle store")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9980"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": cfg.Mode})
	})

	api := router.Group("/api")
	api.GET("/cycles", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		rows, err := cfg.Store.RecentCycles(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cycles": renderCycles(rows)})
	})
	api.GET("/cooldowns", func(c *gin.Context) {
		out := map[string]string{}
		if cfg.Cooldown != nil {
			for sym, at := range cfg.Cooldown.Snapshot() {
				out[sym] = at.Format(time.RFC3339)
			}
		}
		c.JSON(http.StatusOK, gin.H{"cooldowns": out})
	})
	api.GET("/risk", func(c *gin.Context) {
		if cfg.Risk == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "risk registry not configured"})
			return
		}
		snap := cfg.Risk.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"version":   snap.Version,
			"loaded_at": snap.LoadedAt.Format(time.RFC3339),
			"profile":   snap.Profile,
		})
	})

	return &Server{addr: cfg.Addr, router: router}, nil
}

type cycleView struct {
	TraceID   string          `json:"trace_id"`
	Mode      string          `json:"mode"`
	Summary   string          `json:"summary"`
	Decision  json.RawMessage `json:"decision,omitempty"`
	Results   json.RawMessage `json:"results,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func renderCycles(rows []store.CycleRecordModel) []cycleView {
	out := make([]cycleView, 0, len(rows))
	for _, r := range rows {
		out = append(out, cycleView{
			TraceID:   r.TraceID,
			Mode:      r.Mode,
			Summary:   r.Summary,
			Decision:  json.RawMessage(r.Decision),
			Results:   json.RawMessage(r.Results),
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		c.Next()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s",
			method, path, c.Writer.Status(), c.ClientIP(), time.Since(start))
	}
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Start 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
