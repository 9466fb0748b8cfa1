package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arena/internal/decision"
	"arena/internal/trader"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 数据库最多保留的周期记录条数，超出部分按时间淘汰。
const defaultRetention = 1000

// CycleRecord 一轮周期的领域形态，入库前转为 CycleRecordModel。
type CycleRecord struct {
	TraceID   string
	Mode      string
	Summary   string
	Decision  decision.RawDecision
	Results   []trader.OrderResult
	CreatedAt time.Time
}

// Store 基于 Gorm + SQLite 的周期记录存储。
type Store struct {
	db        *gorm.DB
	retention int
}

func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: 数据库路径不能为空")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&CycleRecordModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return &Store{db: db, retention: defaultRetention}, nil
}

// SaveCycle 写入一轮周期记录，随后淘汰超出保留上限的旧记录。
func (s *Store) SaveCycle(ctx context.Context, rec CycleRecord) error {
	decisionJSON, err := json.Marshal(rec.Decision)
	if err != nil {
		return fmt.Errorf("store: 序列化决策失败: %w", err)
	}
	resultsJSON, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("store: 序列化执行结果失败: %w", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	m := CycleRecordModel{
		TraceID:   rec.TraceID,
		Mode:      rec.Mode,
		Summary:   rec.Summary,
		Decision:  decisionJSON,
		Results:   resultsJSON,
		CreatedAt: createdAt,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("store: 写入周期记录失败: %w", err)
	}
	return s.prune(ctx)
}

// RecentSummaries 返回最近 limit 条摘要，按时间从旧到新排列，
// 直接拼进下一轮提示词作为短期记忆。
func (s *Store) RecentSummaries(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rows []CycleRecordModel
	err := s.db.WithContext(ctx).
		Select("summary", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: 读取周期摘要失败: %w", err)
	}
	out := make([]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Summary == "" {
			continue
		}
		out = append(out, fmt.Sprintf("[%s] %s", rows[i].CreatedAt.Format("01-02 15:04"), rows[i].Summary))
	}
	return out, nil
}

// RecentCycles 返回最近 limit 条完整记录（从新到旧），供状态接口查询。
func (s *Store) RecentCycles(ctx context.Context, limit int) ([]CycleRecordModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []CycleRecordModel
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: 读取周期记录失败: %w", err)
	}
	return rows, nil
}

func (s *Store) prune(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}
	var cutoff CycleRecordModel
	err := s.db.WithContext(ctx).
		Select("id").
		Order("id DESC").
		Offset(s.retention - 1).
		Limit(1).
		Take(&cutoff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: 查询淘汰水位失败: %w", err)
	}
	return s.db.WithContext(ctx).
		Where("id < ?", cutoff.ID).
		Delete(&CycleRecordModel{}).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
