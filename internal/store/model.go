package store

import (
	"time"

	"gorm.io/datatypes"
)

// CycleRecordModel 一轮决策周期的持久化形态。
// Decision 与 Results 以 JSON 原文落库，Summary 是给后续提示词用的一行摘要。
type CycleRecordModel struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	TraceID   string         `gorm:"column:trace_id;uniqueIndex"`
	Mode      string         `gorm:"column:mode"`
	Summary   string         `gorm:"column:summary"`
	Decision  datatypes.JSON `gorm:"column:decision"`
	Results   datatypes.JSON `gorm:"column:results"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
}

func (CycleRecordModel) TableName() string { return "cycle_records" }
