// Package repo provides the resolve audit sink over ClickHouse.
package repo

import (
	"context"
	"time"

	"civlink/internal/platform/store"
)

// AuditRow is one search audit event in column order of search_audit
type AuditRow struct {
	At                time.Time
	RequestID         string
	ElapsedMs         int64
	FieldsPresent     []string
	HypocorismApplied bool
	ResultCount       int64
}

// AuditSink appends search audit rows
type AuditSink interface {
	Write(ctx context.Context, row AuditRow) error
}

// NewCH returns an audit sink over the ClickHouse seam
// a nil seam yields a no-op sink so audit never blocks search
func NewCH(ch store.Clickhouse) AuditSink {
	if ch == nil {
		return noopSink{}
	}
	return &chSink{ch: ch}
}

type chSink struct{ ch store.Clickhouse }

func (s *chSink) Write(ctx context.Context, row AuditRow) error {
	return s.ch.Insert(ctx, "search_audit", [][]any{{
		row.At,
		row.RequestID,
		row.ElapsedMs,
		row.FieldsPresent,
		row.HypocorismApplied,
		row.ResultCount,
	}})
}

type noopSink struct{}

func (noopSink) Write(context.Context, AuditRow) error { return nil }
