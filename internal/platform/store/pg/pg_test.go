package pg

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"civlink/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatal("Open accepted an unparsable DSN")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	// mutates the global newPool seam
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(ctx context.Context, _ *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("pool refused")
	})

	// DSN must parse so Open reaches newPool
	dsn := "postgres://civ:pw@db.internal:5432/civlink?sslmode=disable"
	if _, err := Open(context.Background(), Config{URL: dsn}, nil, nil); err == nil {
		t.Fatal("Open swallowed the newPool error")
	}
}

func TestOpen_SuccessPath_MutatorApplied(t *testing.T) {
	testkit.Serial(t)

	fake := &pgxpool.Pool{} // zero value, never Close it
	testkit.Swap(t, &newPool, func(ctx context.Context, _ *pgxpool.Config) (*pgxpool.Pool, error) {
		return fake, nil
	})

	var mutCalled atomic.Bool
	cfg := Config{URL: "postgres://civ:pw@db.internal:5432/civlink?sslmode=disable", MaxConns: 7, SlowMs: 500}
	p, err := Open(context.Background(), cfg, nil, func(pc *pgxpool.Config) {
		mutCalled.Store(true)
		if pc.MaxConns != cfg.MaxConns {
			t.Fatalf("MaxConns = %d, want %d", pc.MaxConns, cfg.MaxConns)
		}
		pc.MaxConnIdleTime = 42 * time.Second
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if !mutCalled.Load() {
		t.Fatal("pool config mutator never ran")
	}
	if p.SlowMs != cfg.SlowMs {
		t.Fatalf("SlowMs = %d, want %d", p.SlowMs, cfg.SlowMs)
	}
	if p.Pool == nil {
		t.Fatal("Pool is nil")
	}
}

func TestClose_NilSafeAndIdempotent(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close() // nil receiver

	p = &PG{} // nil inner pool
	p.Close()
	p.Close()
}
