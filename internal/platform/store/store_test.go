package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

// TestOpen_AllDisabled_LeavesSeamsNil verifies Open with no backends enabled
func TestOpen_AllDisabled_LeavesSeamsNil(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s == nil {
		t.Fatalf("Open returned nil store")
	}
	if s.PG != nil || s.Registry != nil || s.CH != nil {
		t.Fatalf("unexpected seams set PG=%T Registry=%T CH=%T", s.PG, s.Registry, s.CH)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store returned error: %v", err)
	}
}

// TestOpen_PGEnabled_BadURL_BubblesError covers the PG error path
func TestOpen_PGEnabled_BadURL_BubblesError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{
		PG: PGConfig{
			Enabled:     true,
			URL:         "://bad", // parse error inside pg.Open
			MaxConns:    1,
			SlowQueryMs: 0,
			LogSQL:      false,
		},
	}

	s, err := Open(ctx, cfg)
	if err == nil {
		t.Fatalf("expected Open error for bad PG URL, got store=%#v", s)
	}
	if s != nil {
		t.Fatalf("expected nil store on error, got %#v", s)
	}
}

// TestOpen_RegistryEnabled_BadURL_BubblesError covers the registry pool error path
func TestOpen_RegistryEnabled_BadURL_BubblesError(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Registry: PGConfig{
			Enabled: true,
			URL:     "://bad",
		},
	}

	s, err := Open(context.Background(), cfg)
	if err == nil {
		t.Fatalf("expected Open error for bad registry URL, got store=%#v", s)
	}
}

// TestOpen_CHEnabled_BadDSN_BubblesError covers the CH DSN parse error path
func TestOpen_CHEnabled_BadDSN_BubblesError(t *testing.T) {
	t.Parallel()

	cfg := Config{
		CH: CHConfig{
			Enabled: true,
			URL:     "://bad",
		},
	}

	s, err := Open(context.Background(), cfg)
	if err == nil {
		t.Fatalf("expected Open error for bad CH DSN, got store=%#v", s)
	}
}

// TestOpen_OptionsApplied_NoPanicOnWithLogger exercises the WithLogger option path
func TestOpen_OptionsApplied_NoPanicOnWithLogger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Build a zero-value zerolog.Logger (valid, no-op)
	var zl zerolog.Logger

	s, err := Open(ctx, Config{}, WithLogger(zl))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s == nil {
		t.Fatalf("Open returned nil store")
	}
	// Close on empty store should be fine
	if e := s.Close(ctx); e != nil {
		t.Fatalf("Close on empty store returned error: %v", e)
	}
}

// TestOpen_MultipleBackends_ErrShortCircuits verifies we stop on the first failing backend path
func TestOpen_MultipleBackends_ErrShortCircuits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{
		PG: PGConfig{
			Enabled: true,
			URL:     "://bad", // will fail first
		},
		CH: CHConfig{
			Enabled: true,
			URL:     "clickhouse://localhost:9000",
		},
	}

	s, err := Open(ctx, cfg)
	if err == nil {
		t.Fatalf("expected Open error on first failing backend")
	}
	if s != nil {
		t.Fatalf("expected nil store when Open fails early, got %#v", s)
	}
}
