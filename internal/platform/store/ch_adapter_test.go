package store

import (
	"context"
	"testing"
)

// TestCHAdapter_InsertRejectsUnknownShape guards the seam contract: audit
// writers hand the adapter [][]any in table column order, anything else is
// a programming error surfaced immediately
func TestCHAdapter_InsertRejectsUnknownShape(t *testing.T) {
	t.Parallel()

	a := &clickhouseAdapter{}
	err := a.Insert(context.Background(), "search_audit", struct{}{})
	if err == nil {
		t.Fatalf("Insert expected error for non [][]any payload")
	}
}

// TestCHAdapter_PingNilInner fails loudly instead of dereferencing
func TestCHAdapter_PingNilInner(t *testing.T) {
	t.Parallel()

	var a *clickhouseAdapter
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("Ping expected error on nil adapter")
	}

	b := &clickhouseAdapter{}
	if err := b.Ping(context.Background()); err == nil {
		t.Fatalf("Ping expected error on nil inner client")
	}
}

type fakeCHRows struct {
	next   int
	closed bool
	cols   []string
}

func (f *fakeCHRows) Next() bool {
	f.next++
	return false
}
func (f *fakeCHRows) Scan(dest ...any) error { return nil }
func (f *fakeCHRows) Err() error             { return nil }
func (f *fakeCHRows) Close() error           { f.closed = true; return nil }
func (f *fakeCHRows) Columns() []string      { return f.cols }

// TestRowsAdapter_Delegates checks each method passes through and that
// Close drops the underlying error per the store.Rows contract
func TestRowsAdapter_Delegates(t *testing.T) {
	t.Parallel()

	f := &fakeCHRows{cols: []string{"at", "request_id"}}
	r := &rowsAdapter{r: f}

	if r.Next() {
		t.Fatalf("Next should be false on fake")
	}
	if f.next != 1 {
		t.Fatalf("Next did not delegate")
	}
	var v int
	if err := r.Scan(&v); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if r.Err() != nil {
		t.Fatalf("Err should be nil")
	}
	cols := r.Columns()
	if len(cols) != 2 || cols[0] != "at" {
		t.Fatalf("Columns mismatch: %#v", cols)
	}
	r.Close()
	if !f.closed {
		t.Fatalf("Close did not delegate to underlying rows")
	}
}
