//go:build integration_pg
// +build integration_pg

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"civlink/internal/platform/logger"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func quietLogger() logger.Logger {
	return zerolog.New(io.Discard)
}

func openTestAdapter(t *testing.T, ctx context.Context, dsn string, logSQL bool) *pgAdapter {
	t.Helper()

	s := &Store{Log: quietLogger()}
	txr, err := openPG(ctx, PGConfig{URL: dsn, MaxConns: 2, LogSQL: logSQL}, s)
	if err != nil {
		t.Fatalf("openPG: %v", err)
	}
	a, ok := txr.(*pgAdapter)
	if !ok {
		t.Fatalf("openPG returned %T, want *pgAdapter", txr)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSQLAdapter_Integration_ExecQueryColumnsClose(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	// LogSQL on to exercise the tracer wiring
	a := openTestAdapter(t, ctx, dsn, true)

	if _, err := a.Exec(ctx, `
		CREATE TEMP TABLE online_citizens_it (
			id          SERIAL PRIMARY KEY,
			national_id TEXT NOT NULL
		)
	`); err != nil {
		t.Fatalf("create temp table: %v", err)
	}

	if _, err := a.Exec(ctx,
		`INSERT INTO online_citizens_it (national_id) VALUES ($1), ($2)`,
		"100200300", "400500600"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var first string
	if err := a.QueryRow(ctx,
		`SELECT national_id FROM online_citizens_it WHERE id=$1`, 1).Scan(&first); err != nil {
		t.Fatalf("queryrow scan: %v", err)
	}
	if first != "100200300" {
		t.Fatalf("national_id = %q", first)
	}

	rs, err := a.Query(ctx, `SELECT id, national_id FROM online_citizens_it ORDER BY id`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rs.Close()

	cols := rs.Columns()
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "national_id" {
		t.Fatalf("columns = %#v", cols)
	}

	var ids []int
	var docs []string
	for rs.Next() {
		var id int
		var doc string
		if err := rs.Scan(&id, &doc); err != nil {
			t.Fatalf("rows scan: %v", err)
		}
		ids = append(ids, id)
		docs = append(docs, doc)
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("rows err: %v", err)
	}
	if len(ids) != 2 || docs[0] != "100200300" || docs[1] != "400500600" {
		t.Fatalf("rows mismatch ids=%v docs=%v", ids, docs)
	}

	// Close twice is fine
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestSQLAdapter_Integration_TxCommitAndRollback(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	a := openTestAdapter(t, ctx, dsn, false)

	if _, err := a.Exec(ctx, `
		CREATE TEMP TABLE links_it (
			id     SERIAL PRIMARY KEY,
			status TEXT NOT NULL
		)
	`); err != nil {
		t.Fatalf("create temp table: %v", err)
	}

	// commit path
	if err := a.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO links_it (status) VALUES ('Approved')`)
		return err
	}); err != nil {
		t.Fatalf("tx commit: %v", err)
	}

	var count int
	if err := a.QueryRow(ctx,
		`SELECT COUNT(*) FROM links_it WHERE status='Approved'`).Scan(&count); err != nil {
		t.Fatalf("count committed: %v", err)
	}
	if count != 1 {
		t.Fatalf("committed count = %d, want 1", count)
	}

	// rollback path
	errAbort := errors.New("abort link")
	_ = a.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO links_it (status) VALUES ('Rejected')`); err != nil {
			return err
		}
		return errAbort
	})

	count = 0
	if err := a.QueryRow(ctx,
		`SELECT COUNT(*) FROM links_it WHERE status='Rejected'`).Scan(&count); err != nil {
		t.Fatalf("count rolled back: %v", err)
	}
	if count != 0 {
		t.Fatalf("rolled back count = %d, want 0", count)
	}
}
