package repo

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	perr "civlink/internal/platform/errors"
	"civlink/internal/platform/store"
	"civlink/internal/services/linking/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueLinks fakes the unique index on links.online_identity_id:
// the first insert for an online id wins, every later one trips 23505
type uniqueLinks struct {
	mu     sync.Mutex
	nextID int64
	seen   map[int64]bool
}

func newUniqueLinks() *uniqueLinks { return &uniqueLinks{seen: map[int64]bool{}} }

func (f *uniqueLinks) Exec(_ context.Context, _ string, _ ...any) (store.CommandTag, error) {
	return nil, nil
}

func (f *uniqueLinks) Query(_ context.Context, _ string, _ ...any) (store.Rows, error) {
	return nil, nil
}

func (f *uniqueLinks) QueryRow(_ context.Context, _ string, args ...any) store.Row {
	onlineID, _ := args[0].(int64)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[onlineID] {
		return errRow{err: &pgconn.PgError{Code: "23505", ConstraintName: "links_online_identity_id_key"}}
	}
	f.seen[onlineID] = true
	f.nextID++
	return insertedRow{id: f.nextID}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type insertedRow struct{ id int64 }

func (r insertedRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.id
	*(dest[1].(*time.Time)) = time.Now()
	return nil
}

func TestInsertLink_TranslatesUniqueViolation(t *testing.T) {
	s := NewPG().Bind(newUniqueLinks())
	link := domain.Link{OnlineID: 7, LocalID: 12, Method: domain.MethodManual, Confidence: 0.97, ActorID: "officer-17"}

	first, err := s.InsertLink(context.Background(), link)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("expected returned id and timestamp, got %+v", first)
	}

	_, err = s.InsertLink(context.Background(), link)
	if !perr.IsCode(err, perr.ErrorCodeAlreadyLinked) {
		t.Fatalf("expected AlreadyLinked on the second insert, got %v", err)
	}
	if !strings.Contains(err.Error(), "already linked") {
		t.Fatalf("expected the error to say already linked, got %q", err.Error())
	}
}

func TestInsertLink_ConcurrentSameOnlineID(t *testing.T) {
	s := NewPG().Bind(newUniqueLinks())
	link := domain.Link{OnlineID: 9, LocalID: 31, Method: domain.MethodComposite, Confidence: 1, ActorID: "officer-17"}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := s.InsertLink(context.Background(), link)
			errs <- err
		}()
	}

	var won, dup int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			won++
		case perr.IsCode(err, perr.ErrorCodeAlreadyLinked):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 || dup != 1 {
		t.Fatalf("expected exactly one winner and one AlreadyLinked, got won=%d dup=%d", won, dup)
	}
}
