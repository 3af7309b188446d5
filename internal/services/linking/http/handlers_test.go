package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"civlink/internal/modkit/httpkit"
	"civlink/internal/platform/net/middleware"
	"civlink/internal/services/linking/domain"
)

// postRouter captures POST registrations so tests can drive handlers directly
type postRouter struct {
	handlers map[string]httpkit.Handler
}

func newPostRouter() *postRouter { return &postRouter{handlers: map[string]httpkit.Handler{}} }

func (f *postRouter) Post(path string, h httpkit.Handler) { f.handlers[path] = h }

func (f *postRouter) Get(string, httpkit.Handler)                  {}
func (f *postRouter) Put(string, httpkit.Handler)                  {}
func (f *postRouter) Patch(string, httpkit.Handler)                {}
func (f *postRouter) Delete(string, httpkit.Handler)               {}
func (f *postRouter) Head(string, httpkit.Handler)                 {}
func (f *postRouter) Options(string, httpkit.Handler)              {}
func (f *postRouter) Handle(string, stdhttp.Handler)               {}
func (f *postRouter) Use(...func(stdhttp.Handler) stdhttp.Handler) {}
func (f *postRouter) Group(fn func(httpkit.Router))                { fn(f) }
func (f *postRouter) Route(_ string, fn func(httpkit.Router))      { fn(f) }
func (f *postRouter) Mux() stdhttp.Handler                         { return stdhttp.NewServeMux() }

type stubCoordinator struct {
	actorID string
	calls   int
}

func (s *stubCoordinator) LinkExisting(_ context.Context, req domain.LinkRequest, actorID string) (domain.LinkResult, error) {
	s.calls++
	s.actorID = actorID
	return domain.LinkResult{Link: domain.Link{ID: 41, OnlineID: req.OnlineID, LocalID: req.LocalID}}, nil
}

func (s *stubCoordinator) CreateAndLink(_ context.Context, onlineID int64, actorID string) (domain.LinkResult, error) {
	s.calls++
	s.actorID = actorID
	return domain.LinkResult{Link: domain.Link{ID: 41, OnlineID: onlineID}}, nil
}

func (s *stubCoordinator) Reject(_ context.Context, _ int64, _, actorID string) (bool, error) {
	s.calls++
	s.actorID = actorID
	return true, nil
}

// mount registers the endpoints and wraps the requested one in the actor
// middleware, the same shape the common stack gives it in production
func mount(t *testing.T, svc domain.CoordinatorPort, path string) stdhttp.Handler {
	t.Helper()
	r := newPostRouter()
	Register(r, svc)
	h, ok := r.handlers[path]
	if !ok {
		t.Fatalf("no handler mounted at %s, have %v", path, r.handlers)
	}
	return middleware.Actor()(stdhttp.HandlerFunc(h))
}

func postJSON(h stdhttp.Handler, path, body, actor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set("X-Actor-ID", actor)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestLink_ActorHeaderReachesService(t *testing.T) {
	svc := &stubCoordinator{}
	h := mount(t, svc, "/link")

	rr := postJSON(h, "/link", `{"online_id":7,"local_id":12,"method":"Manual","confidence":0.9}`, "officer-17")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if svc.actorID != "officer-17" {
		t.Fatalf("expected actor officer-17 at the service, got %q", svc.actorID)
	}
}

func TestLink_MissingActorRejected(t *testing.T) {
	svc := &stubCoordinator{}
	h := mount(t, svc, "/link")

	rr := postJSON(h, "/link", `{"online_id":7,"local_id":12,"method":"Manual","confidence":0.9}`, "")
	if rr.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if svc.calls != 0 {
		t.Fatalf("service must not run without an actor, got %d calls", svc.calls)
	}

	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if !strings.Contains(env.Error, "X-Actor-ID") {
		t.Fatalf("expected the error to name the missing header, got %q", env.Error)
	}
}

func TestCreateLinkAndReject_RequireActor(t *testing.T) {
	cases := []struct {
		path string
		body string
	}{
		{"/create-link", `{"online_id":9}`},
		{"/reject", `{"online_id":9,"reason":"document mismatch"}`},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			svc := &stubCoordinator{}
			h := mount(t, svc, tc.path)

			if rr := postJSON(h, tc.path, tc.body, ""); rr.Code != stdhttp.StatusUnauthorized {
				t.Fatalf("expected 401 without actor, got %d", rr.Code)
			}
			if svc.calls != 0 {
				t.Fatalf("service must not run without an actor")
			}

			rr := postJSON(h, tc.path, tc.body, "officer-17")
			if rr.Code != stdhttp.StatusOK {
				t.Fatalf("expected 200 with actor, got %d body=%s", rr.Code, rr.Body.String())
			}
			if svc.actorID != "officer-17" {
				t.Fatalf("expected actor officer-17, got %q", svc.actorID)
			}
		})
	}
}
