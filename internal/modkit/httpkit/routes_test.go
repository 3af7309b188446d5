package httpkit

import (
	"net/http"
	"testing"

	phttp "civlink/internal/platform/net/http"
)

// prefixRouter extends the recording router with prefix and middleware
// bookkeeping for MountUnder assertions
type prefixRouter struct {
	recRouter
	prefixes  []string
	useCalls  int
	lastMWLen int
}

func (f *prefixRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}

func (f *prefixRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.lastMWLen = len(mw)
}

func TestMountUnder_AppliesMiddlewareAndMounts(t *testing.T) {
	root := &prefixRouter{}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	MountUnder(root, "/api/v1", []func(http.Handler) http.Handler{mwA, mwB}, func(sub Router) {
		sub.Get("/identity/search", phttp.Handle(func(r *http.Request) phttp.Response {
			return phttp.NoContent()
		}))
	})

	if len(root.prefixes) != 1 || root.prefixes[0] != "/api/v1" {
		t.Fatalf("Route prefixes = %v, want [/api/v1]", root.prefixes)
	}
	if root.useCalls != 1 || root.lastMWLen != 2 {
		t.Fatalf("Use calls=%d len=%d, want one call with 2 middleware", root.useCalls, root.lastMWLen)
	}

	got := root.only(t)
	if got.verb != "GET" || got.path != "/identity/search" {
		t.Fatalf("mounted %s %s, want GET /identity/search", got.verb, got.path)
	}
}

func TestMountUnder_NoMiddlewareSkipsUse(t *testing.T) {
	root := &prefixRouter{}

	MountUnder(root, "/x", nil, func(sub Router) {
		sub.Delete("/links/7", phttp.Handle(func(r *http.Request) phttp.Response {
			return phttp.NoContent()
		}))
	})

	if root.useCalls != 0 {
		t.Fatalf("Use should not run for empty middleware, got %d calls", root.useCalls)
	}
	if len(root.prefixes) != 1 || root.prefixes[0] != "/x" {
		t.Fatalf("Route prefixes = %v, want [/x]", root.prefixes)
	}
	got := root.only(t)
	if got.verb != "DELETE" || got.path != "/links/7" {
		t.Fatalf("mounted %s %s, want DELETE /links/7", got.verb, got.path)
	}
}
