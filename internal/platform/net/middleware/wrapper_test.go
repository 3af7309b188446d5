package middleware_test

import (
	"compress/flate"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"civlink/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWrappers_ReturnHandlers(t *testing.T) {
	wrappers := map[string]func(http.Handler) http.Handler{
		"RequestID":        middleware.RequestID(),
		"RealIP":           middleware.RealIP(),
		"Recover":          middleware.Recover(),
		"Logger":           middleware.Logger(),
		"Timeout":          middleware.Timeout(time.Second),
		"NoCache":          middleware.NoCache(),
		"RedirectSlashes":  middleware.RedirectSlashes(),
		"StripSlashes":     middleware.StripSlashes(),
		"AllowContentType": middleware.AllowContentType("application/json"),
		"SetHeader":        middleware.SetHeader("X-Service", "civlink"),
		"ContentCharset":   middleware.ContentCharset("utf-8"),
		"Throttle":         middleware.Throttle(10),
		"ThrottleBacklog":  middleware.ThrottleBacklog(10, 10, time.Second),
		"Heartbeat":        middleware.Heartbeat("/healthz"),
	}
	for name, mw := range wrappers {
		if mw == nil {
			t.Fatalf("%s() returned nil", name)
		}
	}
}

func TestCompress_EncodesWhenAccepted(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		// body large enough that the encoder kicks in
		_, _ = io.WriteString(w, strings.Repeat("a", 4<<10))
	})

	mw := middleware.Compress(flate.DefaultCompression)
	req := httptest.NewRequest(http.MethodGet, "/identity/search", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	mw(h).ServeHTTP(rr, req)

	if rr.Result().Header.Get("Content-Encoding") == "" {
		t.Fatal("Content-Encoding not set on compressible response")
	}
}

func TestCORS_DefaultsFillMissing(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"https://portal.gov.example"},
		// everything else empty, exercises the defaults
	})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/links", nil)
	req.Header.Set("Origin", "https://portal.gov.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	rr := httptest.NewRecorder()
	cors(h).ServeHTTP(rr, req)

	if rr.Code != 200 && rr.Code != 204 {
		t.Fatalf("preflight returned %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("Access-Control-Allow-Methods missing")
	}
	if rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatal("Access-Control-Allow-Headers missing")
	}
}

func TestDefaults_BundleRuns(t *testing.T) {
	chain := middleware.Defaults()
	if len(chain) == 0 {
		t.Fatal("Defaults() returned an empty chain")
	}

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := chimw.GetReqID(r.Context()); rid == "" {
			t.Fatal("request id missing from context")
		}

		// RealIP may rewrite RemoteAddr to a bare IP
		if r.RemoteAddr == "" {
			t.Fatal("RemoteAddr is empty")
		}
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err != nil || host == "" {
			if ip := net.ParseIP(r.RemoteAddr); ip == nil {
				t.Fatalf("RemoteAddr = %q, want ip or host:port", r.RemoteAddr)
			}
		}

		w.WriteHeader(200)
	})

	// first element is outermost
	var wrapped http.Handler = h
	for i := len(chain) - 1; i >= 0; i-- {
		wrapped = chain[i](wrapped)
	}

	req := httptest.NewRequest(http.MethodGet, "/links/pending", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "10.40.0.9")
	rr := httptest.NewRecorder()

	wrapped.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("chain returned %d", rr.Code)
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatal("NoCache did not set Cache-Control")
	}
}
