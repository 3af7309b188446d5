package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	perr "civlink/internal/platform/errors"
	"civlink/internal/platform/logger"
	"civlink/internal/services/linking/domain"
)

func TestExtractLocalID_AllShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{"result nested capital", `{"result":{"Id":42}}`},
		{"result nested lower", `{"result":{"id":42}}`},
		{"top level lower", `{"id":42}`},
		{"top level capital", `{"Id":42}`},
		{"bare number", `42`},
		{"quoted numeric string", `"42"`},
		{"plain numeric string", `42 `},
		{"nested quoted id", `{"result":{"Id":"42"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractLocalID(tc.content)
			if err != nil {
				t.Fatalf("ExtractLocalID(%q) error: %v", tc.content, err)
			}
			if got != 42 {
				t.Fatalf("ExtractLocalID(%q) = %d, want 42", tc.content, got)
			}
		})
	}
}

func TestExtractLocalID_NoShapeMatched(t *testing.T) {
	t.Parallel()

	for _, content := range []string{``, `{}`, `{"name":"x"}`, `"abc"`, `[42]`, `{"result":{}}`} {
		_, err := ExtractLocalID(content)
		if err == nil {
			t.Fatalf("ExtractLocalID(%q) expected error", content)
		}
		if !perr.IsCode(err, perr.ErrorCodeCreationParse) {
			t.Fatalf("ExtractLocalID(%q) code = %v, want CreationParse", content, perr.CodeOf(err))
		}
	}
}

func TestDecoderPriority_ResultWins(t *testing.T) {
	t.Parallel()

	// a body carrying both shapes resolves through the result shape first
	got, err := ExtractLocalID(`{"result":{"Id":7},"id":9}`)
	if err != nil {
		t.Fatalf("ExtractLocalID error: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want nested result id 7", got)
	}
}

func TestCreateIdentity_SuccessAndHeaders(t *testing.T) {
	t.Parallel()

	var gotReqID atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReqID.Store(r.Header.Get("X-Request-Id"))
		content := `{"result":{"Id":42}}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isSuccess":       true,
			"statusCode":      200,
			"responseContent": content,
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Attempts: 1}, *logger.Get())
	id, err := c.CreateIdentity(context.Background(), domain.CreationPayload{})
	if err != nil {
		t.Fatalf("CreateIdentity error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if rid, _ := gotReqID.Load().(string); rid == "" {
		t.Fatalf("X-Request-Id header not sent")
	}
}

func TestCreateIdentity_DeclinedIsGatewayError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isSuccess":    false,
			"statusCode":   422,
			"errorMessage": "duplicate national id",
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Attempts: 1}, *logger.Get())
	_, err := c.CreateIdentity(context.Background(), domain.CreationPayload{})
	if !perr.IsCode(err, perr.ErrorCodeGateway) {
		t.Fatalf("code = %v, want Gateway", perr.CodeOf(err))
	}
}

func TestCreateIdentity_RetriesTransportThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isSuccess":       true,
			"statusCode":      200,
			"responseContent": "42",
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Attempts: 3}, *logger.Get())
	id, err := c.CreateIdentity(context.Background(), domain.CreationPayload{})
	if err != nil {
		t.Fatalf("CreateIdentity error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if calls.Load() != 2 {
		t.Fatalf("gateway called %d times, want 2", calls.Load())
	}
}
