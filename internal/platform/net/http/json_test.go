package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type approveReq struct {
	LinkID int64 `json:"link_id"`
}

func postApprove(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/links/approve", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), req
}

func TestJSONHandler_Success(t *testing.T) {
	t.Parallel()

	h := JSONHandler[approveReq](func(_ *http.Request, in approveReq) (any, error) {
		return map[string]int64{"approved": in.LinkID}, nil
	})

	rr, req := postApprove(`{"link_id":41}`)
	h(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, `"approved":41`) {
		t.Fatalf("body = %q", body)
	}
}

func TestJSONHandler_BindError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[approveReq](func(_ *http.Request, _ approveReq) (any, error) {
		t.Fatal("handler ran despite bind error")
		return nil, nil
	})

	rr, req := postApprove(`{`)
	h(rr, req)

	if rr.Code == http.StatusOK {
		t.Fatalf("bad json returned %d", rr.Code)
	}
	if !strings.Contains(strings.ToLower(rr.Body.String()), "error") {
		t.Fatalf("body = %q, want error text", rr.Body.String())
	}
}

func TestJSONHandler_HandlerError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[approveReq](func(_ *http.Request, _ approveReq) (any, error) {
		return nil, errors.New("link already approved")
	})

	rr, req := postApprove(`{"link_id":41}`)
	h(rr, req)

	if rr.Code == http.StatusOK {
		t.Fatalf("handler error returned %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "link already approved") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
