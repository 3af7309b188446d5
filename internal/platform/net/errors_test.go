package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "civlink/internal/platform/errors"
	pnet "civlink/internal/platform/net"
)

func TestHTTPStatus(t *testing.T) {
	if got := pnet.HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) = %d", got)
	}

	if got := pnet.HTTPStatus(perr.New(perr.ErrorCodeUnauthorized, "actor token expired")); got != http.StatusUnauthorized {
		t.Fatalf("HTTPStatus(unauthorized) = %d", got)
	}

	if got := pnet.HTTPStatus(perr.New(perr.ErrorCodeNotFound, "citizen not found")); got != http.StatusNotFound {
		t.Fatalf("HTTPStatus(not found) = %d", got)
	}

	// a foreign error lands in the server-error range
	if got := pnet.HTTPStatus(errors.New("registry unreachable")); got < 400 || got > 599 {
		t.Fatalf("HTTPStatus(foreign) = %d, want 4xx/5xx", got)
	}
}
