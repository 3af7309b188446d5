// Package gateway implements the client for the external identity creation
// service. The remote response body is free-form JSON whose shape is probed
// by an ordered list of decoders, one per known shape
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	perr "civlink/internal/platform/errors"
	"civlink/internal/platform/logger"
	"civlink/internal/services/linking/domain"

	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"
)

// Config configures the gateway client
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Attempts uint
}

// Client implements domain.GatewayPort over HTTP
type Client struct {
	cfg  Config
	http *stdhttp.Client
	log  logger.Logger
}

// New constructs a gateway client
func New(cfg Config, log logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	return &Client{
		cfg:  cfg,
		http: &stdhttp.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// envelope is the gateway's fixed outer response shape
type envelope struct {
	IsSuccess       bool    `json:"isSuccess"`
	StatusCode      int     `json:"statusCode"`
	ResponseContent *string `json:"responseContent"`
	ErrorMessage    *string `json:"errorMessage"`
}

// httpError marks transport-level failures eligible for retry
type httpError struct{ status int }

func (e *httpError) Error() string { return fmt.Sprintf("gateway http status %d", e.status) }

// CreateIdentity implements domain.GatewayPort
// transport failures are retried with backoff; a delivered response is final
// so a successful creation is never submitted twice
func (c *Client) CreateIdentity(ctx context.Context, payload domain.CreationPayload) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeGateway, "marshal creation payload")
	}

	// one request id across retries so the remote side can deduplicate
	reqID := uuid.NewString()

	raw, err := retry.DoWithData(
		func() ([]byte, error) {
			req, err := stdhttp.NewRequestWithContext(
				ctx, stdhttp.MethodPost, c.cfg.BaseURL+"/identities", bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Request-Id", reqID)

			resp, err := c.http.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return nil, &httpError{status: resp.StatusCode}
			}
			return io.ReadAll(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.Attempts),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn().Uint("attempt", n+1).Err(err).Msg("gateway create retry")
		}),
	)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeGateway, "identity creation call failed")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeGateway, "decode gateway envelope")
	}
	if !env.IsSuccess {
		msg := ""
		if env.ErrorMessage != nil {
			msg = *env.ErrorMessage
		}
		return 0, perr.Gatewayf("gateway declined creation: status %d: %s", env.StatusCode, msg)
	}
	if env.ResponseContent == nil {
		return 0, perr.CreationParsef("gateway success with empty response content")
	}

	return ExtractLocalID(*env.ResponseContent)
}

// decoders probe response shapes in fixed priority order
var decoders = []struct {
	name string
	fn   func([]byte) (int64, bool)
}{
	{"result-nested", decodeResultNested},
	{"id-object", decodeIDObject},
	{"bare-number", decodeBareNumber},
	{"numeric-string", decodeNumericString},
}

// ExtractLocalID resolves the new local identity id from the gateway's
// free-form response content; the first decoder that parses wins
func ExtractLocalID(content string) (int64, error) {
	raw := []byte(strings.TrimSpace(content))
	for _, d := range decoders {
		if id, ok := d.fn(raw); ok {
			return id, nil
		}
	}
	return 0, perr.CreationParsef("no known gateway response shape matched")
}

// decodeResultNested handles {"result":{"Id":42}} and {"result":{"id":42}}
func decodeResultNested(raw []byte) (int64, bool) {
	var outer struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil || len(outer.Result) == 0 {
		return 0, false
	}
	return decodeIDObject(outer.Result)
}

// decodeIDObject handles a top-level object exposing Id or id
// json.Unmarshal matches field names case-insensitively, covering both keys
func decodeIDObject(raw []byte) (int64, bool) {
	var obj struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj.ID) == 0 {
		return 0, false
	}
	return parseNumber(obj.ID)
}

// decodeBareNumber handles a bare numeric JSON value
func decodeBareNumber(raw []byte) (int64, bool) {
	if len(raw) == 0 || raw[0] == '"' || raw[0] == '{' || raw[0] == '[' {
		return 0, false
	}
	return parseNumber(raw)
}

// decodeNumericString handles a numeric string, quoted or plain text
func decodeNumericString(raw []byte) (int64, bool) {
	s := strings.Trim(string(raw), `"`)
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseNumber accepts a JSON number or a quoted numeric string
func parseNumber(raw []byte) (int64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
