// Package gateway is the only component that talks HTTP to the portal service.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/and161185/studentportal/internal/errs"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// Options configures a Gateway.
type Options struct {
	BaseURL string        // service root, e.g. http://localhost:5000
	Prefix  string        // API mount point, e.g. /api
	Timeout time.Duration // 0 = no timeout
	Client  *http.Client  // optional; a cookie jar is attached if it has none
	Logger  *zap.Logger
}

// Gateway sends JSON requests to the portal service and normalizes failures
// into *errs.RequestError. Session cookies persist in the client's jar for
// the lifetime of the Gateway.
type Gateway struct {
	base string
	hc   *http.Client
	log  *zap.Logger
}

// New builds a Gateway. A client without a cookie jar is copied and given
// an in-memory one.
func New(opts Options) (*Gateway, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("gateway: empty base url")
	}
	hc := opts.Client
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("gateway: cookie jar: %w", err)
		}
		// the caller's client is left untouched
		cp := *hc
		cp.Jar = jar
		hc = &cp
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if p := strings.Trim(opts.Prefix, "/"); p != "" {
		base += "/" + p
	}
	return &Gateway{base: base, hc: hc, log: log}, nil
}

// URL returns the absolute URL for an endpoint path.
func (g *Gateway) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.base + path
}

// Send performs one call. body, when non-nil, is encoded as JSON. On success it
// returns the raw JSON body (nil for an empty body). Every failure is a
// *errs.RequestError; the call is never retried.
func (g *Gateway) Send(ctx context.Context, method, path string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.URL(path), rd)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	rid := uuid.Must(uuid.NewV4()).String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, rid)

	start := time.Now()
	resp, err := g.hc.Do(req)
	if err != nil {
		g.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", rid),
			zap.Duration("dur", time.Since(start)),
			zap.Error(err),
		)
		return nil, &errs.RequestError{Kind: errs.KindNetwork, Message: errs.FallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	g.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", rid),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)
	if err != nil {
		return nil, &errs.RequestError{Kind: errs.KindNetwork, Status: resp.StatusCode, Message: errs.FallbackMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.RequestError{
			Kind:    errs.KindStatus,
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, &errs.RequestError{
			Kind:    errs.KindDecode,
			Status:  resp.StatusCode,
			Message: errs.FallbackMessage,
			Err:     fmt.Errorf("invalid json body (%d bytes)", len(data)),
		}
	}
	return data, nil
}

// errorMessage extracts the "error" string field of an error body.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return errs.FallbackMessage
	}
	v := gjson.GetBytes(body, "error")
	if v.Type != gjson.String || strings.TrimSpace(v.Str) == "" {
		return errs.FallbackMessage
	}
	return v.Str
}
