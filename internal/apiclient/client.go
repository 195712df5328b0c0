package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client talks JSON to the Heimdall API under a fixed base URL. It is safe
// for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	stats   *Stats
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client rooted at baseURL (e.g. http://localhost:8002/api/v1).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		stats:   &Stats{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Stats returns a snapshot of the call counters.
func (c *Client) Stats() Snapshot { return c.stats.Snapshot() }

type rawResponse struct {
	status    int
	body      []byte
	truncated bool
}

// call performs one request and returns the raw body. A non-nil error is
// always a *NetworkError; HTTP status is left to the caller.
func (c *Client) call(ctx context.Context, method, path string, body any) (*rawResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &NetworkError{Op: "encode request", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &NetworkError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &NetworkError{Op: "read body", Err: err}
	}
	if len(data) > maxBodyBytes {
		return &rawResponse{status: resp.StatusCode, truncated: true}, nil
	}
	return &rawResponse{status: resp.StatusCode, body: data}, nil
}

// Do performs a request and decodes a 2xx body into T. It never returns a
// Go error: 4xx/5xx responses are KindHTTPError and transport failures are
// KindNetworkError. Every call updates the client's counters exactly once.
func Do[T any](ctx context.Context, c *Client, method, path string, body any) Result[T] {
	start := time.Now()
	res := do[T](ctx, c, method, path, body)
	c.stats.record(res.OK())
	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Stringer("kind", res.Kind),
		zap.Int("status", res.Status),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) Result[T] {
	var res Result[T]

	raw, err := c.call(ctx, method, path, body)
	if err != nil {
		res.Kind = KindNetworkError
		res.Err = err
		return res
	}
	res.Status = raw.status

	if raw.truncated {
		res.Kind = KindHTTPError
		res.Err = &HTTPError{Status: raw.status, Detail: fmt.Sprintf("response too large (over %d bytes)", maxBodyBytes)}
		return res
	}

	if raw.status < 200 || raw.status > 299 {
		res.Kind = KindHTTPError
		res.Err = &HTTPError{Status: raw.status, Body: string(raw.body), Detail: errorDetail(raw.body)}
		return res
	}

	if len(bytes.TrimSpace(raw.body)) > 0 {
		if err := json.Unmarshal(raw.body, &res.Value); err != nil {
			res.Kind = KindHTTPError
			res.Err = &HTTPError{
				Status: raw.status,
				Body:   string(raw.body),
				Detail: fmt.Sprintf("decode response: %v", err),
			}
			return res
		}
	}
	res.Kind = KindOK
	return res
}

// errorDetail extracts the message from the backend's error envelope,
// which is either {"detail": "..."} or {"error": "..."}.
func errorDetail(body []byte) string {
	var env struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	switch d := env.Detail.(type) {
	case string:
		return d
	case nil:
	default:
		if b, err := json.Marshal(d); err == nil {
			return string(b)
		}
	}
	return env.Error
}
