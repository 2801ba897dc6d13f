// Package api is the remote data gateway: one method per REST call of the
// catalog service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"Pokedex/internal/cli/errs"
)

// DefaultTimeout bounds a single request unless WithTimeout says otherwise.
const DefaultTimeout = 15 * time.Second

// Client talks to the catalog service. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	cache   *DetailCache
	logger  *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the base http.Client, e.g. one with a custom transport.
// The client is copied; hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCacheTTL sets how long detail responses stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = NewDetailCache(ttl) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for baseURL, e.g. http://localhost:5050/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
		cache:   NewDetailCache(0),
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// своя копия клиента: таймаут не должен протечь в чужой http.Client
	hc := *c.http
	hc.Timeout = c.timeout
	c.http = &hc
	return c
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// getJSON выполняет GET и декодирует тело ответа в out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Mark(errors.Wrapf(err, "decode GET %s", path), errs.ErrNetwork)
	}
	return nil
}

// postJSON sends payload as a JSON POST and returns the raw response body.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

// do performs one request. Any transport failure or non-2xx status is
// returned marked ErrNetwork; 404 is additionally marked ErrNotFound.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s %s", method, path)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errs.Network(err, "%s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("request failed", "method", method, "path", path, "error", err)
		return nil, errs.Network(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Network(err, "read %s %s", method, path)
	}
	c.logger.Debugw("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := errors.Mark(errors.Newf("%s %s: status %d", method, path, resp.StatusCode), errs.ErrNetwork)
		if resp.StatusCode == http.StatusNotFound {
			err = errors.Mark(err, errs.ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}
