// Package api is the HTTP client for the platform's admin REST endpoints.
//
// All requests carry the session cookie (cookie-jar), a generated request id,
// and go through a shared client-side rate limiter so a misbehaving refresh
// loop cannot hammer the backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	// lastRequestID is exposed for the audit log; it is only read after the
	// corresponding call returns, so no locking is needed on the UI thread.
	lastRequestID string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client; tests use this to point at
// an httptest server with a shared jar. A client without a jar inherits the
// default one so session cookies keep replaying.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h.Jar == nil {
			h.Jar = c.http.Jar
		}
		c.http = h
	}
}

// WithTimeout caps the total time of each request, body read included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: empty base URL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		// Generous default; panels refetch on intervals and we want the cap
		// to bite only on runaway loops.
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// LastRequestID returns the id sent with the most recent request.
func (c *Client) LastRequestID() string { return c.lastRequestID }

// errorBody is the wire shape of every non-2xx response.
type errorBody struct {
	Message string `json:"message"`
}

// do sends the request and decodes a 2xx JSON body into out (out may be nil
// for endpoints with empty success bodies). A "successful" HTTP exchange with
// a non-2xx status is always an error; the body is never treated as data.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: method, URL: c.baseURL + path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: method, URL: c.baseURL + path, Err: err}
	}
	reqID := uuid.NewString()
	c.lastRequestID = reqID
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method, URL: c.baseURL + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &TransportError{Op: method, URL: c.baseURL + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &ServerError{
			Op:         method,
			URL:        c.baseURL + path,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(eb.Message),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A 2xx with an undecodable body is a server fault, not data.
		return &ServerError{
			Op:         method,
			URL:        c.baseURL + path,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", err),
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *Client) deleteJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}
