package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

// Request is a call against the admin API. Path is relative to a base URL,
// for example "/api/permit-rules/42".
type Request struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
}

// Client calls the admin API through an ordered list of candidate base URLs.
//
// The first base URL that answers is remembered for the life of the client and
// is the only one tried afterwards. The remembered URL never expires: if it
// later becomes unreachable every call fails with a network error until Reset
// is called.
type Client struct {
	http       *resty.Client
	candidates []string
	cached     atomic.Pointer[string]
}

// NewClient builds a client for dc. timeout bounds each attempt against a
// single candidate; headers are sent with every request.
func NewClient(dc DeploymentContext, timeout time.Duration, headers map[string]string) (*Client, error) {
	candidates := dc.Candidates()
	if len(candidates) == 0 {
		return nil, errors.New("no candidate base URLs configured")
	}

	hc := resty.New().
		SetTimeout(timeout).
		SetLogger(restyLogger{}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeaders(headers)

	return &Client{http: hc, candidates: candidates}, nil
}

// Candidates returns the base URLs in the order they are tried on a cold client.
func (c *Client) Candidates() []string {
	out := make([]string, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// CachedBaseURL returns the base URL that last answered, if any.
func (c *Client) CachedBaseURL() (string, bool) {
	if p := c.cached.Load(); p != nil {
		return *p, true
	}
	return "", false
}

// Reset forgets the cached base URL so the next call walks every candidate again.
func (c *Client) Reset() {
	c.cached.Store(nil)
}

// Do performs req and decodes a JSON response into out. A 204 leaves out untouched.
//
// A non-2xx response stops the walk immediately and returns an *APIError with
// that status. Transport failures move on to the next candidate; when all of
// them fail the returned *APIError has status 0 and the last transport error.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	bases := c.candidates
	if cached, ok := c.CachedBaseURL(); ok {
		bases = []string{cached}
	}

	slog.Debug("api request", "method", method, "endpoint", req.Path)

	var lastErr error
	for _, base := range bases {
		resp, err := c.attempt(ctx, base, method, req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return newNetworkError(req.Path, ctxErr)
			}
			slog.Debug("api candidate unreachable", "base_url", base, "endpoint", req.Path, "error", err)
			lastErr = err
			continue
		}

		status := resp.StatusCode()
		slog.Debug("api response", "base_url", base, "endpoint", req.Path, "status", status)

		if status < 200 || status > 299 {
			return newStatusError(status, req.Path, resp.Body())
		}

		c.remember(base)

		if status == http.StatusNoContent {
			return nil
		}
		return decode(status, req.Path, resp.Body(), out)
	}

	slog.Error("api request failed on every candidate", "endpoint", req.Path, "candidates", len(bases), "error", lastErr)
	return newNetworkError(req.Path, lastErr)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) attempt(ctx context.Context, base, method string, req Request) (*resty.Response, error) {
	r := c.http.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	return r.Execute(method, base+req.Path)
}

// remember stores base unless it is already cached. Concurrent first calls may
// race; the last writer wins, which is fine because all candidates front the
// same backend.
func (c *Client) remember(base string) {
	if cur := c.cached.Load(); cur != nil && *cur == base {
		return
	}
	c.cached.Store(&base)
	slog.Info("api base URL selected", "base_url", base)
}

func decode(status int, endpoint string, body []byte, out any) error {
	if out == nil {
		if len(body) == 0 || json.Valid(body) {
			return nil
		}
		return &APIError{Status: status, Endpoint: endpoint, Message: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Status:   status,
			Endpoint: endpoint,
			Message:  string(body),
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// restyLogger routes resty's internal messages into slog at debug level so
// failover noise stays out of normal output.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { slog.Debug("resty: " + fmt.Sprintf(format, v...)) }
func (restyLogger) Warnf(format string, v ...any)  { slog.Debug("resty: " + fmt.Sprintf(format, v...)) }
func (restyLogger) Debugf(format string, v ...any) { slog.Debug("resty: " + fmt.Sprintf(format, v...)) }
