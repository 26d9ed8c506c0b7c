// Package http is the fluent, retrying HTTP client used for outbound calls
// (the auth gateway).
//
//	resp, err := http.Post(base + "/auth/v1/token").
//	    Query("grant_type", "password").
//	    Header("apikey", key).
//	    Body(creds).
//	    WithContext(ctx).
//	    Retry(3, 200*time.Millisecond).
//	    Send()
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"net/url"
	"time"

	"github.com/shashiranjanraj/lodge/pkg/logger"
)

var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient sends every request. Tests swap its Transport and restore it
// with ResetTransport.
var DefaultClient = &gohttp.Client{Transport: defaultTransport}

// ResetTransport restores the production transport on DefaultClient.
func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// Request is a fluent request builder.
type Request struct {
	method    string
	url       string
	query     url.Values
	headers   map[string]string
	body      interface{}
	timeout   time.Duration
	attempts  int
	retryWait time.Duration
	ctx       context.Context
}

func Get(url string) *Request    { return newRequest(gohttp.MethodGet, url) }
func Post(url string) *Request   { return newRequest(gohttp.MethodPost, url) }
func Put(url string) *Request    { return newRequest(gohttp.MethodPut, url) }
func Delete(url string) *Request { return newRequest(gohttp.MethodDelete, url) }

func newRequest(method, rawURL string) *Request {
	return &Request{
		method:    method,
		url:       rawURL,
		query:     url.Values{},
		headers:   map[string]string{"Accept": "application/json"},
		timeout:   10 * time.Second,
		attempts:  1,
		retryWait: 250 * time.Millisecond,
		ctx:       context.Background(),
	}
}

func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Bearer sets Authorization: Bearer <token>.
func (r *Request) Bearer(token string) *Request {
	return r.Header("Authorization", "Bearer "+token)
}

// Query adds a query-string parameter.
func (r *Request) Query(key, value string) *Request {
	r.query.Add(key, value)
	return r
}

// Body sets the payload; anything but string or []byte is sent as JSON.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// Timeout bounds each attempt.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Retry sets the total number of attempts and the initial backoff, which
// doubles after each failure. Only transport errors and 5xx/429 responses
// are retried.
func (r *Request) Retry(attempts int, wait time.Duration) *Request {
	if attempts < 1 {
		attempts = 1
	}
	r.attempts = attempts
	r.retryWait = wait
	return r
}

func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Send executes the request. A non-2xx response is returned without error;
// call Throw to turn it into one.
func (r *Request) Send() (*Response, error) {
	var (
		resp    *Response
		lastErr error
	)

	wait := r.retryWait
	for attempt := 1; attempt <= r.attempts; attempt++ {
		resp, lastErr = r.do()
		if lastErr == nil && !retryable(resp.StatusCode) {
			return resp, nil
		}
		if attempt == r.attempts {
			break
		}

		logger.WithCtx(r.ctx).Warn("http: retrying request",
			"method", r.method, "url", r.url, "attempt", attempt, "backoff", wait, "error", lastErr)

		select {
		case <-time.After(wait):
		case <-r.ctx.Done():
			return nil, r.ctx.Err()
		}
		wait *= 2
	}

	if lastErr != nil {
		return nil, fmt.Errorf("http: %s %s failed after %d attempt(s): %w", r.method, r.url, r.attempts, lastErr)
	}
	return resp, nil
}

func retryable(status int) bool {
	return status == gohttp.StatusTooManyRequests || status >= 500
}

func (r *Request) do() (*Response, error) {
	body, contentType, err := r.encodeBody()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	target := r.url
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := gohttp.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{StatusCode: res.StatusCode, Headers: res.Header, Raw: raw}, nil
}

func (r *Request) encodeBody() (io.Reader, string, error) {
	switch v := r.body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return bytes.NewBufferString(v), "text/plain", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("http: marshal body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

func (r *Response) Text() string { return string(r.Raw) }

// Throw returns a *StatusError for non-2xx responses.
func (r *Response) Throw() error {
	if r.OK() {
		return nil
	}
	return &StatusError{StatusCode: r.StatusCode, Body: string(r.Raw)}
}

// StatusError is a non-2xx response turned into an error.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http: unexpected status %d: %s", e.StatusCode, e.Body)
}
