package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	lodgehttp "github.com/shashiranjanraj/lodge/pkg/http"
)

// MockTransport answers outbound requests from canned steps instead of the
// network. Steps match on method and URL prefix, first match wins.
type MockTransport struct {
	mu       sync.Mutex
	steps    []*step
	requests []*http.Request
	bodies   []string
}

type step struct {
	method string
	prefix string
	status int
	body   string
	calls  int
}

func NewMockTransport() *MockTransport { return &MockTransport{} }

// On registers a canned response. An empty method matches any method.
func (mt *MockTransport) On(method, urlPrefix string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.steps = append(mt.steps, &step{method: strings.ToUpper(method), prefix: urlPrefix, status: status, body: body})
	return mt
}

// Install swaps the transport into the shared outbound client until the
// test ends.
func (mt *MockTransport) Install(t testing.TB) *MockTransport {
	t.Helper()
	lodgehttp.DefaultClient.Transport = mt
	t.Cleanup(lodgehttp.ResetTransport)
	return mt
}

func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.requests = append(mt.requests, req)
	mt.bodies = append(mt.bodies, body)

	for _, s := range mt.steps {
		if s.method != "" && s.method != req.Method {
			continue
		}
		if !strings.HasPrefix(req.URL.String(), s.prefix) {
			continue
		}
		s.calls++
		return &http.Response{
			StatusCode: s.status,
			Status:     fmt.Sprintf("%d %s", s.status, http.StatusText(s.status)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(s.body)),
			Request:    req,
		}, nil
	}
	return nil, fmt.Errorf("testkit: no mock for %s %s", req.Method, req.URL)
}

// Requests returns every request seen so far, in order.
func (mt *MockTransport) Requests() []*http.Request {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]*http.Request(nil), mt.requests...)
}

// Body returns the body of the i-th request.
func (mt *MockTransport) Body(i int) string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.bodies[i]
}

// AssertAllCalled returns an error for every step that never matched.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, s := range mt.steps {
		if s.calls == 0 {
			errs = append(errs, fmt.Errorf("testkit: mock %s %s was never called", s.method, s.prefix))
		}
	}
	return errs
}
