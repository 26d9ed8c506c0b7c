package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Result is a recorded response with the envelope already decoded.
type Result struct {
	Code    int               `json:"-"`
	Header  http.Header       `json:"-"`
	Body    []byte            `json:"-"`
	Cookies []*http.Cookie    `json:"-"`
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Decode unmarshals the envelope's data field into dest.
func (r *Result) Decode(t testing.TB, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, dest), "data: %s", r.Data)
}

// Call fires one request at h. body may be nil, a string or any value to
// be sent as JSON. headers are alternating key/value pairs.
func Call(t testing.TB, h http.Handler, method, url string, body interface{}, headers ...string) *Result {
	t.Helper()

	var rd io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(v)
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, url, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := &Result{Code: rec.Code, Header: rec.Header(), Body: rec.Body.Bytes(), Cookies: rec.Result().Cookies()}
	if len(res.Body) > 0 && json.Valid(res.Body) {
		_ = json.Unmarshal(res.Body, res)
	}
	return res
}

// AssertJSONEqual compares two JSON documents ignoring key order and
// whitespace.
func AssertJSONEqual(t testing.TB, expected string, actual []byte) bool {
	t.Helper()

	var exp, act interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &exp), "expected is not valid JSON")
	if !assert.NoError(t, json.Unmarshal(actual, &act), "actual is not valid JSON\nbody: %s", actual) {
		return false
	}
	return assert.Equal(t, exp, act)
}
