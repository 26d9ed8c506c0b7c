package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/lodge/pkg/reqid"
)

func serve(req *http.Request) (seen string, rec *httptest.ResponseRecorder) {
	rec = httptest.NewRecorder()
	reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	})).ServeHTTP(rec, req)
	return seen, rec
}

func TestGeneratesID(t *testing.T) {
	seen, rec := serve(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestHonoursUpstreamID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, "edge-123")
	seen, _ := serve(req)
	assert.Equal(t, "edge-123", seen)
}

func TestRejectsOversizedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, strings.Repeat("x", 500))
	seen, _ := serve(req)
	assert.NotEqual(t, strings.Repeat("x", 500), seen)
}
