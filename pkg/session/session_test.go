package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/pkg/cache"
	"github.com/shashiranjanraj/lodge/pkg/session"
)

type line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func TestSessionSurvivesAcrossRequests(t *testing.T) {
	cache.Use(cache.NewMemoryStore())
	mw := session.Middleware(session.DefaultOptions())

	write := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		require.NoError(t, sess.SetJSON("cart", []line{{"p1", 2}}))
		require.NoError(t, sess.Save(w))
	}))
	rec := httptest.NewRecorder()
	write.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "lodge_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	var got []line
	read := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		session.FromCtx(r).GetJSON("cart", &got)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	read.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []line{{"p1", 2}}, got)
}

func TestUnchangedSessionSetsNoCookie(t *testing.T) {
	cache.Use(cache.NewMemoryStore())
	h := session.Middleware(session.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = session.FromCtx(r).Save(w)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Result().Cookies())
}
