package http_test

import (
	"encoding/json"
	gohttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lhttp "github.com/shashiranjanraj/lodge/pkg/http"
)

func TestSendsJSONWithHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.co", body["email"])

		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, err := lhttp.Post(srv.URL).
		Query("grant_type", "password").
		Bearer("tok").
		Body(map[string]string{"email": "a@b.co"}).
		Send()
	require.NoError(t, err)

	var out struct{ OK bool }
	require.NoError(t, resp.JSON(&out))
	assert.True(t, out.OK)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(gohttp.StatusBadGateway)
			return
		}
		w.WriteHeader(gohttp.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := lhttp.Get(srv.URL).Retry(3, time.Millisecond).Send()
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusNoContent, resp.StatusCode)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(gohttp.StatusBadRequest)
		w.Write([]byte(`{"msg":"bad"}`))
	}))
	defer srv.Close()

	resp, err := lhttp.Get(srv.URL).Retry(3, time.Millisecond).Send()
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	var se *lhttp.StatusError
	require.ErrorAs(t, resp.Throw(), &se)
	assert.Equal(t, gohttp.StatusBadRequest, se.StatusCode)
}
