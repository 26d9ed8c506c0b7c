package sse_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/pkg/sse"
)

func TestSendWritesEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stream", nil)

	s, err := sse.New(rec, req)
	require.NoError(t, err)
	require.NoError(t, s.Send("balance", map[string]string{"balance": "31.75"}))
	require.NoError(t, s.Comment("ping"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: balance\ndata: {\"balance\":\"31.75\"}\n\n: ping\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}

type plainWriter struct{ http.ResponseWriter }

func TestNewWithoutFlusher(t *testing.T) {
	_, err := sse.New(plainWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, sse.ErrUnsupported)
}
