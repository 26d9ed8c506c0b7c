package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/lodge/pkg/logger"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))
}

func TestInjectedLoggerIsReturned(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")

	ctx := logger.InjectLogger(context.Background(), reqLog)
	logger.WithCtx(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := logger.NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	slog.New(h).With("order_id", "o-1").Info("placed")

	assert.Contains(t, a.String(), "order_id=o-1")
	assert.Contains(t, b.String(), `"order_id":"o-1"`)
}
