// Package logger provides the structured, levelled logger used across lodge.
//
// Handlers and services log through WithCtx so every line carries the
// request_id set by the Logger middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shashiranjanraj/lodge/config"
)

var L *slog.Logger

// closers are sinks that need flushing on shutdown.
var closers []io.Closer

func init() {
	L = slog.New(consoleHandler(os.Stdout))
	slog.SetDefault(L)
}

func level() slog.Level {
	switch strings.ToLower(config.Get("LOG_LEVEL", "")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if config.IsProduction() {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

func consoleHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: level()}
	if config.IsProduction() {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Setup rebuilds the base logger after config has loaded. When LOG_MONGO_URI
// is set, records are also shipped to MongoDB.
func Setup() error {
	handler := consoleHandler(os.Stdout)

	if uri := config.Get("LOG_MONGO_URI", ""); uri != "" {
		mh, err := NewMongoHandler(uri,
			config.Get("LOG_MONGO_DB", "lodge"),
			config.Get("LOG_MONGO_COLLECTION", "logs"),
			level(),
		)
		if err != nil {
			L.Warn("logger: mongo sink disabled", "error", err)
		} else {
			closers = append(closers, mh)
			handler = NewMultiHandler(handler, mh)
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return nil
}

// Close flushes every sink registered by Setup.
func Close() {
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}

type ctxKey struct{}

// WithCtx returns the request logger stored by InjectLogger, or the base
// logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx for WithCtx to find.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
