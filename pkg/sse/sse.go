// Package sse writes Server-Sent Events.
//
//	stream, err := sse.New(w, r)
//	if err != nil { ... }
//	for reading := range readings {
//	    if err := stream.Send("balance", reading); err != nil { return }
//	}
package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnsupported means the ResponseWriter cannot flush.
var ErrUnsupported = errors.New("sse: streaming not supported")

// Stream is one client connection.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
}

// New sets the event-stream headers and flushes them so the client sees the
// stream open immediately.
func New(w http.ResponseWriter, r *http.Request) (*Stream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Stream{w: w, r: r, flusher: flusher}, nil
}

// Send writes a named event with a JSON payload.
func (s *Stream) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Comment writes a comment line, used as a keepalive.
func (s *Stream) Comment(msg string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", msg); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Done is closed when the client goes away.
func (s *Stream) Done() <-chan struct{} { return s.r.Context().Done() }
