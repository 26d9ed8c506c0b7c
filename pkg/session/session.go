// Package session keeps per-visitor state (the cart) in the cache store,
// keyed by a random cookie ID.
//
//	sess := session.FromCtx(r)
//	sess.SetJSON("cart", c)
//	sess.Save(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/pkg/cache"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions reads SESSION_TTL and marks the cookie Secure in production.
func DefaultOptions() Options {
	return Options{
		CookieName: "lodge_session",
		TTL:        config.Duration("SESSION_TTL", 2*time.Hour),
		Secure:     config.IsProduction(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is the request's handle on its stored values.
type Session struct {
	id      string
	data    map[string]json.RawMessage
	opts    Options
	changed bool
}

func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func storeKey(id string) string { return "lodge:session:" + id }

func load(id string) map[string]json.RawMessage {
	data := map[string]json.RawMessage{}
	if !cache.Get(storeKey(id), &data) || data == nil {
		return map[string]json.RawMessage{}
	}
	return data
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// SetJSON stores v under key.
func (s *Session) SetJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session: marshal %s: %w", key, err)
	}
	s.data[key] = raw
	s.changed = true
	return nil
}

// GetJSON decodes the value under key into dest. It reports false when the
// key is absent or does not decode.
func (s *Session) GetJSON(key string, dest interface{}) bool {
	raw, ok := s.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Has reports whether key is set.
func (s *Session) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	s.changed = true
}

// Invalidate clears every value.
func (s *Session) Invalidate() {
	s.data = map[string]json.RawMessage{}
	s.changed = true
}

// Save persists changed data and (re)sends the cookie.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}
	if err := cache.Set(storeKey(s.id), s.data, s.opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// Middleware loads the session named by the cookie, or starts a new one.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts}
			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				sess.data = load(sess.id)
			} else {
				sess.id = newID()
				sess.data = map[string]json.RawMessage{}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx returns the request's session, or a fresh unsaved one when the
// middleware did not run.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{id: newID(), data: map[string]json.RawMessage{}, opts: DefaultOptions()}
}
