// Package ctx gives lodge handlers a single *Context instead of the
// (http.ResponseWriter, *http.Request) pair.
//
//	func Show(c *ctx.Context) {
//	    p, err := catalog.GetProduct(c.Context(), c.Param("id"))
//	    ...
//	    c.Success(p)
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Wrap(Show))
package ctx

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/bind"
	"github.com/shashiranjanraj/lodge/pkg/logger"
	"github.com/shashiranjanraj/lodge/pkg/middleware"
	"github.com/shashiranjanraj/lodge/pkg/response"
	"github.com/shashiranjanraj/lodge/pkg/session"
	"github.com/shashiranjanraj/lodge/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // 0 until a response is written
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter ("/orders/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, or "".
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log is the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Identity returns the authenticated caller, if any.
func (c *Context) Identity() (auth.Identity, bool) {
	return auth.FromContext(c.R.Context())
}

// UserID returns the authenticated user's ID or "".
func (c *Context) UserID() string {
	id, _ := middleware.UserIDFromCtx(c.R)
	return id
}

// Token returns the bearer token the caller sent.
func (c *Context) Token() string { return middleware.BearerToken(c.R) }

// Session returns the visitor session loaded by session.Middleware.
func (c *Context) Session() *session.Session { return session.FromCtx(c.R) }

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation. It writes
// a 400 or 422 and returns false when dest is not usable.
//
//	var in SignInInput
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// DecodeJSON decodes the body without validating, for handlers whose
// service validates. It writes a 400 and returns false on bad JSON.
func (c *Context) DecodeJSON(dest any) bool {
	if err := bind.Decode(c.R, dest); err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// FormFile returns the uploaded file in field. It writes a 400 and returns
// false when the upload is missing or too large.
func (c *Context) FormFile(field string) (multipart.File, *multipart.FileHeader, bool) {
	f, hdr, err := bind.File(c.W, c.R, field)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	return f, hdr, true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Status writes just the status code.
func (c *Context) Status(code int) {
	c.status = code
	c.W.WriteHeader(code)
}

// Success sends a 200 envelope: {"status":200,"data":...}
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, response.Envelope{Status: http.StatusOK, Data: data})
}

// Message sends a 200 envelope carrying only a message.
func (c *Context) Message(msg string) {
	c.JSON(http.StatusOK, response.Envelope{Status: http.StatusOK, Message: msg})
}

func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, response.Envelope{Status: http.StatusCreated, Data: data})
}

// Error sends an envelope with status code and message.
func (c *Context) Error(code int, message string) {
	c.JSON(code, response.Envelope{Status: code, Message: message})
}

// ValidationError sends a 422 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, response.Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (c *Context) Unauthorized(message ...string) {
	c.Error(http.StatusUnauthorized, first(message, "Unauthorized"))
}

func (c *Context) Forbidden(message ...string) {
	c.Error(http.StatusForbidden, first(message, "Forbidden"))
}

func (c *Context) NotFound(message ...string) {
	c.Error(http.StatusNotFound, first(message, "Not found"))
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }

func first(s []string, def string) string {
	if len(s) > 0 {
		return s[0]
	}
	return def
}
