// Package auth is the identity boundary of lodge. A Gateway signs users up
// and in and verifies bearer tokens; handlers only ever see an Identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/lodge/config"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailNotVerified   = errors.New("email address has not been verified")
)

// Identity is the authenticated caller.
type Identity struct {
	UserID        string `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Session is what a successful sign-in (or sign-up without email
// confirmation) returns. AccessToken is empty when the gateway still
// requires the address to be confirmed.
type Session struct {
	AccessToken  string   `json:"access_token,omitempty"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	ExpiresIn    int      `json:"expires_in,omitempty"`
	User         Identity `json:"user"`
}

// Gateway is the external identity provider.
type Gateway interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, token, password string) error
	UpdateEmail(ctx context.Context, token, email string) error
	ResendVerification(ctx context.Context, email string) error
	Verify(ctx context.Context, token string) (Identity, error)
}

// GatewayError is a failure reported by a remote gateway.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("auth gateway: %s (status %d)", e.Message, e.Status)
}

// NewGateway builds the gateway selected by AUTH_DRIVER. The local gateway
// keeps its users in db.
func NewGateway(db *gorm.DB) (Gateway, error) {
	switch config.AuthDriver() {
	case "supabase":
		return NewSupabaseGateway(SupabaseOptions{
			URL:       config.SupabaseURL(),
			AnonKey:   config.SupabaseAnonKey(),
			JWTSecret: config.SupabaseJWTSecret(),
		})
	case "local", "":
		return NewLocalGateway(db, LocalOptions{
			Secret:      []byte(config.JWTSecret()),
			TokenTTL:    config.Duration("JWT_TTL", time.Hour),
			AdminEmails: config.AdminEmails(),
		})
	default:
		return nil, fmt.Errorf("auth: unsupported AUTH_DRIVER %q (supported: supabase, local)", config.AuthDriver())
	}
}

type ctxKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
