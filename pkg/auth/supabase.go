package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shashiranjanraj/lodge/pkg/http"
	"github.com/shashiranjanraj/lodge/pkg/metrics"
)

// SupabaseOptions configures SupabaseGateway. JWTSecret is optional; without
// it every Verify is a round trip to /auth/v1/user.
type SupabaseOptions struct {
	URL       string
	AnonKey   string
	JWTSecret string
}

// SupabaseGateway talks to a Supabase (GoTrue) auth server over REST.
type SupabaseGateway struct {
	base    string
	anonKey string
	secret  []byte
}

func NewSupabaseGateway(opts SupabaseOptions) (*SupabaseGateway, error) {
	if opts.URL == "" || opts.AnonKey == "" {
		return nil, errors.New("auth: SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}
	g := &SupabaseGateway{
		base:    strings.TrimRight(opts.URL, "/") + "/auth/v1",
		anonKey: opts.AnonKey,
	}
	if opts.JWTSecret != "" {
		g.secret = []byte(opts.JWTSecret)
	}
	return g, nil
}

type gotrueUser struct {
	ID               string      `json:"id"`
	Email            string      `json:"email"`
	EmailConfirmedAt *time.Time  `json:"email_confirmed_at"`
	AppMetadata      AppMetadata `json:"app_metadata"`
}

func (u gotrueUser) identity() Identity {
	return Identity{
		UserID:        u.ID,
		Email:         u.Email,
		Role:          normalizeRole(u.AppMetadata.Role),
		EmailVerified: u.EmailConfirmedAt != nil,
	}
}

type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int        `json:"expires_in"`
	User         gotrueUser `json:"user"`
}

// gotrueError covers the field names used across GoTrue versions.
type gotrueError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return "request failed"
}

func (g *SupabaseGateway) request(ctx context.Context, r *http.Request) *http.Request {
	return r.Header("apikey", g.anonKey).WithContext(ctx).Retry(2, 200*time.Millisecond)
}

// call sends r and maps the outcome. dest may be nil.
func (g *SupabaseGateway) call(op string, r *http.Request, dest interface{}) error {
	resp, err := r.Send()
	if err != nil {
		metrics.GatewayRequests.WithLabelValues(op, "error").Inc()
		return &GatewayError{Status: 0, Message: err.Error()}
	}
	if !resp.OK() {
		metrics.GatewayRequests.WithLabelValues(op, "rejected").Inc()
		return mapGotrueError(resp)
	}
	metrics.GatewayRequests.WithLabelValues(op, "ok").Inc()

	if dest == nil || len(resp.Raw) == 0 {
		return nil
	}
	if err := resp.JSON(dest); err != nil {
		return &GatewayError{Status: resp.StatusCode, Message: err.Error()}
	}
	return nil
}

func mapGotrueError(resp *http.Response) error {
	var body gotrueError
	_ = resp.JSON(&body)
	msg := body.text()
	lower := strings.ToLower(msg)

	switch {
	case body.Error == "invalid_grant" && strings.Contains(lower, "not confirmed"),
		body.ErrorCode == "email_not_confirmed":
		return ErrEmailNotVerified
	case body.Error == "invalid_grant", body.ErrorCode == "invalid_credentials":
		return ErrInvalidCredentials
	case body.ErrorCode == "user_already_exists", body.ErrorCode == "email_exists",
		strings.Contains(lower, "already registered"):
		return ErrEmailTaken
	case resp.StatusCode == 401, body.ErrorCode == "bad_jwt":
		return ErrInvalidToken
	}
	return &GatewayError{Status: resp.StatusCode, Message: msg}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers the address. When the project requires email
// confirmation GoTrue answers with the bare user and the session carries no
// token.
func (g *SupabaseGateway) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var raw struct {
		gotrueSession
		gotrueUser
	}
	req := g.request(ctx, http.Post(g.base+"/signup")).Body(credentials{Email: email, Password: password})
	if err := g.call("signup", req, &raw); err != nil {
		return nil, err
	}

	if raw.AccessToken != "" {
		return raw.gotrueSession.session(), nil
	}
	return &Session{User: raw.gotrueUser.identity()}, nil
}

func (g *SupabaseGateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var s gotrueSession
	req := g.request(ctx, http.Post(g.base+"/token")).
		Query("grant_type", "password").
		Body(credentials{Email: email, Password: password})
	if err := g.call("signin", req, &s); err != nil {
		return nil, err
	}
	return s.session(), nil
}

func (g *SupabaseGateway) ResetPassword(ctx context.Context, email string) error {
	req := g.request(ctx, http.Post(g.base+"/recover")).Body(map[string]string{"email": email})
	return g.call("recover", req, nil)
}

func (g *SupabaseGateway) UpdatePassword(ctx context.Context, token, password string) error {
	req := g.request(ctx, http.Put(g.base+"/user")).Bearer(token).Body(map[string]string{"password": password})
	return g.call("update_password", req, nil)
}

func (g *SupabaseGateway) UpdateEmail(ctx context.Context, token, email string) error {
	req := g.request(ctx, http.Put(g.base+"/user")).Bearer(token).Body(map[string]string{"email": email})
	return g.call("update_email", req, nil)
}

func (g *SupabaseGateway) ResendVerification(ctx context.Context, email string) error {
	req := g.request(ctx, http.Post(g.base+"/resend")).
		Body(map[string]string{"type": "signup", "email": email})
	return g.call("resend", req, nil)
}

// Verify checks the token locally when the JWT secret is configured and
// falls back to asking the server.
func (g *SupabaseGateway) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}
	if g.secret != nil {
		if id, err := ParseToken(g.secret, token); err == nil {
			id.EmailVerified = true
			return id, nil
		}
	}

	var u gotrueUser
	req := g.request(ctx, http.Get(g.base+"/user")).Bearer(token)
	if err := g.call("verify", req, &u); err != nil {
		return Identity{}, err
	}
	if u.ID == "" {
		return Identity{}, ErrInvalidToken
	}
	return u.identity(), nil
}

func (s gotrueSession) session() *Session {
	return &Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		User:         s.User.identity(),
	}
}
