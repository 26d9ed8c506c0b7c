package auth_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/testkit"
)

const supabaseURL = "https://proj.supabase.test"

func newSupabase(t *testing.T, jwtSecret string) *auth.SupabaseGateway {
	t.Helper()
	gw, err := auth.NewSupabaseGateway(auth.SupabaseOptions{
		URL: supabaseURL + "/", AnonKey: "anon-key", JWTSecret: jwtSecret,
	})
	require.NoError(t, err)
	return gw
}

func TestSupabaseSignIn(t *testing.T) {
	mt := testkit.NewMockTransport().
		On("POST", supabaseURL+"/auth/v1/token", 200, `{
			"access_token": "tok", "refresh_token": "ref", "expires_in": 3600,
			"user": {"id": "u1", "email": "ada@example.com", "email_confirmed_at": "2026-01-01T00:00:00Z",
			         "app_metadata": {"role": "admin"}}
		}`).
		Install(t)

	s, err := newSupabase(t, "").SignIn(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.AccessToken)
	assert.Equal(t, "ref", s.RefreshToken)
	assert.Equal(t, "u1", s.User.UserID)
	assert.True(t, s.User.EmailVerified)
	assert.True(t, s.User.IsAdmin())

	req := mt.Requests()[0]
	assert.Equal(t, "password", req.URL.Query().Get("grant_type"))
	assert.Equal(t, "anon-key", req.Header.Get("apikey"))

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(mt.Body(0)), &body))
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Empty(t, mt.AssertAllCalled())
}

func TestSupabaseSignUpAwaitingConfirmation(t *testing.T) {
	testkit.NewMockTransport().
		On("POST", supabaseURL+"/auth/v1/signup", 200, `{"id": "u2", "email": "new@example.com"}`).
		Install(t)

	s, err := newSupabase(t, "").SignUp(context.Background(), "new@example.com", "pw123456")
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken)
	assert.Equal(t, "u2", s.User.UserID)
	assert.False(t, s.User.EmailVerified)
}

func TestSupabaseErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"bad password", 400, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, auth.ErrInvalidCredentials},
		{"unconfirmed", 400, `{"error":"invalid_grant","error_description":"Email not confirmed"}`, auth.ErrEmailNotVerified},
		{"taken", 422, `{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`, auth.ErrEmailTaken},
		{"expired", 401, `{"msg":"invalid JWT"}`, auth.ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testkit.NewMockTransport().On("POST", supabaseURL, tc.status, tc.body).Install(t)
			_, err := newSupabase(t, "").SignIn(context.Background(), "a@b.test", "pw")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSupabaseUpstreamFailureIsGatewayError(t *testing.T) {
	testkit.NewMockTransport().On("POST", supabaseURL, 400, `{"msg":"rate limited"}`).Install(t)

	err := newSupabase(t, "").ResetPassword(context.Background(), "a@b.test")
	var gerr *auth.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 400, gerr.Status)
	assert.Equal(t, "rate limited", gerr.Message)
}

func TestSupabaseVerify(t *testing.T) {
	ctx := context.Background()

	local, err := auth.GenerateToken([]byte("jwt-secret"), auth.Identity{UserID: "u1", Email: "a@b.test"}, time.Hour)
	require.NoError(t, err)
	mt := testkit.NewMockTransport().
		On("GET", supabaseURL+"/auth/v1/user", 200, `{"id":"u9","email":"remote@b.test","email_confirmed_at":"2026-01-01T00:00:00Z"}`).
		Install(t)

	id, err := newSupabase(t, "jwt-secret").Verify(ctx, local)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Empty(t, mt.Requests())

	id, err = newSupabase(t, "").Verify(ctx, "opaque")
	require.NoError(t, err)
	assert.Equal(t, "u9", id.UserID)
	assert.Equal(t, "Bearer opaque", mt.Requests()[0].Header.Get("Authorization"))

	_, err = newSupabase(t, "").Verify(ctx, "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSupabaseRequiresURLAndKey(t *testing.T) {
	_, err := auth.NewSupabaseGateway(auth.SupabaseOptions{URL: supabaseURL})
	assert.Error(t, err)
}
