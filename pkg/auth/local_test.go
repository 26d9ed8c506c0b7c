package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/shashiranjanraj/lodge/database/migrations"
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/testkit"
)

var secret = []byte("test-secret")

func newLocal(t *testing.T) *auth.LocalGateway {
	t.Helper()
	gw, err := auth.NewLocalGateway(testkit.DB(t), auth.LocalOptions{
		Secret:      secret,
		TokenTTL:    time.Hour,
		AdminEmails: []string{"Boss@Shop.test"},
	})
	require.NoError(t, err)
	return gw
}

func TestLocalSignUpAndSignIn(t *testing.T) {
	gw := newLocal(t)
	ctx := context.Background()

	s, err := gw.SignUp(ctx, " Ada@Example.com ", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, s.AccessToken)
	assert.Equal(t, 3600, s.ExpiresIn)
	assert.Equal(t, "ada@example.com", s.User.Email)
	assert.Equal(t, auth.RoleUser, s.User.Role)

	_, err = gw.SignUp(ctx, "ada@example.com", "other")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	_, err = gw.SignIn(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = gw.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	s, err = gw.SignIn(ctx, "ADA@example.com", "hunter22")
	require.NoError(t, err)

	id, err := gw.Verify(ctx, s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, s.User.UserID, id.UserID)
	assert.True(t, id.EmailVerified)
	assert.False(t, id.IsAdmin())
}

func TestLocalAdminEmailsGetAdminRole(t *testing.T) {
	gw := newLocal(t)

	s, err := gw.SignUp(context.Background(), "boss@shop.test", "pw123456")
	require.NoError(t, err)
	assert.True(t, s.User.IsAdmin())

	id, err := gw.Verify(context.Background(), s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, id.Role)
}

func TestLocalVerifyRejectsBadTokens(t *testing.T) {
	gw := newLocal(t)
	ctx := context.Background()

	_, err := gw.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	forged, err := auth.GenerateToken([]byte("other-secret"), auth.Identity{UserID: "x"}, time.Hour)
	require.NoError(t, err)
	_, err = gw.Verify(ctx, forged)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	ghost, err := auth.GenerateToken(secret, auth.Identity{UserID: "deleted-user"}, time.Hour)
	require.NoError(t, err)
	_, err = gw.Verify(ctx, ghost)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, err := auth.GenerateToken(secret, auth.Identity{UserID: "x"}, -time.Minute)
	require.NoError(t, err)
	_, err = gw.Verify(ctx, expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLocalUpdatePasswordAndEmail(t *testing.T) {
	gw := newLocal(t)
	ctx := context.Background()

	ada, err := gw.SignUp(ctx, "ada@example.com", "old-pass")
	require.NoError(t, err)
	_, err = gw.SignUp(ctx, "bob@example.com", "bob-pass")
	require.NoError(t, err)

	require.NoError(t, gw.UpdatePassword(ctx, ada.AccessToken, "new-pass"))
	_, err = gw.SignIn(ctx, "ada@example.com", "old-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = gw.SignIn(ctx, "ada@example.com", "new-pass")
	require.NoError(t, err)

	assert.ErrorIs(t, gw.UpdateEmail(ctx, ada.AccessToken, "BOB@example.com"), auth.ErrEmailTaken)
	require.NoError(t, gw.UpdateEmail(ctx, ada.AccessToken, "ada@new.example"))
	_, err = gw.SignIn(ctx, "ada@new.example", "new-pass")
	require.NoError(t, err)

	assert.ErrorIs(t, gw.UpdatePassword(ctx, "garbage", "x"), auth.ErrInvalidToken)
}

func TestLocalResetPasswordHidesUnknownAddresses(t *testing.T) {
	gw := newLocal(t)
	ctx := context.Background()

	assert.NoError(t, gw.ResetPassword(ctx, "nobody@example.com"))
	_, err := gw.SignUp(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.NoError(t, gw.ResetPassword(ctx, "ada@example.com"))
	assert.NoError(t, gw.ResendVerification(ctx, "ada@example.com"))
}

func TestNewLocalGatewayNeedsSecret(t *testing.T) {
	_, err := auth.NewLocalGateway(testkit.DB(t), auth.LocalOptions{})
	assert.Error(t, err)
	_, err = auth.NewLocalGateway(nil, auth.LocalOptions{Secret: secret})
	assert.Error(t, err)
}
