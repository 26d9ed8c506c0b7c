package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	key := []byte("round-trip")
	tok, err := auth.GenerateToken(key, auth.Identity{UserID: "u1", Email: "a@b.test", Role: auth.RoleAdmin}, time.Minute)
	require.NoError(t, err)

	id, err := auth.ParseToken(key, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "a@b.test", id.Email)
	assert.True(t, id.IsAdmin())

	_, err = auth.ParseToken([]byte("other"), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseTokenOnlyAcceptsHS256(t *testing.T) {
	key := []byte("hs512")
	claims := auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(key)
	require.NoError(t, err)

	_, err = auth.ParseToken(key, tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
