package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/app/services"
)

func TestProfileCreatedOnFirstRead(t *testing.T) {
	f := newFixture(t)
	svc := services.NewProfileService(f.db)

	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.True(t, p.WalletBalance.IsZero())
}

func TestUpdateProfileKeepsBalance(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", "42")
	svc := services.NewProfileService(f.db)

	p, err := svc.Update(context.Background(), "u1", services.ProfileInput{
		FullName: " Ada Lovelace ", Username: "ada", ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, "ada", p.Username)
	assert.Equal(t, "42.00", p.WalletBalance.StringFixed(2))

	var verr *services.ValidationError
	_, err = svc.Update(context.Background(), "u1", services.ProfileInput{Username: strings.Repeat("x", 101)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}
