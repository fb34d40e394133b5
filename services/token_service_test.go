package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5ecured/e-commerce/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	signed, err := tokens.Generate("64f1a2b3c4d5e6f7a8b9c0d1", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)

	signed, err := tokens.Generate("64f1a2b3c4d5e6f7a8b9c0d1", models.RoleCustomer)
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	signed, err := issuer.Generate("64f1a2b3c4d5e6f7a8b9c0d1", models.RoleCustomer)
	require.NoError(t, err)

	_, err = verifier.Validate(signed)
	assert.Error(t, err)
}

func TestTokenGarbageInput(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	_, err := tokens.Validate("not.a.token")
	assert.Error(t, err)
}
