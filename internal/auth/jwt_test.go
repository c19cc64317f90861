package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: "user-123", Email: "user@example.com"}
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret-key", time.Hour)

	token, err := manager.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewTokenManager("issuer-key", time.Hour)
	verifier := NewTokenManager("different-key", time.Hour)

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret-key", -time.Minute)

	token, err := manager.Generate(testUser())
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret-key", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.Validate(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
