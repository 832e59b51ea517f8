package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const signingKey = "test-secret-key"

// SignedToken returns a signed JWT with the given expiry. The client never
// verifies signatures, so the key only has to be consistent.
func SignedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString([]byte(signingKey))
	require.NoError(t, err, "test token should sign without errors")
	return signed
}

// TokenWithoutExp returns a signed JWT that carries no exp claim.
func TokenWithoutExp(t *testing.T) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})

	signed, err := token.SignedString([]byte(signingKey))
	require.NoError(t, err, "test token should sign without errors")
	return signed
}
