// Package token inspects bearer tokens without validating their signature.
// No secret is available client side, so this is a liveness heuristic only,
// not a security boundary.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser()

// ExpiresAt decodes the token payload and returns its expiry time.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}

	_, _, err := parser.ParseUnverified(token, &claims)
	if err != nil {
		return time.Time{}, err
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}

	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the token expiry has passed. Any decode failure
// (malformed structure, bad encoding, missing exp) counts as expired.
func IsExpired(token string) bool {
	expiresAt, err := ExpiresAt(token)
	if err != nil {
		return true
	}

	return expiresAt.Before(time.Now())
}
