package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Login rejected by the server. Carries a user displayable message via APIError.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Renewal attempted without a refresh token in the store
	ErrNoRefreshToken = errors.New("no refresh token available")

	// Refresh token rejected or expired server side. Fatal for the session.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// Operation requires an authenticated session
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx response from the API. Transport failures are never
// wrapped into APIError so callers can distinguish "try again" from "log in
// again" with errors.As.
type APIError struct {
	StatusCode int

	// Server provided message from the response 'detail' field, may be empty
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Detail)
}

// Unauthorized reports whether err is an APIError with status 401.
func Unauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Message returns a text suitable for showing to the end user.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
