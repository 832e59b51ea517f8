// Package guard decides whether a screen may render for the current session.
// The hosting router performs the actual redirect.
package guard

import (
	"slices"

	"github.com/nkiryanov/warehub/models"
)

const (
	// LoginPath is where unauthenticated sessions are sent
	LoginPath = "/login"

	// LandingPath is where authenticated but under-privileged sessions are sent
	LandingPath = "/dashboard"
)

// CanAccess reports whether the session may render a screen that requires any
// of the given roles. With no required roles any authenticated session passes.
func CanAccess(session models.Session, required ...models.Role) bool {
	if !session.Authenticated() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	if session.User == nil {
		return false
	}

	return slices.Contains(required, session.User.Role)
}

// RedirectTarget returns where to send a session that was denied access.
func RedirectTarget(session models.Session) string {
	if session.Authenticated() {
		return LandingPath
	}
	return LoginPath
}
