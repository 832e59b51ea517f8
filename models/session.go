package models

// SessionStatus of the client-side authentication state machine.
type SessionStatus string

const (
	StatusAnonymous      SessionStatus = "anonymous"
	StatusAuthenticating SessionStatus = "authenticating"
	StatusAuthenticated  SessionStatus = "authenticated"
	StatusRefreshing     SessionStatus = "refreshing"
	StatusError          SessionStatus = "error"
)

// Session is the client-side view of authentication state. It is owned by the
// session manager; everyone else receives copies and must not mutate them.
type Session struct {
	Status SessionStatus

	// Current user, nil until loaded
	User *User

	// Last auth error message suitable for display, empty if none
	LastError string
}

func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}
