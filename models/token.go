package models

// TokenPair issued by the authentication endpoint.
//
// A pair with an empty Refresh is valid but cannot self-renew; a pair with only
// Refresh set is the "logged out but recoverable" state.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
