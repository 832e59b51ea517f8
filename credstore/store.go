// Package credstore persists the credential pair between sessions.
package credstore

import "github.com/nkiryanov/warehub/models"

// Store owns the persisted credential pair. Reads never fail; write errors are
// logged and swallowed, since the worst outcome of a lost credential is a fresh
// login. Implementations must not touch the network.
type Store interface {
	// Get returns the persisted pair. ok is false when neither value is present.
	Get() (pair models.TokenPair, ok bool)

	// Set writes the access token unconditionally. The refresh token is written
	// only when non-empty, which lets renewal update the access token alone.
	Set(access string, refresh string)

	// Clear removes both values
	Clear()
}
