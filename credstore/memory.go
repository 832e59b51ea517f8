package credstore

import (
	"sync"

	"github.com/nkiryanov/warehub/models"
)

// MemoryStore keeps the credential pair in process memory. Suitable for tests
// and for hosts that don't want credentials to survive a restart.
type MemoryStore struct {
	mu   sync.Mutex
	pair models.TokenPair
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (models.TokenPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pair, s.pair.Access != "" || s.pair.Refresh != ""
}

func (s *MemoryStore) Set(access string, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair.Access = access
	if refresh != "" {
		s.pair.Refresh = refresh
	}
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = models.TokenPair{}
}
