package credstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/nkiryanov/warehub/logger"
	"github.com/nkiryanov/warehub/models"
)

// On-disk layout, two distinctly keyed string values
type fileCredentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileStore persists the credential pair to a JSON file. Persisted values are
// read once at construction; all later access goes through memory, and every
// mutation is flushed back with an atomic rename.
type FileStore struct {
	path   string
	logger logger.Logger

	mu   sync.Mutex
	pair models.TokenPair
}

func NewFileStore(path string, log logger.Logger) *FileStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &FileStore{path: path, logger: log}
	s.load()
	return s
}

func (s *FileStore) Get() (models.TokenPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pair, s.pair.Access != "" || s.pair.Refresh != ""
}

func (s *FileStore) Set(access string, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair.Access = access
	if refresh != "" {
		s.pair.Refresh = refresh
	}
	s.flush()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = models.TokenPair{}

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to remove credentials file", "path", s.path, "error", err)
	}
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Failed to read credentials file", "path", s.path, "error", err)
		}
		return
	}

	var creds fileCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		s.logger.Warn("Malformed credentials file, ignoring it", "path", s.path, "error", err)
		return
	}

	s.pair = models.TokenPair{Access: creds.AccessToken, Refresh: creds.RefreshToken}
}

// flush writes the pair to a sibling temp file and renames it over the target.
// Callers must hold s.mu.
func (s *FileStore) flush() {
	data, err := json.Marshal(fileCredentials{
		AccessToken:  s.pair.Access,
		RefreshToken: s.pair.Refresh,
	})
	if err != nil {
		s.logger.Warn("Failed to encode credentials", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Warn("Failed to create credentials directory", "path", s.path, "error", err)
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		s.logger.Warn("Failed to create temp credentials file", "error", err)
		return
	}

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		s.logger.Warn("Failed to write credentials file", "write_error", writeErr, "close_error", closeErr)
		_ = os.Remove(tmp.Name())
		return
	}

	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		s.logger.Warn("Failed to set credentials file mode", "error", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		s.logger.Warn("Failed to replace credentials file", "path", s.path, "error", err)
		_ = os.Remove(tmp.Name())
	}
}
