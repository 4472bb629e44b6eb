package medclient

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

var _ TokenStore = (*MemoryTokenStore)(nil)
var _ TokenStore = (*FileTokenStore)(nil)

// MemoryTokenStore keeps the credential in process memory. Useful for tests
// and for contexts with no persistent storage, where the slot simply starts
// absent on every run.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryTokenStore returns an empty in-memory slot.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set
}

func (s *MemoryTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *MemoryTokenStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// FileTokenStore persists the credential to a single file so the session
// survives process restarts. Reads never fail: a missing or unreadable file
// is reported as absent.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore returns a store backed by the given path. An empty path
// resolves to medclient/token under the user config directory.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to resolve token file location")
		}
		path = filepath.Join(dir, "medclient", "token")
	}

	return &FileTokenStore{path: path}, nil
}

// Path returns the backing file location.
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to create token directory")
	}

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to persist credential")
	}
	return nil
}

func (s *FileTokenStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to remove credential")
	}
	return nil
}
