package ledgersdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Credentials are what a successful login leaves behind.
type Credentials struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// CredentialStore keeps the session token between calls. Implementations
// must be safe for concurrent use.
type CredentialStore interface {
	// Load returns the stored credentials, or zero Credentials if there are none.
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// MemoryCredentials keeps credentials for the life of the process.
type MemoryCredentials struct {
	mu    sync.RWMutex
	creds Credentials
}

func (m *MemoryCredentials) Load() (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds, nil
}

func (m *MemoryCredentials) Save(c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = c
	return nil
}

func (m *MemoryCredentials) Clear() error {
	return m.Save(Credentials{})
}

// FileCredentials persists credentials as JSON readable only by the owner.
type FileCredentials struct {
	Path string

	mu sync.Mutex
}

// DefaultCredentialsPath is $XDG_CONFIG_HOME/ledger/credentials.json (or the
// platform equivalent).
func DefaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ledger", "credentials.json"), nil
}

func (f *FileCredentials) Load() (Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("read credentials %s: %w", f.Path, err)
	}
	return c, nil
}

func (f *FileCredentials) Save(c Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// write then rename so a crash never leaves half a file
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f *FileCredentials) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
