package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Config holds session storage configuration loaded from the environment.
// An empty Dir falls back to the user config directory.
type Config struct {
	Dir string `env:"BADGE_SESSION_DIR"`
}

// namespace is the fixed key-value namespace holding the session document.
const namespace = "auth.json"

// FileStore persists the session as a single JSON document. Writes go
// through a temp file and rename so a crash never leaves a torn document.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore rooted at dir, creating it when missing.
// An empty dir resolves to <user config dir>/badgekit.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%w: resolve config dir: %w", ErrStorageUnavailable, err)
		}
		dir = filepath.Join(base, "badgekit")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrStorageUnavailable, dir, err)
	}
	return &FileStore{path: filepath.Join(dir, namespace)}, nil
}

func (f *FileStore) Get(ctx context.Context) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("%w: read session: %w", ErrStorageUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt document is treated as logged out rather than wedging
		// every screen behind an error.
		return Session{}, nil
	}
	return sess, nil
}

func (f *FileStore) SetToken(ctx context.Context, token, email, name string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if name == "" {
		name = DisplayNameFromEmail(email)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(Session{Token: token, Email: email, Name: name})
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: clear session: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (f *FileStore) write(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: encode session: %w", ErrStorageUnavailable, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: write session: %w", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: commit session: %w", ErrStorageUnavailable, err)
	}
	return nil
}
