package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is what a successful login leaves on the client: the bearer token
// and the display name.
type Session struct {
	Token string `json:"token"`
	Name  string `json:"userName"`
}

// SessionStore persists the current session between invocations.
type SessionStore interface {
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

// FileStore keeps the session in a 0600 JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the per-user session file location.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "edu2job", "session.json"), nil
}

// Load returns the stored session. The bool is false when none exists.
func (s *FileStore) Load() (Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false, fmt.Errorf("corrupt session file %s: %w", s.path, err)
	}
	if sess.Token == "" {
		return Session{}, false, nil
	}
	return sess, true, nil
}

// Save writes the session, creating parent directories as needed.
func (s *FileStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
