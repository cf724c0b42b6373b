// Package session implements the client-side session lifecycle: a durable
// credential store, a single-shot expiration timer, and the controller
// state machine that coordinates them.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/me/adminctl/pkg/model"
)

// Persisted entries. The three are always written and removed together;
// a store with only some of them present is treated as empty.
const (
	tokenFileName  = "auth_token"
	userFileName   = "user.json"
	expiryFileName = "token_expires_at"
)

// Store is the durable holder of the current Credential and session user.
// It persists across process restarts and implements
// adminapi.CredentialSource.
type Store struct {
	dir string

	mu   sync.RWMutex
	cred *model.Credential
	user *model.User
}

// NewStore creates a store rooted at dir. Nothing is read from disk until
// Load is called.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStoreDir returns the default state directory (~/.adminctl).
func DefaultStoreDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".adminctl"), nil
}

// Load reads the persisted credential and user pair into memory. Partial
// presence on disk is treated as absent: either both come back, or
// neither.
func (s *Store) Load() (*model.Credential, *model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := os.ReadFile(filepath.Join(s.dir, tokenFileName))
	if err != nil || len(strings.TrimSpace(string(token))) == 0 {
		return nil, nil, false
	}

	userData, err := os.ReadFile(filepath.Join(s.dir, userFileName))
	if err != nil {
		return nil, nil, false
	}
	var user model.User
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, nil, false
	}

	expiryData, err := os.ReadFile(filepath.Join(s.dir, expiryFileName))
	if err != nil {
		return nil, nil, false
	}
	expiry, err := time.Parse(time.RFC3339, strings.TrimSpace(string(expiryData)))
	if err != nil {
		return nil, nil, false
	}

	s.cred = &model.Credential{
		Token:     strings.TrimSpace(string(token)),
		ExpiresAt: expiry,
	}
	s.user = &user
	return s.cred, s.user, true
}

// Save atomically persists the credential and user together. It never
// leaves one on disk without the other: if any write fails, all three
// entries are removed.
func (s *Store) Save(cred *model.Credential, user *model.User) error {
	if cred == nil || user == nil {
		return fmt.Errorf("credential and user must be saved together")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	userData, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	entries := map[string][]byte{
		tokenFileName:  []byte(cred.Token),
		userFileName:   userData,
		expiryFileName: []byte(cred.ExpiresAt.Format(time.RFC3339)),
	}
	for name, data := range entries {
		if err := writeFileAtomic(filepath.Join(s.dir, name), data); err != nil {
			s.removeAllLocked()
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	s.cred = cred
	s.user = user
	return nil
}

// Clear removes the credential and user, in memory and on disk. Clearing
// an already-empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeAllLocked()
	return nil
}

func (s *Store) removeAllLocked() {
	for _, name := range []string{tokenFileName, userFileName, expiryFileName} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			// Removal failures are not surfaced; the in-memory state is
			// authoritative for the rest of the process lifetime.
			continue
		}
	}
	s.cred = nil
	s.user = nil
}

// Token returns the current bearer token, or empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.Token
}

// Credential returns the current credential, or nil.
func (s *Store) Credential() *model.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

// User returns the current session user, or nil.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// HasCredential reports whether a credential is present. Authentication
// state is always derived from this, never tracked separately.
func (s *Store) HasCredential() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred != nil
}

// writeFileAtomic writes data via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
