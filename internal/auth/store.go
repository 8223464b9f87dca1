// Package auth provides session and credential handling for the PetCare API.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofrs/flock"
	"github.com/zalando/go-keyring"

	"github.com/petcarehq/petcare-cli/internal/models"
)

const (
	serviceName = "petcare"

	sessionKey     = "petcare::session"
	selectedPetKey = "petcare::selected_pet"
)

// sessionState is the persisted session record: tokens plus the cached
// user profile. The profile is overwritten wholesale on each login.
type sessionState struct {
	AccessToken  string              `json:"access_token,omitempty"`
	RefreshToken string              `json:"refresh_token,omitempty"`
	ExpiresIn    int64               `json:"expires_in,omitempty"`
	User         *models.UserProfile `json:"user,omitempty"`
}

// Store handles credential storage, preferring the system keychain with a
// JSON-file fallback.
//
// All operations are best-effort: storage-backend failures are logged and
// produce zero values or no-ops rather than errors. Writes only happen after
// a server round-trip completes, so last-write-wins is acceptable.
type Store struct {
	useKeyring  bool
	fallbackDir string
	logger      *slog.Logger
}

// NewStore creates a credential store rooted at fallbackDir.
func NewStore(fallbackDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	// Skip keyring for tests or when explicitly disabled
	if os.Getenv("PETCARE_NO_KEYRING") != "" {
		return &Store{useKeyring: false, fallbackDir: fallbackDir, logger: logger}
	}

	// Test if keyring is available
	testKey := "petcare::test"
	if err := keyring.Set(serviceName, testKey, "test"); err == nil {
		_ = keyring.Delete(serviceName, testKey) // Best-effort cleanup
		return &Store{useKeyring: true, fallbackDir: fallbackDir, logger: logger}
	}
	logger.Warn("system keyring unavailable, credentials stored in plaintext",
		"path", filepath.Join(fallbackDir, "credentials.json"))
	return &Store{useKeyring: false, fallbackDir: fallbackDir, logger: logger}
}

// UsingKeyring returns true if the store is using the system keyring.
func (s *Store) UsingKeyring() bool {
	return s.useKeyring
}

// GetAccessToken returns the stored access token, or "" if none.
func (s *Store) GetAccessToken() string {
	return s.loadSession().AccessToken
}

// SetAccessToken stores the access token.
func (s *Store) SetAccessToken(token string) {
	st := s.loadSession()
	st.AccessToken = token
	s.saveSession(st)
}

// ClearAccessToken removes the stored access token.
func (s *Store) ClearAccessToken() {
	st := s.loadSession()
	st.AccessToken = ""
	s.saveSession(st)
}

// GetRefreshToken returns the stored refresh token, or "" if none.
func (s *Store) GetRefreshToken() string {
	return s.loadSession().RefreshToken
}

// SetRefreshToken stores the refresh token.
func (s *Store) SetRefreshToken(token string) {
	st := s.loadSession()
	st.RefreshToken = token
	s.saveSession(st)
}

// ClearRefreshToken removes the stored refresh token.
func (s *Store) ClearRefreshToken() {
	st := s.loadSession()
	st.RefreshToken = ""
	s.saveSession(st)
}

// ClearTokens removes both tokens in one write. Called by the HTTP client
// on 401: any 401 invalidates the whole session.
func (s *Store) ClearTokens() {
	st := s.loadSession()
	st.AccessToken = ""
	st.RefreshToken = ""
	s.saveSession(st)
}

// GetUser returns the cached user profile, or nil if none.
func (s *Store) GetUser() *models.UserProfile {
	return s.loadSession().User
}

// SetUser caches the user profile, replacing any previous one.
func (s *Store) SetUser(u *models.UserProfile) {
	st := s.loadSession()
	st.User = u
	s.saveSession(st)
}

// ClearUser removes the cached user profile.
func (s *Store) ClearUser() {
	st := s.loadSession()
	st.User = nil
	s.saveSession(st)
}

// SetSession stores tokens and profile in a single write.
func (s *Store) SetSession(accessToken, refreshToken string, expiresIn int64, u *models.UserProfile) {
	s.saveSession(sessionState{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         u,
	})
}

// SelectedPet returns the persisted selected-pet ID, or "" if none.
// The entry is namespaced separately from the session record.
func (s *Store) SelectedPet() string {
	data, ok := s.read(selectedPetKey)
	if !ok {
		return ""
	}
	return data
}

// SetSelectedPet persists the selected-pet ID.
func (s *Store) SetSelectedPet(petID string) {
	s.write(selectedPetKey, petID)
}

// ClearSelectedPet removes the selected-pet entry.
func (s *Store) ClearSelectedPet() {
	s.delete(selectedPetKey)
}

// ClearAll removes the session record and the selected-pet entry as a group.
func (s *Store) ClearAll() {
	s.delete(sessionKey)
	s.delete(selectedPetKey)
}

// Session record plumbing.

func (s *Store) loadSession() sessionState {
	data, ok := s.read(sessionKey)
	if !ok || data == "" {
		return sessionState{}
	}
	var st sessionState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		s.logger.Warn("discarding corrupt session record", "error", err)
		return sessionState{}
	}
	return st
}

func (s *Store) saveSession(st sessionState) {
	data, err := json.Marshal(st)
	if err != nil {
		s.logger.Warn("failed to encode session record", "error", err)
		return
	}
	s.write(sessionKey, string(data))
}

// Backend plumbing. Every failure is swallowed after logging.

func (s *Store) read(key string) (string, bool) {
	if s.useKeyring {
		data, err := keyring.Get(serviceName, key)
		if err != nil {
			return "", false
		}
		return data, true
	}
	all, err := s.loadFile()
	if err != nil {
		s.logger.Warn("credential read failed", "key", key, "error", err)
		return "", false
	}
	data, ok := all[key]
	return data, ok
}

func (s *Store) write(key, value string) {
	if s.useKeyring {
		if err := keyring.Set(serviceName, key, value); err != nil {
			s.logger.Warn("credential write failed", "key", key, "error", err)
		}
		return
	}
	if err := s.updateFile(func(all map[string]string) {
		all[key] = value
	}); err != nil {
		s.logger.Warn("credential write failed", "key", key, "error", err)
	}
}

func (s *Store) delete(key string) {
	if s.useKeyring {
		if err := keyring.Delete(serviceName, key); err != nil && err != keyring.ErrNotFound {
			s.logger.Warn("credential delete failed", "key", key, "error", err)
		}
		return
	}
	if err := s.updateFile(func(all map[string]string) {
		delete(all, key)
	}); err != nil {
		s.logger.Warn("credential delete failed", "key", key, "error", err)
	}
}

// File fallback. Concurrent CLI processes may touch the file, so mutations
// take an exclusive flock and writes go through a temp file + rename.

func (s *Store) credentialsPath() string {
	return filepath.Join(s.fallbackDir, "credentials.json")
}

func (s *Store) loadFile() (map[string]string, error) {
	data, err := os.ReadFile(s.credentialsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	var all map[string]string
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Store) updateFile(mutate func(map[string]string)) error {
	if err := os.MkdirAll(s.fallbackDir, 0700); err != nil {
		return err
	}

	fl := flock.New(s.credentialsPath() + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	locked, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return err
	}
	if !locked {
		return fmt.Errorf("timed out waiting for credentials lock")
	}
	defer func() { _ = fl.Unlock() }()

	all, err := s.loadFile()
	if err != nil {
		return err
	}
	mutate(all)
	return s.writeFile(all)
}

func (s *Store) writeFile(all map[string]string) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write with randomized temp file name
	tmpFile, err := os.CreateTemp(s.fallbackDir, "credentials-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	// Unix: rename atomically replaces the destination.
	// Windows: rename fails when destination exists; remove and retry.
	destPath := s.credentialsPath()
	if err := os.Rename(tmpPath, destPath); err != nil {
		if runtime.GOOS == "windows" {
			_ = os.Remove(destPath)
			return os.Rename(tmpPath, destPath)
		}
		os.Remove(tmpPath)
		return err
	}
	return nil
}
