package auth

import (
	"log/slog"

	"github.com/petcarehq/petcare-cli/internal/config"
	"github.com/petcarehq/petcare-cli/internal/models"
)

// Session is the explicit session object for the running process. It is
// created once at startup from persisted state and passed where needed;
// there is no ambient global.
type Session struct {
	store  *Store
	logger *slog.Logger

	user *models.UserProfile
}

// NewSession reads persisted tokens and profile and returns the session.
func NewSession(store *Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		store:  store,
		logger: logger,
		user:   store.GetUser(),
	}
}

// NewDefaultStore creates the credential store rooted at the global config dir.
func NewDefaultStore(logger *slog.Logger) *Store {
	return NewStore(config.GlobalConfigDir(), logger)
}

// Store exposes the underlying credential store.
func (s *Session) Store() *Store {
	return s.store
}

// IsAuthenticated reports whether an access token is present. The token is
// trusted until the server rejects it; no expiry check happens client-side.
func (s *Session) IsAuthenticated() bool {
	return s.store.GetAccessToken() != ""
}

// User returns the cached profile, or nil when logged out.
func (s *Session) User() *models.UserProfile {
	if s.user == nil {
		s.user = s.store.GetUser()
	}
	return s.user
}

// Establish persists a fresh login result: tokens and profile are written
// wholesale, replacing whatever was there.
func (s *Session) Establish(res *models.LoginResult, source string) {
	profile := res.User
	profile.Source = source
	s.store.SetSession(res.AccessToken, res.RefreshToken, res.ExpiresIn, &profile)
	s.user = &profile
	s.logger.Debug("session established", "user", profile.Email, "source", source)
}

// Teardown clears all persisted session state: tokens, profile, and the
// selected-pet entry, as a group.
func (s *Session) Teardown() {
	s.store.ClearAll()
	s.user = nil
	s.logger.Debug("session cleared")
}
