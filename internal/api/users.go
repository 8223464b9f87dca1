package api

import (
	"context"
	"net/http"

	"github.com/petcarehq/petcare-cli/internal/models"
)

// Signup creates a new account. Unauthenticated: there is no session yet.
func (a *API) Signup(ctx context.Context, req *models.SignupRequest) (*models.UserProfile, error) {
	env, err := a.client.Do(ctx, RequestConfig{
		Method: http.MethodPost,
		Path:   "/user/create",
		Body:   req,
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.UserProfile](env)
}

// Me fetches the current user's profile.
func (a *API) Me(ctx context.Context) (*models.UserProfile, error) {
	env, err := a.client.Get(ctx, "/user/me", nil)
	if err != nil {
		return nil, err
	}
	return decode[models.UserProfile](env)
}

// UpdateProfile applies a partial profile update and refreshes the cached
// copy in the credential store.
func (a *API) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	env, err := a.client.Post(ctx, "/user/update", req)
	if err != nil {
		return nil, err
	}
	profile, err := decode[models.UserProfile](env)
	if err != nil {
		return nil, err
	}
	// The server does not echo the login source; keep the cached one.
	if profile.Source == "" {
		if cached := a.session.User(); cached != nil {
			profile.Source = cached.Source
		}
	}
	a.session.Store().SetUser(profile)
	return profile, nil
}

// ResetPassword changes the account password.
func (a *API) ResetPassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := a.client.Post(ctx, "/user/reset_password", &models.ResetPasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	return err
}
