package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/petcarehq/petcare-cli/internal/auth"
	"github.com/petcarehq/petcare-cli/internal/models"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// API is the typed endpoint façade: one method per backend operation, each
// a thin wrapper over the client with a fixed path. Login and refresh
// persist the session; the client core itself never writes tokens.
type API struct {
	client  *Client
	session *auth.Session
}

// New creates the endpoint façade.
func New(client *Client, session *auth.Session) *API {
	return &API{client: client, session: session}
}

// Client exposes the underlying HTTP client for raw requests.
func (a *API) Client() *Client {
	return a.client
}

// decode checks the envelope status and unmarshals its data payload.
func decode[T any](env *Envelope) (*T, error) {
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = "Request failed"
		}
		return nil, output.ErrClient(0, "", msg)
	}
	var v T
	if err := env.UnmarshalData(&v); err != nil {
		return nil, output.ErrParse(http.StatusOK, err)
	}
	return &v, nil
}

// LoginEmail authenticates with email and password and persists the
// resulting session.
func (a *API) LoginEmail(ctx context.Context, email, password string) (*models.LoginResult, error) {
	env, err := a.client.Do(ctx, RequestConfig{
		Method: http.MethodPost,
		Path:   "/auth/email/login",
		Body:   map[string]string{"email": email, "password": password},
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	res, err := decode[models.LoginResult](env)
	if err != nil {
		return nil, err
	}
	a.session.Establish(res, "email")
	return res, nil
}

// LoginGoogle exchanges a Google authorization code for a session and
// persists it.
func (a *API) LoginGoogle(ctx context.Context, code, redirectURI string) (*models.LoginResult, error) {
	env, err := a.client.Do(ctx, RequestConfig{
		Method: http.MethodPost,
		Path:   "/auth/google/login",
		Body:   map[string]string{"code": code, "redirect_uri": redirectURI},
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	res, err := decode[models.LoginResult](env)
	if err != nil {
		return nil, err
	}
	a.session.Establish(res, "google")
	return res, nil
}

// RefreshAccessToken obtains a fresh token pair. The backend takes this as
// a form-encoded credential grant.
func (a *API) RefreshAccessToken(ctx context.Context, username, password string) (*models.LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	env, err := a.client.Do(ctx, RequestConfig{
		Method: http.MethodPost,
		Path:   "/auth/access_token",
		Form:   form,
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	res, err := decode[models.LoginResult](env)
	if err != nil {
		return nil, err
	}
	a.session.Establish(res, a.loginSource())
	return res, nil
}

func (a *API) loginSource() string {
	if u := a.session.User(); u != nil && u.Source != "" {
		return u.Source
	}
	return "email"
}

// Logout signs out locally. The backend call is best-effort: there is no
// guaranteed server-side session invalidation, so any failure there is
// swallowed and local state is cleared regardless. Sign-out must never be
// blocked by a flaky network.
func (a *API) Logout(ctx context.Context) {
	if _, err := a.client.Post(ctx, "/auth/logout", nil); err != nil {
		a.client.logger.Debug("server-side logout failed, clearing local session anyway", "error", err)
	}
	a.session.Teardown()
}
