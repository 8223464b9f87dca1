package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcarehq/petcare-cli/internal/models"
)

func TestAuthStatusLoggedOut(t *testing.T) {
	app, buf := newCommandApp(t, http.NotFoundHandler())

	err := runCommand(app, newAuthStatusCmd())
	require.NoError(t, err)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, false, resp.Data["authenticated"])
}

func TestAuthStatusLoggedIn(t *testing.T) {
	app, buf := newCommandApp(t, http.NotFoundHandler())
	app.Store.SetSession("tok", "ref", 0, &models.UserProfile{Email: "a@b.c", Source: "email"})

	err := runCommand(app, newAuthStatusCmd())
	require.NoError(t, err)

	var resp struct {
		Data    map[string]any `json:"data"`
		Summary string         `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, true, resp.Data["authenticated"])
	assert.Equal(t, "a@b.c", resp.Data["email"])
	assert.Equal(t, "Logged in as a@b.c", resp.Summary)
}

func TestAuthLogoutClearsSession(t *testing.T) {
	app, _ := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	app.Store.SetSession("tok", "ref", 0, &models.UserProfile{Email: "a@b.c"})

	err := runCommand(app, newAuthLogoutCmd())
	require.NoError(t, err)

	assert.Empty(t, app.Store.GetAccessToken())
	assert.Nil(t, app.Store.GetUser())
}

func TestAuthTokenMissing(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())

	err := runCommand(app, newAuthTokenCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No access token stored")
}
