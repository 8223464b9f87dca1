package appctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcarehq/petcare-cli/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("PETCARE_NO_KEYRING", "1")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return NewApp(config.Default())
}

func TestNewAppWiring(t *testing.T) {
	app := newTestApp(t)
	require.NotNil(t, app.Config)
	require.NotNil(t, app.Store)
	require.NotNil(t, app.Session)
	require.NotNil(t, app.API)
	require.NotNil(t, app.Output)
}

func TestSelectedPetPrecedence(t *testing.T) {
	app := newTestApp(t)

	assert.Empty(t, app.SelectedPet())

	app.Config.PetID = "from-config"
	assert.Equal(t, "from-config", app.SelectedPet())

	app.Store.SetSelectedPet("from-store")
	assert.Equal(t, "from-store", app.SelectedPet())

	app.Flags.Pet = "from-flag"
	assert.Equal(t, "from-flag", app.SelectedPet())
}

func TestRequireAuth(t *testing.T) {
	app := newTestApp(t)

	err := app.RequireAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not logged in")

	app.Store.SetAccessToken("tok")
	assert.NoError(t, app.RequireAuth())
}

func TestContextRoundTrip(t *testing.T) {
	app := newTestApp(t)
	ctx := WithApp(context.Background(), app)
	assert.Same(t, app, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
