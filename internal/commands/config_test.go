package commands

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcarehq/petcare-cli/internal/config"
)

func TestConfigSetAndReload(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())

	err := runCommand(app, newConfigSetCmd(), "max_attempts", "5")
	require.NoError(t, err)

	cfg := config.LoadGlobalFile()
	assert.Equal(t, 5, cfg.MaxAttempts)
}

func TestConfigSetValidatesValues(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())

	err := runCommand(app, newConfigSetCmd(), "max_attempts", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Must be an integer")

	err = runCommand(app, newConfigSetCmd(), "format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json or quiet")
}

func TestConfigGetUnknownKey(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())

	err := runCommand(app, newConfigGetCmd(), "no_such_key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown config key")
}

func TestConfigSetDoesNotBakeInEnvOverrides(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())
	t.Setenv("PETCARE_BASE_URL", "http://env.example")

	err := runCommand(app, newConfigSetCmd(), "pet_id", "p1")
	require.NoError(t, err)

	cfg := config.LoadGlobalFile()
	assert.Equal(t, "p1", cfg.PetID)
	assert.Equal(t, config.Default().BaseURL, cfg.BaseURL)
}
