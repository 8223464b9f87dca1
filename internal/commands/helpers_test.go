package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/config"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// newCommandApp builds an app wired to a test server, with output captured
// in the returned buffer.
func newCommandApp(t *testing.T, handler http.Handler) (*appctx.App, *bytes.Buffer) {
	t.Helper()
	t.Setenv("PETCARE_NO_KEYRING", "1")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.BaseURL = srv.URL
	cfg.BaseDelayMs = 1

	app := appctx.NewApp(cfg)
	var buf bytes.Buffer
	app.Output = output.New(output.Options{Format: output.FormatJSON, Writer: &buf})
	return app, &buf
}

func runCommand(app *appctx.App, cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	return cmd.ExecuteContext(appctx.WithApp(context.Background(), app))
}

func TestResolvePetIDPrecedence(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())

	_, err := resolvePetID(app, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No pet specified")

	app.Store.SetSelectedPet("stored-pet")
	id, err := resolvePetID(app, nil)
	require.NoError(t, err)
	assert.Equal(t, "stored-pet", id)

	id, err = resolvePetID(app, []string{"arg-pet"})
	require.NoError(t, err)
	assert.Equal(t, "arg-pet", id)
}

func TestParsePositiveFloat(t *testing.T) {
	v, err := parsePositiveFloat("4.2", "weight")
	require.NoError(t, err)
	assert.Equal(t, 4.2, v)

	_, err = parsePositiveFloat("abc", "weight")
	require.Error(t, err)

	_, err = parsePositiveFloat("-1", "weight")
	require.Error(t, err)

	_, err = parsePositiveFloat("0", "weight")
	require.Error(t, err)
}
