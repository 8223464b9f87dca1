// Package appctx provides the shared application context for commands.
package appctx

import (
	"context"
	"log/slog"
	"os"

	"github.com/petcarehq/petcare-cli/internal/api"
	"github.com/petcarehq/petcare-cli/internal/auth"
	"github.com/petcarehq/petcare-cli/internal/config"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// contextKey is a private type for context keys.
type contextKey string

const appKey contextKey = "app"

// App holds the shared application context for all commands. It is built
// once at startup: configuration is read, the persisted session is loaded,
// and the API client is wired to the credential store.
type App struct {
	Config  *config.Config
	Store   *auth.Store
	Session *auth.Session
	API     *api.API
	Output  *output.Writer
	Logger  *slog.Logger

	// Flags holds the global flag values.
	Flags GlobalFlags
}

// GlobalFlags holds values for global CLI flags.
type GlobalFlags struct {
	BaseURL string
	Pet     string
	Format  string
	Quiet   bool
	Verbose bool
}

// NewApp creates a new App with the given configuration.
func NewApp(cfg *config.Config) *App {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	store := auth.NewStore(config.GlobalConfigDir(), logger)
	session := auth.NewSession(store, logger)
	client := api.NewClient(cfg, store, logger)

	format := output.FormatJSON
	if cfg.Format == "quiet" {
		format = output.FormatQuiet
	}

	return &App{
		Config:  cfg,
		Store:   store,
		Session: session,
		API:     api.New(client, session),
		Logger:  logger,
		Output: output.New(output.Options{
			Format: format,
			Writer: os.Stdout,
		}),
	}
}

// ApplyFlags applies global flag values to the app.
func (a *App) ApplyFlags() {
	if a.Flags.Quiet || a.Flags.Format == "quiet" {
		a.Output = output.New(output.Options{
			Format: output.FormatQuiet,
			Writer: os.Stdout,
		})
	}

	verbose := a.Flags.Verbose
	if debugEnv := os.Getenv("PETCARE_DEBUG"); debugEnv != "" && debugEnv != "0" {
		verbose = true
	}
	if verbose {
		a.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		slog.SetDefault(a.Logger)

		// Rebuild the client stack so everything logs at debug level.
		a.Config.LogRequests = true
		a.Config.LogResponses = true
		a.Store = auth.NewStore(config.GlobalConfigDir(), a.Logger)
		a.Session = auth.NewSession(a.Store, a.Logger)
		a.API = api.New(api.NewClient(a.Config, a.Store, a.Logger), a.Session)
	}
}

// OK outputs a success response.
func (a *App) OK(data any, opts ...output.ResponseOption) error {
	return a.Output.OK(data, opts...)
}

// Err outputs an error response.
func (a *App) Err(err error) error {
	return a.Output.Err(err)
}

// SelectedPet resolves the pet ID for pet-scoped commands: the --pet flag
// wins, then the persisted selection, then the configured default.
func (a *App) SelectedPet() string {
	if a.Flags.Pet != "" {
		return a.Flags.Pet
	}
	if id := a.Store.SelectedPet(); id != "" {
		return id
	}
	return a.Config.PetID
}

// RequireAuth returns an error when no session is present.
func (a *App) RequireAuth() error {
	if !a.Session.IsAuthenticated() {
		return output.ErrUsageHint("Not logged in", "Run: petcare auth login")
	}
	return nil
}

// WithApp stores the app in the context.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// FromContext retrieves the app from the context.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey).(*App)
	return app
}
