package commands

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/config"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "Get and set configuration values in the global config file.",
	}

	cmd.AddCommand(
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigListCmd(),
	)

	return cmd
}

// configAccessor reads and writes one config key.
type configAccessor struct {
	get func(*config.Config) any
	set func(*config.Config, string) error
}

func intSetter(assign func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return output.ErrValidation("value", "Must be an integer")
		}
		assign(cfg, n)
		return nil
	}
}

func boolSetter(assign func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return output.ErrValidation("value", "Must be true or false")
		}
		assign(cfg, b)
		return nil
	}
}

var configKeys = map[string]configAccessor{
	"base_url": {
		get: func(c *config.Config) any { return c.BaseURL },
		set: func(c *config.Config, v string) error { c.BaseURL = config.NormalizeBaseURL(v); return nil },
	},
	"google_client_id": {
		get: func(c *config.Config) any { return c.GoogleClientID },
		set: func(c *config.Config, v string) error { c.GoogleClientID = v; return nil },
	},
	"timeout_ms": {
		get: func(c *config.Config) any { return c.TimeoutMs },
		set: intSetter(func(c *config.Config, n int) { c.TimeoutMs = n }),
	},
	"max_attempts": {
		get: func(c *config.Config) any { return c.MaxAttempts },
		set: intSetter(func(c *config.Config, n int) { c.MaxAttempts = n }),
	},
	"base_delay_ms": {
		get: func(c *config.Config) any { return c.BaseDelayMs },
		set: intSetter(func(c *config.Config, n int) { c.BaseDelayMs = n }),
	},
	"log_requests": {
		get: func(c *config.Config) any { return c.LogRequests },
		set: boolSetter(func(c *config.Config, b bool) { c.LogRequests = b }),
	},
	"log_responses": {
		get: func(c *config.Config) any { return c.LogResponses },
		set: boolSetter(func(c *config.Config, b bool) { c.LogResponses = b }),
	},
	"pet_id": {
		get: func(c *config.Config) any { return c.PetID },
		set: func(c *config.Config, v string) error { c.PetID = v; return nil },
	},
	"format": {
		get: func(c *config.Config) any { return c.Format },
		set: func(c *config.Config, v string) error {
			if v != "json" && v != "quiet" {
				return output.ErrValidation("format", "Format must be json or quiet")
			}
			c.Format = v
			return nil
		},
	},
}

func knownKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a config value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: knownKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			accessor, ok := configKeys[args[0]]
			if !ok {
				return output.ErrUsage("Unknown config key: " + args[0])
			}
			return app.OK(map[string]any{
				"key":    args[0],
				"value":  accessor.get(app.Config),
				"source": app.Config.Sources[args[0]],
			})
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a config value",
		Long:      "Persist a value in the global config file.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: knownKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			accessor, ok := configKeys[args[0]]
			if !ok {
				return output.ErrUsage("Unknown config key: " + args[0])
			}

			// Edit only what the file holds so env/flag overrides don't get
			// baked into the saved config.
			cfg := config.LoadGlobalFile()
			if err := accessor.set(cfg, args[1]); err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			return app.OK(map[string]any{
				"key":   args[0],
				"value": accessor.get(cfg),
			}, output.WithSummary("Saved "+args[0]))
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the resolved configuration",
		Long:  "List every config value with the source it was resolved from.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			entries := make(map[string]any, len(configKeys))
			for _, key := range knownKeys() {
				source := app.Config.Sources[key]
				if source == "" {
					source = string(config.SourceDefault)
				}
				entries[key] = map[string]any{
					"value":  configKeys[key].get(app.Config),
					"source": source,
				}
			}
			return app.OK(entries)
		},
	}
}
