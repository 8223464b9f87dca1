// Package cli wires the root cobra command.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/commands"
	"github.com/petcarehq/petcare-cli/internal/config"
	"github.com/petcarehq/petcare-cli/internal/output"
	"github.com/petcarehq/petcare-cli/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var flags appctx.GlobalFlags

	cmd := &cobra.Command{
		Use:           "petcare",
		Short:         "Command-line interface for the PetCare API",
		Long:          "petcare is a CLI tool for tracking pets, foods, meals, and sharing groups.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for help and version commands
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(config.FlagOverrides{
				BaseURL: flags.BaseURL,
				Pet:     flags.Pet,
				Format:  flags.Format,
			})
			if err != nil {
				return err
			}

			app := appctx.NewApp(cfg)
			app.Flags = flags
			app.ApplyFlags()

			cmd.SetContext(appctx.WithApp(cmd.Context(), app))
			return nil
		},
	}

	// Allow flags anywhere in the command line
	cmd.Flags().SetInterspersed(true)
	cmd.PersistentFlags().SetInterspersed(true)

	cmd.PersistentFlags().StringVar(&flags.BaseURL, "base-url", "", "PetCare API base URL")
	cmd.PersistentFlags().StringVarP(&flags.Pet, "pet", "p", "", "Pet ID (overrides the selected pet)")
	cmd.PersistentFlags().StringVar(&flags.Format, "format", "", "Output format (json, quiet)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Output data only, no envelope")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose output (debug logging)")

	return cmd
}

// Execute runs the root command.
func Execute() {
	cmd := NewRootCmd()

	cmd.AddCommand(commands.NewAuthCmd())
	cmd.AddCommand(commands.NewSignupCmd())
	cmd.AddCommand(commands.NewPetsCmd())
	cmd.AddCommand(commands.NewFoodsCmd())
	cmd.AddCommand(commands.NewMealsCmd())
	cmd.AddCommand(commands.NewGroupsCmd())
	cmd.AddCommand(commands.NewProfileCmd())
	cmd.AddCommand(commands.NewConfigCmd())
	cmd.AddCommand(commands.NewAPICmd())
	cmd.AddCommand(commands.NewVersionCmd())

	executedCmd, err := cmd.ExecuteC()
	if err != nil {
		err = transformCobraError(err)
		apiErr := output.AsError(err)

		if app := appctx.FromContext(executedCmd.Context()); app != nil {
			_ = app.Err(err)
			os.Exit(apiErr.ExitCode())
		}

		// App not available (failed during setup): output directly.
		writer := output.New(output.Options{
			Format: output.FormatJSON,
			Writer: os.Stdout,
		})
		_ = writer.Err(err)
		os.Exit(apiErr.ExitCode())
	}
}

// transformCobraError maps cobra's default messages onto structured usage
// errors so they carry the right code and exit status.
func transformCobraError(err error) error {
	msg := err.Error()

	if strings.HasPrefix(msg, "flag needs an argument: ") {
		flag := strings.TrimPrefix(msg, "flag needs an argument: ")
		return output.ErrUsage(flag + " requires a value")
	}

	if strings.HasPrefix(msg, "unknown flag: ") {
		flag := strings.TrimPrefix(msg, "unknown flag: ")
		return output.ErrUsage("Unknown option: " + flag)
	}

	if strings.Contains(msg, "invalid argument") {
		return output.ErrUsage(msg)
	}

	if strings.Contains(msg, "arg(s), received") {
		return output.ErrUsage(msg)
	}

	if strings.HasPrefix(msg, "required flag(s) ") {
		return output.ErrUsage(msg)
	}

	return err
}
