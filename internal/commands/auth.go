// Package commands implements the CLI commands.
package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/oauth"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewAuthCmd creates the auth command group.
func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  "Manage PetCare authentication including login, logout, and status.",
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthStatusCmd(),
		newAuthRefreshCmd(),
		newAuthTokenCmd(),
	)

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email string
	var google bool
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to PetCare",
		Long:  "Log in with email and password, or with Google via --google.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			if google {
				flow := oauth.NewFlow(app.Config.GoogleClientID, app.API, app.Logger)
				flow.NoBrowser = noBrowser
				res, err := flow.Run(cmd.Context())
				if err != nil {
					return err
				}
				return app.OK(res.User,
					output.WithSummary("Logged in as "+res.User.Email))
			}

			if email == "" {
				return output.ErrUsageHint("Email required", "Use --email, or --google for Google sign-in")
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			res, err := app.API.LoginEmail(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return app.OK(res.User,
				output.WithSummary("Logged in as "+res.User.Email))
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().BoolVar(&google, "google", false, "Sign in with Google")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear stored credentials",
		Long:  "Clear the local session. The backend call is best-effort; logout always succeeds locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			app.API.Logout(cmd.Context())

			return app.OK(map[string]string{
				"status": "logged_out",
			}, output.WithSummary("Logged out"))
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			if !app.Session.IsAuthenticated() {
				return app.OK(map[string]any{
					"authenticated": false,
					"base_url":      app.Config.BaseURL,
				}, output.WithSummary("Not logged in"))
			}

			status := map[string]any{
				"authenticated": true,
				"base_url":      app.Config.BaseURL,
				"keyring":       app.Store.UsingKeyring(),
			}
			summary := "Logged in"
			if u := app.Session.User(); u != nil {
				status["email"] = u.Email
				status["name"] = u.Name
				status["source"] = u.Source
				summary = "Logged in as " + u.Email
			}
			return app.OK(status, output.WithSummary(summary))
		},
	}
}

func newAuthRefreshCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Obtain a fresh token pair",
		Long:  "Re-authenticate with email and password to replace the stored tokens.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			if email == "" {
				if u := app.Session.User(); u != nil {
					email = u.Email
				}
			}
			if email == "" {
				return output.ErrUsageHint("Email required", "Use --email")
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			res, err := app.API.RefreshAccessToken(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return app.OK(map[string]any{
				"token_type": res.TokenType,
				"expires_in": res.ExpiresIn,
			}, output.WithSummary("Tokens refreshed"))
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")

	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the stored access token",
		Long:  "Print the access token for use with curl or other tools.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			token := app.Store.GetAccessToken()
			if token == "" {
				return output.ErrUsageHint("No access token stored", "Run: petcare auth login")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

// readPassword prompts on stderr and reads without echo when stdin is a
// terminal; otherwise it reads a line (for piped input in scripts).
func readPassword(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(data), nil
	}

	var line string
	if _, err := fmt.Scanln(&line); err != nil {
		return "", output.ErrUsage("Password required")
	}
	return line, nil
}
