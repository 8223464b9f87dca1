package commands

import (
	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/models"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewProfileCmd creates the profile command group.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your account",
	}

	cmd.AddCommand(
		newProfileShowCmd(),
		newProfileUpdateCmd(),
		newProfileResetPasswordCmd(),
	)

	return cmd
}

// NewSignupCmd creates the top-level signup command.
func NewSignupCmd() *cobra.Command {
	var req models.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a PetCare account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if req.Email == "" {
				return output.ErrValidation("email", "Email is required")
			}
			if req.Name == "" {
				return output.ErrValidation("name", "Name is required")
			}
			password, err := readPassword("Choose a password: ")
			if err != nil {
				return err
			}
			if len(password) < 8 {
				return output.ErrValidation("password", "Password must be at least 8 characters")
			}
			req.Password = password

			profile, err := app.API.Signup(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return app.OK(profile, output.WithSummary(
				"Account created for "+profile.Email+". Run: petcare auth login"))
		},
	}

	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Email (required)")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Display name (required)")

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if cached {
				u := app.Session.User()
				if u == nil {
					return output.ErrUsageHint("No cached profile", "Run: petcare auth login")
				}
				return app.OK(u, output.WithSummary(u.Email+" (cached)"))
			}

			profile, err := app.API.Me(cmd.Context())
			if err != nil {
				return err
			}
			return app.OK(profile, output.WithSummary(profile.Email))
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Show the locally cached profile without a network call")

	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var req models.UpdateProfileRequest

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if req.Name == "" && req.Picture == "" {
				return output.ErrUsage("Nothing to update")
			}
			profile, err := app.API.UpdateProfile(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return app.OK(profile, output.WithSummary("Profile updated"))
		},
	}

	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Display name")
	cmd.Flags().StringVar(&req.Picture, "picture", "", "Avatar URL")

	return cmd
}

func newProfileResetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			oldPassword, err := readPassword("Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := readPassword("New password: ")
			if err != nil {
				return err
			}
			if len(newPassword) < 8 {
				return output.ErrValidation("new_password", "Password must be at least 8 characters")
			}

			if err := app.API.ResetPassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return err
			}
			return app.OK(map[string]string{
				"status": "password_changed",
			}, output.WithSummary("Password changed"))
		},
	}
}
