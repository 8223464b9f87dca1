package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewGroupsCmd creates the groups command group.
func NewGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage sharing groups",
		Long:  "Family groups share pets, foods, and feeding records between members.",
	}

	cmd.AddCommand(
		newGroupsCreateCmd(),
		newGroupsListCmd(),
		newGroupsInviteCmd(),
		newGroupsJoinCmd(),
		newGroupsMembersCmd(),
		newGroupsUpdateRoleCmd(),
		newGroupsRemoveMemberCmd(),
		newGroupsPetsCmd(),
	)

	return cmd
}

func newGroupsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if args[0] == "" {
				return output.ErrValidation("name", "Group name is required")
			}
			group, err := app.API.CreateGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.OK(group, output.WithSummary("Created group "+group.Name))
		},
	}
}

func newGroupsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			groups, err := app.API.MyGroups(cmd.Context())
			if err != nil {
				return err
			}
			return app.OK(groups, output.WithSummary(fmt.Sprintf("%d groups", len(groups))))
		},
	}
}

func newGroupsInviteCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "invite <group-id>",
		Short: "Invite someone to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if email == "" {
				return output.ErrValidation("email", "Email is required (--email)")
			}
			invitation, err := app.API.Invite(cmd.Context(), args[0], email)
			if err != nil {
				return err
			}
			return app.OK(invitation, output.WithSummary("Invite code: "+invitation.InviteCode))
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Invitee's email (required)")

	return cmd
}

func newGroupsJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <invite-code>",
		Short: "Join a group with an invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			group, err := app.API.JoinGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.OK(group, output.WithSummary("Joined "+group.Name))
		},
	}
}

func newGroupsMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <group-id>",
		Short: "List group members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			members, err := app.API.GroupMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.OK(members, output.WithSummary(fmt.Sprintf("%d members", len(members))))
		},
	}
}

func newGroupsUpdateRoleCmd() *cobra.Command {
	var userID, role string

	cmd := &cobra.Command{
		Use:   "update-role <group-id>",
		Short: "Change a member's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if userID == "" {
				return output.ErrValidation("user_id", "User is required (--user)")
			}
			if role != "creator" && role != "member" {
				return output.ErrValidation("role", "Role must be creator or member")
			}
			if err := app.API.UpdateMemberRole(cmd.Context(), args[0], userID, role); err != nil {
				return err
			}
			return app.OK(map[string]string{
				"group_id": args[0],
				"user_id":  userID,
				"role":     role,
			}, output.WithSummary("Updated role"))
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "Member's user ID (required)")
	cmd.Flags().StringVarP(&role, "role", "r", "", "New role: creator or member (required)")

	return cmd
}

func newGroupsRemoveMemberCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "remove-member <group-id>",
		Short: "Remove a member from a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if userID == "" {
				return output.ErrValidation("user_id", "User is required (--user)")
			}
			if err := app.API.RemoveMember(cmd.Context(), args[0], userID); err != nil {
				return err
			}
			return app.OK(map[string]string{
				"group_id": args[0],
				"user_id":  userID,
				"status":   "removed",
			}, output.WithSummary("Removed member"))
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "Member's user ID (required)")

	return cmd
}

func newGroupsPetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pets <group-id>",
		Short: "List pets in a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			pets, err := app.API.GroupPets(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.OK(pets, output.WithSummary(fmt.Sprintf("%d pets", len(pets))))
		},
	}
}
