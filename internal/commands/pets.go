package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/models"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewPetsCmd creates the pets command group.
func NewPetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Manage pets",
		Long:  "Create, list, update, and share pets.",
	}

	cmd.AddCommand(
		newPetsListCmd(),
		newPetsShowCmd(),
		newPetsCreateCmd(),
		newPetsUpdateCmd(),
		newPetsDeleteCmd(),
		newPetsSelectCmd(),
		newPetsWeightCmd(),
		newPetsGoalCmd(),
		newPetsAssignGroupCmd(),
		newPetsCurrentGroupCmd(),
	)

	return cmd
}

func newPetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accessible pets",
		Long:  "List your pets plus pets shared with you through groups.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			pets, err := app.API.ListAccessiblePets(cmd.Context())
			if err != nil {
				return err
			}
			return app.OK(pets, output.WithSummary(fmt.Sprintf("%d pets", len(pets))))
		},
	}
}

func newPetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [pet-id]",
		Short: "Show pet details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			petID, err := resolvePetID(app, args)
			if err != nil {
				return err
			}
			pet, err := app.API.PetDetails(cmd.Context(), petID)
			if err != nil {
				return err
			}
			return app.OK(pet, output.WithSummary(pet.Name))
		},
	}
}

func newPetsCreateCmd() *cobra.Command {
	var req models.CreatePetRequest
	var weight, target, height float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new pet",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if req.Name == "" {
				return output.ErrValidation("name", "Pet name is required")
			}
			if req.PetType == "" {
				return output.ErrValidation("pet_type", "Pet type is required (dog, cat, bird, fish, rabbit, other)")
			}
			if cmd.Flags().Changed("weight") {
				if weight <= 0 {
					return output.ErrValidation("current_weight_kg", "Weight must be positive")
				}
				req.CurrentWeightKg = &weight
			}
			if cmd.Flags().Changed("target-weight") {
				req.TargetWeightKg = &target
			}
			if cmd.Flags().Changed("height") {
				req.HeightCm = &height
			}

			pet, err := app.API.CreatePet(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return app.OK(pet, output.WithSummary("Created pet "+pet.Name))
		},
	}

	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Pet name (required)")
	cmd.Flags().StringVarP(&req.PetType, "type", "t", "", "Pet type: dog, cat, bird, fish, rabbit, other (required)")
	cmd.Flags().StringVar(&req.Breed, "breed", "", "Breed")
	cmd.Flags().StringVar(&req.Gender, "gender", "", "Gender")
	cmd.Flags().Int64Var(&req.BirthDate, "birth-date", 0, "Birth date (unix timestamp)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Current weight in kg")
	cmd.Flags().Float64Var(&target, "target-weight", 0, "Target weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().StringVar(&req.MicrochipID, "microchip", "", "Microchip ID")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")

	return cmd
}

func newPetsUpdateCmd() *cobra.Command {
	var req models.UpdatePetRequest
	var calories int

	cmd := &cobra.Command{
		Use:   "update [pet-id]",
		Short: "Update a pet",
		Long:  "Apply a partial update; unset flags leave fields unchanged.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			petID, err := resolvePetID(app, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("calorie-target") {
				if calories <= 0 {
					return output.ErrValidation("daily_calorie_target", "Calorie target must be positive")
				}
				req.DailyCalorieTarget = &calories
			}

			pet, err := app.API.UpdatePet(cmd.Context(), petID, &req)
			if err != nil {
				return err
			}
			return app.OK(pet, output.WithSummary("Updated pet "+pet.Name))
		},
	}

	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Pet name")
	cmd.Flags().StringVar(&req.Breed, "breed", "", "Breed")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")
	cmd.Flags().IntVar(&calories, "calorie-target", 0, "Daily calorie target")

	return cmd
}

func newPetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pet-id>",
		Short: "Delete a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if err := app.API.DeletePet(cmd.Context(), args[0]); err != nil {
				return err
			}
			// Deleting the selected pet drops the selection too.
			if app.Store.SelectedPet() == args[0] {
				app.Store.ClearSelectedPet()
			}
			return app.OK(map[string]string{
				"id":     args[0],
				"status": "deleted",
			}, output.WithSummary("Deleted pet"))
		},
	}
}

func newPetsSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <pet-id>",
		Short: "Select the default pet",
		Long:  "Persist a default pet so meal and weight commands don't need --pet.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			// Verify the pet is accessible before persisting the selection.
			pet, err := app.API.PetDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.Store.SetSelectedPet(pet.ID)
			return app.OK(map[string]string{
				"selected_pet": pet.ID,
				"name":         pet.Name,
			}, output.WithSummary("Selected "+pet.Name))
		},
	}
}

func newPetsWeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight <kg>",
		Short: "Record the pet's current weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			petID, err := resolvePetID(app, nil)
			if err != nil {
				return err
			}
			kg, err := parsePositiveFloat(args[0], "weight")
			if err != nil {
				return err
			}

			pet, err := app.API.RecordWeight(cmd.Context(), petID, kg)
			if err != nil {
				return err
			}
			return app.OK(pet, output.WithSummary(fmt.Sprintf("Recorded %.1f kg for %s", kg, pet.Name)))
		},
	}
	return cmd
}

func newPetsGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal <kg>",
		Short: "Set the pet's target weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			petID, err := resolvePetID(app, nil)
			if err != nil {
				return err
			}
			kg, err := parsePositiveFloat(args[0], "target weight")
			if err != nil {
				return err
			}

			pet, err := app.API.SetWeightGoal(cmd.Context(), petID, kg)
			if err != nil {
				return err
			}
			return app.OK(pet, output.WithSummary(fmt.Sprintf("Target weight %.1f kg for %s", kg, pet.Name)))
		},
	}
}

func newPetsAssignGroupCmd() *cobra.Command {
	var groupID string
	var remove bool

	cmd := &cobra.Command{
		Use:   "assign-group [pet-id]",
		Short: "Assign a pet to a group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			petID, err := resolvePetID(app, args)
			if err != nil {
				return err
			}
			if groupID == "" && !remove {
				return output.ErrUsageHint("Group required", "Use --group <id>, or --remove to unassign")
			}
			if remove {
				groupID = ""
			}

			assignment, err := app.API.AssignPetToGroup(cmd.Context(), petID, groupID)
			if err != nil {
				return err
			}
			summary := "Removed " + assignment.PetName + " from its group"
			if assignment.GroupID != "" {
				summary = fmt.Sprintf("Assigned %s to %s", assignment.PetName, assignment.CurrentGroupName)
			}
			return app.OK(assignment, output.WithSummary(summary))
		},
	}

	cmd.Flags().StringVarP(&groupID, "group", "g", "", "Group ID")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the pet from its group")

	return cmd
}

func newPetsCurrentGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current-group [pet-id]",
		Short: "Show the pet's current group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			petID, err := resolvePetID(app, args)
			if err != nil {
				return err
			}
			assignment, err := app.API.PetCurrentGroup(cmd.Context(), petID)
			if err != nil {
				return err
			}
			summary := assignment.PetName + " is not in a group"
			if assignment.GroupID != "" {
				summary = fmt.Sprintf("%s is in %s", assignment.PetName, assignment.CurrentGroupName)
			}
			return app.OK(assignment, output.WithSummary(summary))
		},
	}
}
