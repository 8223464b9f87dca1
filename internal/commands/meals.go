package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/dateparse"
	"github.com/petcarehq/petcare-cli/internal/models"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewMealsCmd creates the meals command group.
func NewMealsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Record and review feedings",
	}

	cmd.AddCommand(
		newMealsLogCmd(),
		newMealsListCmd(),
		newMealsShowCmd(),
		newMealsTodayCmd(),
		newMealsSummaryCmd(),
		newMealsUpdateCmd(),
		newMealsDeleteCmd(),
	)

	return cmd
}

func newMealsLogCmd() *cobra.Command {
	var req models.CreateMealRequest

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a feeding",
		Long:  "Record that the selected pet was fed. Serving is in units (cans, cups) or grams.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if req.PetID == "" {
				petID, err := resolvePetID(app, nil)
				if err != nil {
					return err
				}
				req.PetID = petID
			}
			if req.FoodID == "" {
				return output.ErrValidation("food_id", "Food is required (--food)")
			}
			if req.ServingType != models.ServingUnits && req.ServingType != models.ServingGrams {
				return output.ErrValidation("serving_type", "Serving type must be units or grams")
			}
			if req.ServingAmount <= 0 {
				return output.ErrValidation("serving_amount", "Serving amount must be positive")
			}

			meal, err := app.API.CreateMeal(cmd.Context(), &req)
			if err != nil {
				return err
			}
			summary := fmt.Sprintf("Logged %s for %s", output.Grams(meal.ActualWeightG), meal.PetName)
			if meal.Calories > 0 {
				summary += " (" + output.Calories(meal.Calories) + ")"
			}
			return app.OK(meal, output.WithSummary(summary))
		},
	}

	cmd.Flags().StringVar(&req.PetID, "pet-id", "", "Pet ID (defaults to the selected pet)")
	cmd.Flags().StringVarP(&req.FoodID, "food", "f", "", "Food ID (required)")
	cmd.Flags().StringVar(&req.FedAt, "at", "", "Feeding time (RFC 3339; defaults to now)")
	cmd.Flags().StringVarP(&req.MealType, "meal", "m", "", "Meal type: breakfast, lunch, dinner, snack")
	cmd.Flags().StringVarP(&req.ServingType, "serving", "s", models.ServingGrams, "Serving type: units or grams")
	cmd.Flags().Float64VarP(&req.ServingAmount, "amount", "a", 0, "Serving amount (required)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")

	return cmd
}

func mealFilterFlags(cmd *cobra.Command, filters *models.MealFilters) {
	cmd.Flags().StringVar(&filters.GroupID, "group", "", "Filter by group ID")
	cmd.Flags().StringVar(&filters.FedBy, "fed-by", "", "Filter by feeder user ID")
	cmd.Flags().StringVar(&filters.DateFrom, "from", "", `Start date (YYYY-MM-DD or natural, e.g. "yesterday", "last week")`)
	cmd.Flags().StringVar(&filters.DateTo, "to", "", `End date (YYYY-MM-DD or natural, e.g. "today")`)
	cmd.Flags().StringVar(&filters.MealType, "meal", "", "Filter by meal type")
}

// resolveDateFilters turns natural language date filters into YYYY-MM-DD.
func resolveDateFilters(filters *models.MealFilters) {
	if filters.DateFrom != "" {
		filters.DateFrom = dateparse.Parse(filters.DateFrom)
	}
	if filters.DateTo != "" {
		filters.DateTo = dateparse.Parse(filters.DateTo)
	}
}

func newMealsListCmd() *cobra.Command {
	var filters models.MealFilters
	var allPets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feedings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if !allPets && filters.PetID == "" {
				// Scope to the selected pet when one is set; otherwise the
				// server returns everything visible.
				filters.PetID = app.SelectedPet()
			}
			resolveDateFilters(&filters)

			meals, err := app.API.ListMeals(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return app.OK(meals, output.WithSummary(fmt.Sprintf("%d meals", len(meals))))
		},
	}

	cmd.Flags().StringVar(&filters.PetID, "pet-id", "", "Filter by pet ID")
	cmd.Flags().BoolVar(&allPets, "all", false, "Don't scope to the selected pet")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&filters.Offset, "offset", 0, "Result offset")
	mealFilterFlags(cmd, &filters)

	return cmd
}

func newMealsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <meal-id>",
		Short: "Show one feeding record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			meal, err := app.API.MealDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.OK(meal)
		},
	}
}

func newMealsTodayCmd() *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Today's feeding summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			petID := ""
			if groupID == "" {
				petID = app.SelectedPet()
			}

			summary, err := app.API.TodayMeals(cmd.Context(), petID, groupID)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%d meals, %s today",
				summary.TotalMeals, output.Calories(summary.TotalCalories))
			if summary.CalorieTargetPercentage != nil {
				line += fmt.Sprintf(" (%.0f%% of target)", *summary.CalorieTargetPercentage)
			}
			return app.OK(summary, output.WithSummary(line))
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "Summarize a whole group instead of one pet")

	return cmd
}

func newMealsSummaryCmd() *cobra.Command {
	var filters models.MealFilters

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate feeding statistics",
		Long:  "Aggregate statistics over a date range: totals, averages, and most-used foods.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if filters.PetID == "" {
				filters.PetID = app.SelectedPet()
			}
			resolveDateFilters(&filters)

			stats, err := app.API.MealSummary(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return app.OK(stats, output.WithSummary(fmt.Sprintf(
				"%d meals over %d days, %s total",
				stats.TotalMeals, stats.TotalDays, output.Calories(stats.TotalCalories))))
		},
	}

	cmd.Flags().StringVar(&filters.PetID, "pet-id", "", "Scope to a pet ID")
	mealFilterFlags(cmd, &filters)

	return cmd
}

func newMealsUpdateCmd() *cobra.Command {
	var req models.UpdateMealRequest
	var amount float64

	cmd := &cobra.Command{
		Use:   "update <meal-id>",
		Short: "Update a feeding record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if cmd.Flags().Changed("amount") {
				if amount <= 0 {
					return output.ErrValidation("serving_amount", "Serving amount must be positive")
				}
				req.ServingAmount = &amount
			}

			meal, err := app.API.UpdateMeal(cmd.Context(), args[0], &req)
			if err != nil {
				return err
			}
			return app.OK(meal, output.WithSummary("Updated meal"))
		},
	}

	cmd.Flags().StringVarP(&req.FoodID, "food", "f", "", "Food ID")
	cmd.Flags().StringVar(&req.FedAt, "at", "", "Feeding time (RFC 3339)")
	cmd.Flags().StringVarP(&req.MealType, "meal", "m", "", "Meal type")
	cmd.Flags().StringVarP(&req.ServingType, "serving", "s", "", "Serving type: units or grams")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Serving amount")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")

	return cmd
}

func newMealsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <meal-id>",
		Short: "Delete a feeding record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if err := app.API.DeleteMeal(cmd.Context(), args[0]); err != nil {
				return err
			}
			return app.OK(map[string]string{
				"id":     args[0],
				"status": "deleted",
			}, output.WithSummary("Deleted meal"))
		},
	}
}
