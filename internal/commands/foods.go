package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/models"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewFoodsCmd creates the foods command group.
func NewFoodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foods",
		Short: "Manage the shared food database",
	}

	cmd.AddCommand(
		newFoodsListCmd(),
		newFoodsSearchCmd(),
		newFoodsShowCmd(),
		newFoodsCreateCmd(),
		newFoodsUpdateCmd(),
		newFoodsDeleteCmd(),
	)

	return cmd
}

func newFoodsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List foods",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			foods, err := app.API.ListFoods(cmd.Context())
			if err != nil {
				return err
			}
			return app.OK(foods, output.WithSummary(fmt.Sprintf("%d foods", len(foods))))
		},
	}
}

func newFoodsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search foods by brand or product name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			foods, err := app.API.SearchFoods(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.OK(foods, output.WithSummary(fmt.Sprintf("%d matches", len(foods))))
		},
	}
}

func newFoodsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <food-id>",
		Short: "Show food details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			food, err := app.API.FoodDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.OK(food, output.WithSummary(food.Brand+" "+food.ProductName))
		},
	}
}

func newFoodsCreateCmd() *cobra.Command {
	var req models.CreateFoodRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a food to the database",
		Long:  "Add a food item. Nutritional values are per 100g.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if req.Brand == "" {
				return output.ErrValidation("brand", "Brand is required")
			}
			if req.ProductName == "" {
				return output.ErrValidation("product_name", "Product name is required")
			}
			if req.FoodType != "wet_food" && req.FoodType != "dry_food" {
				return output.ErrValidation("food_type", "Food type must be wet_food or dry_food")
			}
			if req.UnitWeight <= 0 {
				return output.ErrValidation("unit_weight", "Unit weight must be positive")
			}
			if req.Calories < 0 {
				return output.ErrValidation("calories", "Calories cannot be negative")
			}

			food, err := app.API.CreateFood(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return app.OK(food, output.WithSummary("Created "+food.Brand+" "+food.ProductName))
		},
	}

	cmd.Flags().StringVar(&req.Brand, "brand", "", "Brand (required)")
	cmd.Flags().StringVar(&req.ProductName, "product", "", "Product name (required)")
	cmd.Flags().StringVar(&req.FoodType, "type", "", "Food type: wet_food or dry_food (required)")
	cmd.Flags().StringVar(&req.TargetPet, "target-pet", "", "Species the food is made for")
	cmd.Flags().Float64Var(&req.UnitWeight, "unit-weight", 0, "Grams per unit (can, cup, ...)")
	cmd.Flags().Float64Var(&req.Calories, "calories", 0, "Calories per 100g")
	cmd.Flags().Float64Var(&req.Protein, "protein", 0, "Protein % per 100g")
	cmd.Flags().Float64Var(&req.Fat, "fat", 0, "Fat % per 100g")
	cmd.Flags().Float64Var(&req.Moisture, "moisture", 0, "Moisture % per 100g")
	cmd.Flags().Float64Var(&req.Carbohydrate, "carbs", 0, "Carbohydrate % per 100g")

	return cmd
}

func newFoodsUpdateCmd() *cobra.Command {
	var req models.UpdateFoodRequest
	var unitWeight, calories float64

	cmd := &cobra.Command{
		Use:   "update <food-id>",
		Short: "Update a food",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if cmd.Flags().Changed("unit-weight") {
				if unitWeight <= 0 {
					return output.ErrValidation("unit_weight", "Unit weight must be positive")
				}
				req.UnitWeight = &unitWeight
			}
			if cmd.Flags().Changed("calories") {
				req.Calories = &calories
			}

			food, err := app.API.UpdateFood(cmd.Context(), args[0], &req)
			if err != nil {
				return err
			}
			return app.OK(food, output.WithSummary("Updated "+food.ProductName))
		},
	}

	cmd.Flags().StringVar(&req.Brand, "brand", "", "Brand")
	cmd.Flags().StringVar(&req.ProductName, "product", "", "Product name")
	cmd.Flags().Float64Var(&unitWeight, "unit-weight", 0, "Grams per unit")
	cmd.Flags().Float64Var(&calories, "calories", 0, "Calories per 100g")

	return cmd
}

func newFoodsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <food-id>",
		Short: "Delete a food",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			if err := app.API.DeleteFood(cmd.Context(), args[0]); err != nil {
				return err
			}
			return app.OK(map[string]string{
				"id":     args[0],
				"status": "deleted",
			}, output.WithSummary("Deleted food"))
		},
	}
}
