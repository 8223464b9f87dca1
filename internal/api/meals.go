package api

import (
	"context"

	"github.com/petcarehq/petcare-cli/internal/models"
)

// CreateMeal records a feeding.
func (a *API) CreateMeal(ctx context.Context, req *models.CreateMealRequest) (*models.Meal, error) {
	env, err := a.client.Post(ctx, "/meals", req)
	if err != nil {
		return nil, err
	}
	return decode[models.Meal](env)
}

// ListMeals returns feeding records matching the filters. Zero-valued
// filters are omitted from the query entirely.
func (a *API) ListMeals(ctx context.Context, filters models.MealFilters) ([]models.Meal, error) {
	env, err := a.client.Get(ctx, "/meals", mealParams(filters))
	if err != nil {
		return nil, err
	}
	return decodeList[models.Meal](env)
}

// MealDetails fetches one feeding record.
func (a *API) MealDetails(ctx context.Context, mealID string) (*models.Meal, error) {
	env, err := a.client.Get(ctx, "/meals/"+mealID+"/details", nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Meal](env)
}

// UpdateMeal applies a partial update to a feeding record.
func (a *API) UpdateMeal(ctx context.Context, mealID string, req *models.UpdateMealRequest) (*models.Meal, error) {
	env, err := a.client.Post(ctx, "/meals/"+mealID+"/update", req)
	if err != nil {
		return nil, err
	}
	return decode[models.Meal](env)
}

// DeleteMeal removes a feeding record.
func (a *API) DeleteMeal(ctx context.Context, mealID string) error {
	_, err := a.client.Post(ctx, "/meals/"+mealID+"/delete", nil)
	return err
}

// TodayMeals summarizes today's feedings for a pet or a whole group.
// Pass empty strings to let the server pick the scope.
func (a *API) TodayMeals(ctx context.Context, petID, groupID string) (*models.TodayMealSummary, error) {
	params := Params{}
	if petID != "" {
		params["pet_id"] = petID
	}
	if groupID != "" {
		params["group_id"] = groupID
	}
	env, err := a.client.Get(ctx, "/meals/today", params)
	if err != nil {
		return nil, err
	}
	return decode[models.TodayMealSummary](env)
}

// MealSummary returns aggregate feeding statistics over a date range.
func (a *API) MealSummary(ctx context.Context, filters models.MealFilters) (*models.MealStatistics, error) {
	env, err := a.client.Get(ctx, "/meals/summary", mealParams(filters))
	if err != nil {
		return nil, err
	}
	return decode[models.MealStatistics](env)
}

func mealParams(f models.MealFilters) Params {
	params := Params{}
	if f.PetID != "" {
		params["pet_id"] = f.PetID
	}
	if f.GroupID != "" {
		params["group_id"] = f.GroupID
	}
	if f.FedBy != "" {
		params["fed_by"] = f.FedBy
	}
	if f.DateFrom != "" {
		params["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		params["date_to"] = f.DateTo
	}
	if f.MealType != "" {
		params["meal_type"] = f.MealType
	}
	if f.Limit > 0 {
		params["limit"] = f.Limit
	}
	if f.Offset > 0 {
		params["offset"] = f.Offset
	}
	return params
}
