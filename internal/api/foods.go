package api

import (
	"context"

	"github.com/petcarehq/petcare-cli/internal/models"
)

// CreateFood adds a food item to the group's shared database.
func (a *API) CreateFood(ctx context.Context, req *models.CreateFoodRequest) (*models.Food, error) {
	env, err := a.client.Post(ctx, "/foods/create", req)
	if err != nil {
		return nil, err
	}
	return decode[models.Food](env)
}

// ListFoods returns the foods visible to the user's group.
func (a *API) ListFoods(ctx context.Context) ([]models.Food, error) {
	env, err := a.client.Get(ctx, "/foods/list", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Food](env)
}

// SearchFoods matches foods by brand or product name.
func (a *API) SearchFoods(ctx context.Context, query string) ([]models.Food, error) {
	env, err := a.client.Get(ctx, "/foods/info", Params{"query": query})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Food](env)
}

// FoodDetails fetches one food item.
func (a *API) FoodDetails(ctx context.Context, foodID string) (*models.Food, error) {
	env, err := a.client.Get(ctx, "/foods/"+foodID+"/details", nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Food](env)
}

// UpdateFood applies a partial update to a food item.
func (a *API) UpdateFood(ctx context.Context, foodID string, req *models.UpdateFoodRequest) (*models.Food, error) {
	env, err := a.client.Post(ctx, "/foods/"+foodID+"/update", req)
	if err != nil {
		return nil, err
	}
	return decode[models.Food](env)
}

// DeleteFood removes a food item.
func (a *API) DeleteFood(ctx context.Context, foodID string) error {
	_, err := a.client.Post(ctx, "/foods/"+foodID+"/delete", nil)
	return err
}
