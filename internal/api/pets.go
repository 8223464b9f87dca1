package api

import (
	"context"
	"net/http"

	"github.com/petcarehq/petcare-cli/internal/models"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// decodeList is decode for array payloads.
func decodeList[T any](env *Envelope) ([]T, error) {
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = "Request failed"
		}
		return nil, output.ErrClient(0, "", msg)
	}
	var v []T
	if err := env.UnmarshalData(&v); err != nil {
		return nil, output.ErrParse(http.StatusOK, err)
	}
	return v, nil
}

// CreatePet registers a new pet owned by the current user.
func (a *API) CreatePet(ctx context.Context, req *models.CreatePetRequest) (*models.Pet, error) {
	env, err := a.client.Post(ctx, "/pets/", req)
	if err != nil {
		return nil, err
	}
	return decode[models.Pet](env)
}

// ListAccessiblePets returns every pet the user can see: owned pets plus
// pets shared through group membership.
func (a *API) ListAccessiblePets(ctx context.Context) ([]models.Pet, error) {
	env, err := a.client.Get(ctx, "/pets/accessible", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Pet](env)
}

// PetDetails fetches one pet's full record.
func (a *API) PetDetails(ctx context.Context, petID string) (*models.Pet, error) {
	env, err := a.client.Get(ctx, "/pets/"+petID+"/details", nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Pet](env)
}

// UpdatePet applies a partial update. Weight recording and weight goals go
// through here too: current_weight_kg and target_weight_kg are pet fields.
func (a *API) UpdatePet(ctx context.Context, petID string, req *models.UpdatePetRequest) (*models.Pet, error) {
	env, err := a.client.Post(ctx, "/pets/"+petID+"/update", req)
	if err != nil {
		return nil, err
	}
	return decode[models.Pet](env)
}

// DeletePet removes a pet.
func (a *API) DeletePet(ctx context.Context, petID string) error {
	_, err := a.client.Post(ctx, "/pets/"+petID+"/delete", nil)
	return err
}

// AssignPetToGroup moves a pet into a group, or out of all groups when
// groupID is empty.
func (a *API) AssignPetToGroup(ctx context.Context, petID, groupID string) (*models.GroupAssignment, error) {
	body := map[string]any{}
	if groupID != "" {
		body["group_id"] = groupID
	}
	env, err := a.client.Post(ctx, "/pets/"+petID+"/assign-group", body)
	if err != nil {
		return nil, err
	}
	return decode[models.GroupAssignment](env)
}

// PetCurrentGroup returns the pet's current group assignment.
func (a *API) PetCurrentGroup(ctx context.Context, petID string) (*models.GroupAssignment, error) {
	env, err := a.client.Get(ctx, "/pets/"+petID+"/current-group", nil)
	if err != nil {
		return nil, err
	}
	return decode[models.GroupAssignment](env)
}

// RecordWeight stores a new current weight for the pet.
func (a *API) RecordWeight(ctx context.Context, petID string, weightKg float64) (*models.Pet, error) {
	return a.UpdatePet(ctx, petID, &models.UpdatePetRequest{CurrentWeightKg: &weightKg})
}

// SetWeightGoal stores a target weight for the pet.
func (a *API) SetWeightGoal(ctx context.Context, petID string, targetKg float64) (*models.Pet, error) {
	return a.UpdatePet(ctx, petID, &models.UpdatePetRequest{TargetWeightKg: &targetKg})
}
