package commands

import (
	"strconv"

	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// resolvePetID picks the pet to act on: positional argument first, then the
// --pet flag / persisted selection / configured default.
func resolvePetID(app *appctx.App, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if id := app.SelectedPet(); id != "" {
		return id, nil
	}
	return "", output.ErrUsageHint("No pet specified",
		"Pass a pet ID, use --pet, or run: petcare pets select <pet-id>")
}

// parsePositiveFloat parses a strictly positive numeric argument.
func parsePositiveFloat(raw, field string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, output.ErrValidation(field, "Must be a number")
	}
	if v <= 0 {
		return 0, output.ErrValidation(field, "Must be positive")
	}
	return v, nil
}
