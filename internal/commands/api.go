package commands

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/petcarehq/petcare-cli/internal/api"
	"github.com/petcarehq/petcare-cli/internal/appctx"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// NewAPICmd creates the api command for raw API access.
func NewAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api <verb> <path>",
		Short: "Raw API access",
		Long:  "Make raw requests to any PetCare endpoint. Useful for operations not covered by dedicated commands.",
	}

	cmd.AddCommand(
		newAPIGetCmd(),
		newAPIPostCmd(),
	)

	return cmd
}

func newAPIGetCmd() *cobra.Command {
	var jqExpr string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "GET request to the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			env, err := app.API.Client().Get(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return writeRaw(app, env, jqExpr)
		},
	}

	cmd.Flags().StringVar(&jqExpr, "jq", "", "Filter the response data with a jq expression")

	return cmd
}

func newAPIPostCmd() *cobra.Command {
	var data string
	var jqExpr string

	cmd := &cobra.Command{
		Use:   "post <path>",
		Short: "POST request to the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			var body any
			if data != "" {
				if err := json.Unmarshal([]byte(data), &body); err != nil {
					return output.ErrUsageHint("Invalid JSON data",
						fmt.Sprintf("JSON parse error: %v", err))
				}
			}

			env, err := app.API.Client().Do(cmd.Context(), api.RequestConfig{
				Method: http.MethodPost,
				Path:   args[0],
				Body:   body,
			})
			if err != nil {
				return err
			}
			return writeRaw(app, env, jqExpr)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVar(&jqExpr, "jq", "", "Filter the response data with a jq expression")

	return cmd
}

// writeRaw outputs the envelope data, optionally piped through a jq filter.
func writeRaw(app *appctx.App, env *api.Envelope, jqExpr string) error {
	var data any
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return output.ErrParse(http.StatusOK, err)
		}
	}

	if jqExpr == "" {
		return app.OK(data)
	}

	query, err := gojq.Parse(jqExpr)
	if err != nil {
		return output.ErrUsageHint("Invalid jq expression", err.Error())
	}

	var results []any
	iter := query.Run(data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if iterErr, isErr := v.(error); isErr {
			return output.ErrUsageHint("jq evaluation failed", iterErr.Error())
		}
		results = append(results, v)
	}

	// A single result unwraps; multiple results stay a list, like jq -s.
	if len(results) == 1 {
		return app.OK(results[0])
	}
	return app.OK(results)
}
