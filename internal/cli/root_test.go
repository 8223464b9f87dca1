package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcarehq/petcare-cli/internal/output"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "petcare", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("base-url"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("pet"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("quiet"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}

func TestTransformCobraError(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"flag needs an argument: --pet", "--pet requires a value"},
		{"unknown flag: --bogus", "Unknown option: --bogus"},
	}
	for _, tc := range cases {
		err := transformCobraError(assertError(tc.in))
		apiErr := output.AsError(err)
		require.Equal(t, output.CodeUsage, apiErr.Code)
		assert.Equal(t, tc.want, apiErr.Message)
	}
}

type assertError string

func (e assertError) Error() string { return string(e) }
