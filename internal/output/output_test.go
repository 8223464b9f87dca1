package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterOK(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	err := w.OK(map[string]string{"name": "Mochi"}, WithSummary("1 pet"))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "1 pet", resp.Summary)
}

func TestWriterQuietOmitsEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatQuiet, Writer: &buf})

	require.NoError(t, w.OK(map[string]string{"name": "Mochi"}))

	var data map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "Mochi", data["name"])
	assert.NotContains(t, buf.String(), `"ok"`)
}

func TestWriterErr(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	require.NoError(t, w.Err(ErrUnauthorized("")))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, CodeUnauthorized, resp.Code)
	assert.Equal(t, "Authentication failed", resp.Error)
}

func TestAsErrorPassthrough(t *testing.T) {
	orig := ErrServer(503, "")
	got := AsError(orig)
	assert.Same(t, orig, got)

	wrapped := AsError(errors.New("plain"))
	assert.Equal(t, CodeClient, wrapped.Code)
	assert.Equal(t, "plain", wrapped.Message)
}

func TestErrorRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *Error
		retryable bool
		exit      int
	}{
		{"network", ErrNetwork(errors.New("refused")), true, ExitNetwork},
		{"timeout", ErrTimeout(errors.New("deadline")), true, ExitNetwork},
		{"server", ErrServer(502, ""), true, ExitServer},
		{"parse", ErrParse(200, errors.New("bad json")), false, ExitParse},
		{"unauthorized", ErrUnauthorized(""), false, ExitAuth},
		{"client", ErrClient(404, "", "Pet not found"), false, ExitClient},
		{"validation", ErrValidation("serving_amount", "must be positive"), false, ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.exit, tt.err.ExitCode())
		})
	}
}

func TestErrClientDefaults(t *testing.T) {
	e := ErrClient(400, "", "")
	assert.Equal(t, CodeClient, e.Code)
	assert.Equal(t, "Request failed", e.Message)

	e = ErrClient(400, "PET_LIMIT", "Too many pets")
	assert.Equal(t, "PET_LIMIT", e.Code)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1,234 kcal", Calories(1234.2))
	assert.Equal(t, "1,250 g", Grams(1250))
	assert.Equal(t, "4.2 kg", Kilograms(4.21))
	assert.Equal(t, "12,000", Count(12000))
}
