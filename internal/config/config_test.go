package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "petcare")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 500, cfg.BaseDelayMs)
	assert.Equal(t, 30000, cfg.TimeoutMs)
	assert.False(t, cfg.LogRequests)
}

func TestLoadJSONFile(t *testing.T) {
	dir := withConfigDir(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"base_url": "https://api.petcare.example", "max_attempts": 5}`), 0600))

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.petcare.example", cfg.BaseURL)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, string(SourceGlobal), cfg.Sources["base_url"])
	assert.Equal(t, string(SourceGlobal), cfg.Sources["max_attempts"])
}

func TestLoadYAMLFile(t *testing.T) {
	dir := withConfigDir(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("base_url: https://api.petcare.example\nlog_requests: true\n"), 0600))

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.petcare.example", cfg.BaseURL)
	assert.True(t, cfg.LogRequests)
}

func TestJSONPreferredOverYAML(t *testing.T) {
	dir := withConfigDir(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"base_url": "https://json.example"}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("base_url: https://yaml.example\n"), 0600))

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://json.example", cfg.BaseURL)
}

func TestMalformedFileSkipped(t *testing.T) {
	dir := withConfigDir(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{not json`), 0600))

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := withConfigDir(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"base_url": "https://file.example"}`), 0600))
	t.Setenv("PETCARE_BASE_URL", "https://env.example")
	t.Setenv("PETCARE_MAX_ATTEMPTS", "4")
	t.Setenv("PETCARE_LOG_RESPONSES", "1")

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.BaseURL)
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.True(t, cfg.LogResponses)
	assert.Equal(t, string(SourceEnv), cfg.Sources["base_url"])
}

func TestFlagsOverrideEnv(t *testing.T) {
	withConfigDir(t)
	t.Setenv("PETCARE_BASE_URL", "https://env.example")
	t.Setenv("PETCARE_PET_ID", "pet-env")

	cfg, err := Load(FlagOverrides{BaseURL: "https://flag.example", Pet: "pet-flag"})
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.BaseURL)
	assert.Equal(t, "pet-flag", cfg.PetID)
	assert.Equal(t, string(SourceFlag), cfg.Sources["base_url"])
	assert.Equal(t, string(SourceFlag), cfg.Sources["pet_id"])
}

func TestValidateRejectsBadValues(t *testing.T) {
	withConfigDir(t)
	t.Setenv("PETCARE_MAX_ATTEMPTS", "0")

	_, err := Load(FlagOverrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_attempts")
}

func TestParseEnvBool(t *testing.T) {
	tests := []struct {
		in    string
		val   bool
		known bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"false", false, true},
		{"0", false, true},
		{"yes", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		val, known := parseEnvBool(tt.in)
		assert.Equal(t, tt.val, val, "value for %q", tt.in)
		assert.Equal(t, tt.known, known, "known for %q", tt.in)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	withConfigDir(t)

	cfg := Default()
	cfg.BaseURL = "https://saved.example"
	cfg.PetID = "pet-1"
	require.NoError(t, Save(cfg))

	loaded, err := Load(FlagOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example", loaded.BaseURL)
	assert.Equal(t, "pet-1", loaded.PetID)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://x.example", NormalizeBaseURL("https://x.example/"))
	assert.Equal(t, "https://x.example", NormalizeBaseURL("https://x.example"))
}
