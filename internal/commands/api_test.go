package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIGetWithJQFilter(t *testing.T) {
	app, buf := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pets/accessible", r.URL.Path)
		w.Write([]byte(`{"status":1,"data":[{"id":"p1","name":"Rex"},{"id":"p2","name":"Mia"}]}`))
	}))

	err := runCommand(app, newAPIGetCmd(), "/pets/accessible", "--jq", ".[].name")
	require.NoError(t, err)

	var resp struct {
		OK   bool `json:"ok"`
		Data []string
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, []string{"Rex", "Mia"}, resp.Data)
}

func TestAPIGetInvalidJQ(t *testing.T) {
	app, _ := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"data":{}}`))
	}))

	err := runCommand(app, newAPIGetCmd(), "/x", "--jq", ".[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid jq expression")
}

func TestAPIPostInvalidData(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())

	err := runCommand(app, newAPIPostCmd(), "/x", "--data", "{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid JSON data")
}

func TestAPIPostSendsBody(t *testing.T) {
	var gotBody map[string]any
	app, buf := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":1,"data":{"ok":true}}`))
	}))

	err := runCommand(app, newAPIPostCmd(), "/groups/create", "--data", `{"name":"Family"}`)
	require.NoError(t, err)
	assert.Equal(t, "Family", gotBody["name"])
	assert.Contains(t, buf.String(), `"ok": true`)
}
