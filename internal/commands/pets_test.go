package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetsListCommand(t *testing.T) {
	app, buf := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pets/accessible", r.URL.Path)
		w.Write([]byte(`{"status":1,"data":[{"id":"p1","name":"Rex","pet_type":"dog","owner_id":"u1","created_at":1}]}`))
	}))

	err := runCommand(app, newPetsListCmd())
	require.NoError(t, err)

	var resp struct {
		OK      bool `json:"ok"`
		Data    []map[string]any
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Rex", resp.Data[0]["name"])
	assert.Equal(t, "1 pets", resp.Summary)
}

func TestPetsSelectPersistsSelection(t *testing.T) {
	app, _ := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pets/p1/details", r.URL.Path)
		w.Write([]byte(`{"status":1,"data":{"id":"p1","name":"Rex","pet_type":"dog","owner_id":"u1","created_at":1}}`))
	}))

	err := runCommand(app, newPetsSelectCmd(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", app.Store.SelectedPet())
}

func TestPetsSelectRejectsInaccessiblePet(t *testing.T) {
	app, _ := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Pet not found"}`))
	}))

	err := runCommand(app, newPetsSelectCmd(), "nope")
	require.Error(t, err)
	assert.Empty(t, app.Store.SelectedPet())
}

func TestPetsCreateValidation(t *testing.T) {
	app, _ := newCommandApp(t, http.NotFoundHandler())

	err := runCommand(app, newPetsCreateCmd(), "--name", "Rex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pet type is required")
}

func TestPetsWeightUsesSelectedPet(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	app, _ := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":1,"data":{"id":"p1","name":"Rex","pet_type":"dog","owner_id":"u1","created_at":1,"current_weight_kg":5.5}}`))
	}))
	app.Store.SetSelectedPet("p1")

	err := runCommand(app, newPetsWeightCmd(), "5.5")
	require.NoError(t, err)
	assert.Equal(t, "/pets/p1/update", gotPath)
	assert.Equal(t, 5.5, gotBody["current_weight_kg"])
}

func TestPetsDeleteClearsSelection(t *testing.T) {
	app, _ := newCommandApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"data":null}`))
	}))
	app.Store.SetSelectedPet("p1")

	err := runCommand(app, newPetsDeleteCmd(), "p1")
	require.NoError(t, err)
	assert.Empty(t, app.Store.SelectedPet())
}
