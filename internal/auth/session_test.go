package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcarehq/petcare-cli/internal/models"
)

func TestSessionEstablishAndTeardown(t *testing.T) {
	store := newFileStore(t)
	sess := NewSession(store, nil)

	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User())

	sess.Establish(&models.LoginResult{
		AccessToken:  "tok",
		RefreshToken: "ref",
		ExpiresIn:    3600,
		User:         models.UserProfile{ID: "u1", Email: "a@b.c", Name: "A"},
	}, "email")

	assert.True(t, sess.IsAuthenticated())
	require.NotNil(t, sess.User())
	assert.Equal(t, "email", sess.User().Source)
	assert.Equal(t, "tok", store.GetAccessToken())
	assert.Equal(t, "ref", store.GetRefreshToken())

	sess.Teardown()

	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User())
	assert.Empty(t, store.GetAccessToken())
}

func TestSessionLoadsPersistedUser(t *testing.T) {
	store := newFileStore(t)
	store.SetSession("tok", "", 0, &models.UserProfile{ID: "u1", Email: "a@b.c"})

	sess := NewSession(store, nil)

	assert.True(t, sess.IsAuthenticated())
	require.NotNil(t, sess.User())
	assert.Equal(t, "u1", sess.User().ID)
}
