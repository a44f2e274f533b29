package session_test

import (
	"testing"

	"dog-walk-service/models"
	"dog-walk-service/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := session.NewMemoryStore()

	token := store.Create(session.Session{UserID: 1, Username: "alice123", Role: models.RoleOwner})
	require.NotEmpty(t, token)

	got, ok := store.Get(token)
	require.True(t, ok)
	assert.Equal(t, uint(1), got.UserID)
	assert.Equal(t, models.RoleOwner, got.Role)

	other := store.Create(session.Session{UserID: 2, Username: "bobwalker", Role: models.RoleWalker})
	assert.NotEqual(t, token, other, "tokens must be unique")

	store.Destroy(token)
	_, ok = store.Get(token)
	assert.False(t, ok)

	_, ok = store.Get(other)
	assert.True(t, ok, "destroying one session must not touch others")
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := session.NewMemoryStore()
	_, ok := store.Get("not-a-token")
	assert.False(t, ok)
}
