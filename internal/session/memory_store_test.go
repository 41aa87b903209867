package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	userID := int64(7)
	token := NewToken()
	require.NoError(t, store.Save(ctx, &Session{Token: token, UserID: &userID, Username: "alice"}))

	s, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.LoggedIn())
	assert.Equal(t, int64(7), *s.UserID)
	assert.Equal(t, "alice", s.Username)
}

func TestMemoryStore_GetUnknownToken(t *testing.T) {
	store := NewMemoryStore()

	s, err := store.Get(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestMemoryStore_Destroy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token := NewToken()
	require.NoError(t, store.Save(ctx, &Session{Token: token}))
	require.NoError(t, store.Destroy(ctx, token))

	s, err := store.Get(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, s)

	// Destroying again is a no-op, not an error.
	assert.NoError(t, store.Destroy(ctx, token))
}

func TestMemoryStore_PopErrorIsOneShot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token := NewToken()
	require.NoError(t, store.Save(ctx, &Session{Token: token}))
	require.NoError(t, store.SetError(ctx, token, "You must log in to access this page."))

	msg, err := store.PopError(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "You must log in to access this page.", msg)

	msg, err = store.PopError(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, msg, "second read must not see the cleared message")
}

func TestMemoryStore_SetErrorCreatesSession(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token := NewToken()
	require.NoError(t, store.SetError(ctx, token, "boom"))

	s, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.False(t, s.LoggedIn())
	assert.Equal(t, "boom", s.Error)
}

func TestNewToken_Opaque(t *testing.T) {
	assert.NotEqual(t, NewToken(), NewToken())
}
