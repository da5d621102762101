package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewSessionStore(zerolog.Nop(), client, time.Hour)

	ctx := context.Background()

	session, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.CSRFToken)
	assert.False(t, session.Authenticated())

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.CSRFToken, got.CSRFToken)
}

func TestSessionStore_CSRFTokensDiffer(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewSessionStore(zerolog.Nop(), client, time.Hour)

	ctx := context.Background()

	first, err := store.Create(ctx)
	require.NoError(t, err)
	second, err := store.Create(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first.CSRFToken, second.CSRFToken)
}

func TestSessionStore_SetToken(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewSessionStore(zerolog.Nop(), client, time.Hour)

	ctx := context.Background()

	session, err := store.Create(ctx)
	require.NoError(t, err)

	err = store.SetToken(ctx, session.ID, "signed-assertion")
	require.NoError(t, err)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "signed-assertion", got.Token)
	assert.True(t, got.Authenticated())
}

func TestSessionStore_SetToken_UnknownSession(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewSessionStore(zerolog.Nop(), client, time.Hour)

	err := store.SetToken(context.Background(), "no-such-session", "token")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewSessionStore(zerolog.Nop(), client, time.Hour)

	ctx := context.Background()

	session, err := store.Create(ctx)
	require.NoError(t, err)

	err = store.Delete(ctx, session.ID)
	require.NoError(t, err)

	_, err = store.Get(ctx, session.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewSessionStore(zerolog.Nop(), client, time.Minute)

	ctx := context.Background()

	session, err := store.Create(ctx)
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)

	_, err = store.Get(ctx, session.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
