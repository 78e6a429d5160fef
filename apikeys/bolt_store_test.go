package apikeys_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robolearn/sso-gateway/apikeys"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *apikeys.BoltStore {
	t.Helper()
	store, err := apikeys.OpenBoltStore(filepath.Join(t.TempDir(), "apikeys.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStore_CreateAndVerify(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	plaintext, created, err := store.Create(ctx, "ingest-service", "user-1", nil, map[string]any{"env": "prod"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(plaintext, "rl_"))
	require.True(t, created.Enabled)

	key, err := store.Verify(ctx, plaintext)
	require.NoError(t, err)
	require.Equal(t, created.ID, key.ID)
	require.Equal(t, "ingest-service", key.Name)
	require.Equal(t, "user-1", key.UserID)
	require.Equal(t, "prod", key.Metadata["env"])
}

func TestBoltStore_VerifyRejectsBadKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	plaintext, created, err := store.Create(ctx, "svc", "user-1", nil, nil)
	require.NoError(t, err)

	t.Run("malformed keys", func(t *testing.T) {
		for _, raw := range []string{"", "nope", "rl_", "rl_onlyid", "rl_.onlysecret", "pk_other.format"} {
			_, err := store.Verify(ctx, raw)
			require.ErrorIs(t, err, apikeys.ErrKeyInvalid, "key %q", raw)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := store.Verify(ctx, "rl_"+created.ID+".wrong-secret")
		require.ErrorIs(t, err, apikeys.ErrKeyInvalid)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Verify(ctx, "rl_unknown-id.whatever")
		require.ErrorIs(t, err, apikeys.ErrKeyInvalid)
	})

	t.Run("disabled key", func(t *testing.T) {
		require.NoError(t, store.SetEnabled(ctx, created.ID, false))
		_, err := store.Verify(ctx, plaintext)
		require.ErrorIs(t, err, apikeys.ErrKeyDisabled)

		require.NoError(t, store.SetEnabled(ctx, created.ID, true))
		_, err = store.Verify(ctx, plaintext)
		require.NoError(t, err)
	})
}

func TestBoltStore_ExpiredKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	plaintext, _, err := store.Create(ctx, "old-svc", "user-1", &past, nil)
	require.NoError(t, err)

	_, err = store.Verify(ctx, plaintext)
	require.ErrorIs(t, err, apikeys.ErrKeyExpired)
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apikeys.db")
	ctx := context.Background()

	store, err := apikeys.OpenBoltStore(path)
	require.NoError(t, err)
	plaintext, _, err := store.Create(ctx, "svc", "user-1", nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := apikeys.OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	key, err := reopened.Verify(ctx, plaintext)
	require.NoError(t, err)
	require.Equal(t, "svc", key.Name)
}
