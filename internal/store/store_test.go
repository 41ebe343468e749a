// ABOUTME: Tests for the local key/value stores
// ABOUTME: Runs the same behavior checks against memory and SQLite backends

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]KV{
		"memory": NewMemory(),
		"sqlite": db,
	}
}

func TestKV_SetGetDelete(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(KeyAccessToken)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(KeyAccessToken, "abc"))
			require.NoError(t, kv.Set(KeyAccessToken, "def"))

			v, ok, err := kv.Get(KeyAccessToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "def", v)

			require.NoError(t, kv.Set(KeyBusinessName, "Ama Stores"))
			require.NoError(t, kv.Delete(KeyAccessToken, KeyBusinessName))

			_, ok, _ = kv.Get(KeyAccessToken)
			assert.False(t, ok)
			_, ok, _ = kv.Get(KeyBusinessName)
			assert.False(t, ok)
		})
	}
}

func TestKV_DismissedNotices(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.False(t, Dismissed(kv, "welcome"))

			require.NoError(t, Dismiss(kv, "welcome"))
			require.NoError(t, Dismiss(kv, "premium-alerts"))
			require.NoError(t, kv.Set(KeyActiveService, "sms"))

			assert.True(t, Dismissed(kv, "welcome"))

			ids, err := DismissedNotices(kv)
			require.NoError(t, err)
			assert.Equal(t, []string{"premium-alerts", "welcome"}, ids)
		})
	}
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(KeyActiveService, "inventory"))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := db.Get(KeyActiveService)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "inventory", v)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
