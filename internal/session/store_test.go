package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Word  string `json:"word"`
	Round int    `json:"round"`
	Names []string
}

func stores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{"file": fileStore, "sqlite": sqliteStore}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			key := Key{User: "u1", Game: "spy"}
			in := payload{Word: "lighthouse", Round: 3, Names: []string{"ana", "bo"}}
			require.NoError(t, store.Save(key, in))

			var out payload
			found, err := store.Load(key, &out)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, in, out)
		})
	}
}

func TestLoadMissingIsAbsent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var out payload
			found, err := store.Load(Key{User: "nobody", Game: "spy"}, &out)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestSaveIsLastWriterWins(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			key := Key{User: "u1", Game: "wheel"}
			require.NoError(t, store.Save(key, payload{Round: 1}))
			require.NoError(t, store.Save(key, payload{Round: 2}))

			var out payload
			found, err := store.Load(key, &out)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, 2, out.Round)
		})
	}
}

func TestDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			key := Key{User: "u1", Game: "deck"}
			require.NoError(t, store.Save(key, payload{Round: 1}))
			require.NoError(t, store.Delete(key))

			var out payload
			found, err := store.Load(key, &out)
			require.NoError(t, err)
			assert.False(t, found)

			// Deleting again is a no-op.
			assert.NoError(t, store.Delete(key))
		})
	}
}

func TestCorruptedSessionLoadsAsAbsent(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	key := Key{User: "u1", Game: "spy"}
	require.NoError(t, store.Save(key, payload{Round: 1}))

	// Smash the file.
	path := filepath.Join(root, "u1", "spy.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var out payload
	found, err := store.Load(key, &out)
	require.NoError(t, err, "corruption is never surfaced as an error")
	assert.False(t, found)
}

func TestSchemaMismatchLoadsAsAbsent(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	key := Key{User: "u1", Game: "spy"}
	require.NoError(t, store.Save(key, payload{Round: 1}))

	// A session written under a different schema version.
	path := filepath.Join(root, "u1", "spy.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"schema":99,"game":"spy","payload":{"round":1}}`), 0o644))

	var out payload
	found, err := store.Load(key, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGameTagMismatchLoadsAsAbsent(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	// Copy a wheel session over the spy slot; the envelope game tag guards
	// against decoding it as a spy session.
	require.NoError(t, store.Save(Key{User: "u1", Game: "wheel"}, payload{Round: 7}))
	data, err := os.ReadFile(filepath.Join(root, "u1", "wheel.json"))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "u1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "u1", "spy.json"), data, 0o644))

	var out payload
	found, err := store.Load(Key{User: "u1", Game: "spy"}, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeyValidation(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	bad := []Key{
		{User: "", Game: "spy"},
		{User: "u1", Game: ""},
		{User: "../escape", Game: "spy"},
		{User: "u1", Game: "a/b"},
	}
	for _, key := range bad {
		assert.Error(t, store.Save(key, payload{}), "%v", key)
		_, err := store.Load(key, &payload{})
		assert.Error(t, err, "%v", key)
	}
}
