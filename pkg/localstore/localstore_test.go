package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klontong/pkg/localstore"
)

func TestStore_SetGetRemove(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := store.GetItem("user")
	require.NoError(t, err)
	assert.False(t, ok, "missing keys report absence, not an error")

	require.NoError(t, store.SetItem("user", `{"email":"budi@x.com"}`))

	value, ok, err := store.GetItem("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"email":"budi@x.com"}`, value)

	// Overwrites replace the previous value.
	require.NoError(t, store.SetItem("user", `{"email":"sari@x.com"}`))
	value, _, err = store.GetItem("user")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"sari@x.com"}`, value)

	require.NoError(t, store.RemoveItem("user"))
	_, ok, err = store.GetItem("user")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing again is not an error.
	require.NoError(t, store.RemoveItem("user"))
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := localstore.New(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetItem("user", "persisted"))

	reopened, err := localstore.New(dir)
	require.NoError(t, err)
	value, ok, err := reopened.GetItem("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}
