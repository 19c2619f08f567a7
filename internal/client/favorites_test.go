package client

import (
	"context"
	"errors"
	"testing"

	"ctchen222/rehla/internal/client/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	petra = Favorite{ID: "s1", Title: "Petra", Location: "Jordan", Description: "Rose-red city", ImageURL: "/uploads/a.jpg"}
	fes   = Favorite{ID: "s2", Title: "Fes", Location: "Morocco", Description: "Old medina", ImageURL: "/uploads/b.jpg"}
)

func TestFavorites_AddRemoveClear(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	favs, err := LoadFavorites(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 0, favs.Count())

	require.NoError(t, favs.Add(ctx, petra))
	require.NoError(t, favs.Add(ctx, fes))
	require.NoError(t, favs.Add(ctx, Favorite{ID: "s1", Title: "duplicate"}))

	assert.Equal(t, []Favorite{petra, fes}, favs.Items())
	assert.True(t, favs.Contains("s2"))

	require.NoError(t, favs.Remove(ctx, "s1"))
	require.NoError(t, favs.Remove(ctx, "missing"))
	assert.Equal(t, []Favorite{fes}, favs.Items())

	require.NoError(t, favs.Clear(ctx))
	assert.Empty(t, favs.Items())

	raw, err := st.Get(ctx, store.KeyFavorites)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestFavorites_ToggleTwiceRestoresList(t *testing.T) {
	ctx := context.Background()
	favs, err := LoadFavorites(ctx, newStore(t))
	require.NoError(t, err)
	require.NoError(t, favs.Add(ctx, petra))
	before := favs.Items()

	saved, err := favs.Toggle(ctx, fes)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = favs.Toggle(ctx, fes)
	require.NoError(t, err)
	assert.False(t, saved)

	assert.Equal(t, before, favs.Items())
}

func TestFavorites_PersistAcrossLoads(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	favs, err := LoadFavorites(ctx, st)
	require.NoError(t, err)
	require.NoError(t, favs.Add(ctx, fes))
	require.NoError(t, favs.Add(ctx, petra))

	reloaded, err := LoadFavorites(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, []Favorite{fes, petra}, reloaded.Items())
}

func TestFavorites_CorruptEntryStartsEmpty(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	require.NoError(t, st.Set(ctx, store.KeyFavorites, []byte("{not json")))

	favs, err := LoadFavorites(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 0, favs.Count())
}

func TestFavorites_ItemsIsACopy(t *testing.T) {
	ctx := context.Background()
	favs, err := LoadFavorites(ctx, newStore(t))
	require.NoError(t, err)
	require.NoError(t, favs.Add(ctx, petra))

	items := favs.Items()
	items[0].Title = "changed"
	assert.Equal(t, "Petra", favs.Items()[0].Title)
}

var errWriteFailed = errors.New("disk full")

// flakyStore fails every write while failing is set.
type flakyStore struct {
	store.Store
	failing bool
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failing {
		return errWriteFailed
	}
	return s.Store.Set(ctx, key, value)
}

func TestFavorites_FailedWriteKeepsMemoryAndStorageInSync(t *testing.T) {
	ctx := context.Background()
	st := &flakyStore{Store: newStore(t)}

	favs, err := LoadFavorites(ctx, st)
	require.NoError(t, err)
	require.NoError(t, favs.Add(ctx, petra))
	require.NoError(t, favs.Add(ctx, fes))
	want := favs.Items()

	st.failing = true

	assert.ErrorIs(t, favs.Add(ctx, Favorite{ID: "s3", Title: "Wadi Rum"}), errWriteFailed)
	assert.ErrorIs(t, favs.Remove(ctx, petra.ID), errWriteFailed)
	assert.ErrorIs(t, favs.Clear(ctx), errWriteFailed)

	saved, err := favs.Toggle(ctx, fes)
	assert.ErrorIs(t, err, errWriteFailed)
	assert.True(t, saved)

	saved, err = favs.Toggle(ctx, Favorite{ID: "s4"})
	assert.ErrorIs(t, err, errWriteFailed)
	assert.False(t, saved)

	assert.Equal(t, want, favs.Items())

	st.failing = false
	reloaded, err := LoadFavorites(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, want, reloaded.Items())
}
