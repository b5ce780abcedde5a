package watchlist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/popcorn/internal/movie"
)

var (
	inception = movie.Watched{
		ID:             "tt1375666",
		Title:          "Inception",
		Year:           "2010",
		PosterURL:      "https://img/inception.jpg",
		IMDbRating:     8.8,
		RuntimeMinutes: 148,
		UserRating:     10,
	}
	backToTheFuture = movie.Watched{
		ID:             "tt0088763",
		Title:          "Back to the Future",
		Year:           "1985",
		PosterURL:      "https://img/bttf.jpg",
		IMDbRating:     8.5,
		RuntimeMinutes: 116,
		UserRating:     9,
	}
)

func TestLoad_AbsentOrMalformedPayloadIsEmpty(t *testing.T) {
	payloads := map[string][]byte{
		"absent":      nil,
		"blank":       []byte("   "),
		"null":        []byte("null"),
		"garbage":     []byte("{not json"),
		"wrong shape": []byte(`{"imdbID":"tt1"}`),
		"wrong types": []byte(`[{"imdbID":1,"title":false}]`),
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			var m *Manager
			require.NotPanics(t, func() { m = Load(NewMemoryStore(payload)) })
			assert.Empty(t, m.List())
			assert.NotNil(t, m.List())
		})
	}
}

func TestLoad_StoreErrorIsEmpty(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be read as a file.
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	m := Load(store)
	assert.Zero(t, m.Len())
}

func TestLoad_DropsInvalidAndDuplicateRecords(t *testing.T) {
	payload := []byte(`[
		{"imdbID":"tt1375666","title":"Inception","imdbRating":8.8,"runtime":148,"userRating":10},
		{"imdbID":"","title":"No id"},
		{"imdbID":"tt1375666","title":"Inception again","userRating":3},
		{"imdbID":"tt0088763","title":"Back to the Future","runtime":-4,"userRating":9}
	]`)
	m := Load(NewMemoryStore(payload))

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Inception", list[0].Title)
	assert.Equal(t, "tt0088763", list[1].ID)
	assert.Zero(t, list[1].RuntimeMinutes)
}

func TestAdd_AppendsPreservesOrderAndPersists(t *testing.T) {
	store := NewMemoryStore(nil)
	m := Load(store)

	added, err := m.Add(inception)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = m.Add(backToTheFuture)
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, []movie.Watched{inception, backToTheFuture}, m.List())
	assert.Equal(t, 2, store.Saves())

	data, err := store.Load()
	require.NoError(t, err)
	var persisted []movie.Watched
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, m.List(), persisted)
}

func TestAdd_DuplicateIDIsRejected(t *testing.T) {
	store := NewMemoryStore(nil)
	m := Load(store)

	_, err := m.Add(inception)
	require.NoError(t, err)

	again := inception
	again.UserRating = 1
	added, err := m.Add(again)
	require.NoError(t, err)
	assert.False(t, added)

	got, ok := m.Get(inception.ID)
	require.True(t, ok)
	assert.Equal(t, 10, got.UserRating, "first rating wins")
	assert.Equal(t, 1, store.Saves(), "rejected add must not persist")
}

func TestAdd_ValidatesRecord(t *testing.T) {
	m := Load(NewMemoryStore(nil))

	_, err := m.Add(movie.Watched{Title: "no id", UserRating: 5})
	assert.Error(t, err)

	bad := inception
	bad.UserRating = 0
	_, err = m.Add(bad)
	assert.ErrorIs(t, err, movie.ErrInvalidRating)

	assert.Zero(t, m.Len())
}

func TestAddThenRemove_RoundTrips(t *testing.T) {
	store := NewMemoryStore(nil)
	m := Load(store)
	_, err := m.Add(backToTheFuture)
	require.NoError(t, err)

	beforeList := m.List()
	beforeData, err := store.Load()
	require.NoError(t, err)

	_, err = m.Add(inception)
	require.NoError(t, err)
	removed, err := m.Remove(inception.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	afterData, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, beforeList, m.List())
	assert.JSONEq(t, string(beforeData), string(afterData))
}

func TestRemove_MissingIDIsNoop(t *testing.T) {
	store := NewMemoryStore(nil)
	m := Load(store)
	_, err := m.Add(inception)
	require.NoError(t, err)

	removed, err := m.Remove("tt-missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, store.Saves())
}

func TestRemove_LastRecordPersistsEmptyList(t *testing.T) {
	store := NewMemoryStore(nil)
	m := Load(store)
	_, err := m.Add(inception)
	require.NoError(t, err)

	_, err = m.Remove(inception.ID)
	require.NoError(t, err)

	data, err := store.Load()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestAdd_PersistFailureKeepsMemoryState(t *testing.T) {
	store := NewMemoryStore(nil)
	store.SaveFn = func([]byte) error { return errors.New("disk full") }
	m := Load(store)

	added, err := m.Add(inception)
	assert.True(t, added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, m.Contains(inception.ID))
}

func TestListReturnsCopy(t *testing.T) {
	m := Load(NewMemoryStore(nil))
	_, err := m.Add(inception)
	require.NoError(t, err)

	list := m.List()
	list[0].Title = "mutated"

	got, _ := m.Get(inception.ID)
	assert.Equal(t, "Inception", got.Title)
}

func TestFileStore_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "watched.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	m := Load(store)
	_, err = m.Add(inception)
	require.NoError(t, err)
	_, err = m.Add(backToTheFuture)
	require.NoError(t, err)

	reopened := Load(store)
	assert.Equal(t, m.List(), reopened.List())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestFileStore_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/popcorn/watched.json"), store.Path())

	data, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}
