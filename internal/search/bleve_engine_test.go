package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/reel/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	for _, tr := range []struct {
		term  string
		count int
	}{
		{"the matrix", 7},
		{"the thing", 3},
		{"matrix reloaded", 2},
		{"alien", 5},
	} {
		_, err := store.CreateTrend(&storage.SearchTrend{SearchTerm: tr.term, Count: tr.count, PosterURL: tr.term + ".jpg"})
		require.NoError(t, err)
	}
	return store
}

func openBleve(t *testing.T, store *storage.Store) (Suggester, string) {
	t.Helper()
	idxPath := filepath.Join(t.TempDir(), "idx", "suggest.bleve")
	eng, err := NewBleveEngine(store, idxPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		if c, ok := eng.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	})
	return eng, idxPath
}

func TestBleveEngine_IndexesAndSuggests(t *testing.T) {
	eng, idxPath := openBleve(t, seededStore(t))

	got, err := eng.Suggest("the", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"the matrix", "the thing"}, terms(got))
	assert.Equal(t, 7, got[0].Count)
	assert.Equal(t, "the matrix.jpg", got[0].PosterURL)

	got, err = eng.Suggest("matr", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"matrix reloaded", "the matrix"}, terms(got))

	fi, err := os.Stat(idxPath)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestBleveEngine_SkipsExactTerm(t *testing.T) {
	eng, _ := openBleve(t, seededStore(t))

	got, err := eng.Suggest("alien", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBleveEngine_OnTrendRecorded(t *testing.T) {
	store := seededStore(t)
	eng, _ := openBleve(t, store)

	listener, ok := eng.(UpdateListener)
	require.True(t, ok, "bleve engine should listen for trend updates")

	created, err := store.CreateTrend(&storage.SearchTrend{SearchTerm: "aliens", Count: 1})
	require.NoError(t, err)
	listener.OnTrendRecorded(created)

	got, err := eng.Suggest("ali", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"alien", "aliens"}, terms(got))

	created.Count = 50
	listener.OnTrendRecorded(created)

	got, err = eng.Suggest("ali", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"aliens", "alien"}, terms(got))

	stats, ok := eng.(DebugStatser)
	require.True(t, ok)
	n, err := stats.DocCount()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestOpen_FallsBackWhenIndexUnusable(t *testing.T) {
	dir := t.TempDir()
	// a regular file where the index directory should be
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := Open(&staticSource{}, filepath.Join(blocker, "suggest.bleve"))
	_, ok := s.(*Engine)
	assert.True(t, ok)
}
