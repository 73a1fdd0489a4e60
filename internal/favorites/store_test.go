package favorites

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingKV records writes and can be told to fail
type countingKV struct {
	data   map[string][]byte
	writes map[string]int
	fail   bool
}

func newCountingKV() *countingKV {
	return &countingKV{data: map[string][]byte{}, writes: map[string]int{}}
}

func (c *countingKV) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *countingKV) Set(key string, value []byte) error {
	if c.fail {
		return errors.New("disk full")
	}
	c.writes[key]++
	c.data[key] = value
	return nil
}

func (c *countingKV) Close() error { return nil }

func ids(movies []domain.Movie) []int64 {
	out := make([]int64, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestNew_Empty(t *testing.T) {
	s := New(newCountingKV(), testLogger())
	assert.Empty(t, s.Favorites())
	assert.Empty(t, s.Movies())
	assert.Equal(t, "", s.LastSearch())
}

func TestToggleFavorite_DoubleToggleIsIdentity(t *testing.T) {
	s := New(newCountingKV(), testLogger())
	_, err := s.ToggleFavorite(domain.Movie{ID: 1, Title: "One"})
	require.NoError(t, err)
	before := ids(s.Favorites())

	added, err := s.ToggleFavorite(domain.Movie{ID: 2, Title: "Two"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.ToggleFavorite(domain.Movie{ID: 2, Title: "Two"})
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, before, ids(s.Favorites()))
}

func TestToggleFavorite_RemovesByIDOnly(t *testing.T) {
	s := New(newCountingKV(), testLogger())
	_, _ = s.ToggleFavorite(domain.Movie{ID: 7, Title: "Original"})

	// A different snapshot with the same id still removes the entry
	added, err := s.ToggleFavorite(domain.Movie{ID: 7, Title: "Refreshed"})
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, s.IsFavorite(7))
}

func TestToggleFavorite_AppendsInOrderAndStaysUnique(t *testing.T) {
	s := New(newCountingKV(), testLogger())
	for _, id := range []int64{3, 1, 2, 1, 1} {
		_, _ = s.ToggleFavorite(domain.Movie{ID: id})
	}
	got := ids(s.Favorites())
	assert.Equal(t, []int64{3, 2, 1}, got)

	seen := map[int64]bool{}
	for _, id := range got {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestToggleFavorite_OneWritePerKeyPerMutation(t *testing.T) {
	kv := newCountingKV()
	s := New(kv, testLogger())

	_, _ = s.ToggleFavorite(domain.Movie{ID: 1})
	assert.Equal(t, 1, kv.writes[KeyFavorites])
	assert.Equal(t, 1, kv.writes[KeyLastSearch])

	require.NoError(t, s.SetLastSearch("alien"))
	assert.Equal(t, 2, kv.writes[KeyFavorites])
	assert.Equal(t, "alien", string(kv.data[KeyLastSearch]))
}

func TestSetMovies_NotPersisted(t *testing.T) {
	kv := newCountingKV()
	s := New(kv, testLogger())
	s.SetMovies([]domain.Movie{{ID: 1}, {ID: 2}})

	assert.Equal(t, []int64{1, 2}, ids(s.Movies()))
	assert.Empty(t, kv.writes)
}

func TestApplySearch_ReplacesListAndTerm(t *testing.T) {
	s := New(newCountingKV(), testLogger())
	s.SetMovies([]domain.Movie{{ID: 99}})

	results := []domain.Movie{{ID: 5}, {ID: 4}, {ID: 6}}
	require.NoError(t, s.ApplySearch("heat", results))

	assert.Equal(t, []int64{5, 4, 6}, ids(s.Movies()))
	assert.Equal(t, "heat", s.LastSearch())
}

func TestAccessors_ReturnCopies(t *testing.T) {
	s := New(newCountingKV(), testLogger())
	_, _ = s.ToggleFavorite(domain.Movie{ID: 1, Title: "A"})

	favs := s.Favorites()
	favs[0].Title = "mutated"
	got, ok := s.Favorite(1)
	require.True(t, ok)
	assert.Equal(t, "A", got.Title)
}

func TestRestart_ReconstructsFavorites(t *testing.T) {
	dir := t.TempDir()

	kv, err := store.Open(dir)
	require.NoError(t, err)
	s := New(kv, testLogger())
	_, _ = s.ToggleFavorite(domain.Movie{ID: 1, Title: "First"})
	_, _ = s.ToggleFavorite(domain.Movie{ID: 2, Title: "Second"})
	require.NoError(t, s.SetLastSearch("dune"))
	require.NoError(t, kv.Close())

	kv, err = store.Open(dir)
	require.NoError(t, err)
	defer kv.Close()

	restarted := New(kv, testLogger())
	assert.Equal(t, []int64{1, 2}, ids(restarted.Favorites()))
	assert.Equal(t, "dune", restarted.LastSearch())
	assert.Empty(t, restarted.Movies())
}

func TestNew_CorruptRecordFallsBackToEmpty(t *testing.T) {
	kv := newCountingKV()
	kv.data[KeyFavorites] = []byte("{not json")
	kv.data[KeyLastSearch] = []byte("matrix")

	s := New(kv, testLogger())
	assert.Empty(t, s.Favorites())
	assert.Equal(t, "matrix", s.LastSearch())
}

func TestNew_DuplicateIDsOnDiskAreCollapsed(t *testing.T) {
	kv := newCountingKV()
	kv.data[KeyFavorites] = []byte(`[{"id":1,"title":"A"},{"id":1,"title":"B"},{"id":2}]`)

	s := New(kv, testLogger())
	assert.Equal(t, []int64{1, 2}, ids(s.Favorites()))
}

func TestToggleFavorite_WriteFailureKeepsMemoryState(t *testing.T) {
	kv := newCountingKV()
	kv.fail = true
	s := New(kv, testLogger())

	added, err := s.ToggleFavorite(domain.Movie{ID: 8})
	assert.True(t, added)
	assert.Error(t, err)
	assert.True(t, s.IsFavorite(8))
}
