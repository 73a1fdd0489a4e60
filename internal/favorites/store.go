// Package favorites holds the shared movie list, favorites set and last
// search term, persisting the latter two on every change.
package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Storage keys
const (
	KeyFavorites  = "favorites"
	KeyLastSearch = "lastSearch"
)

// Store is the single source of truth for the current movie list, the
// favorites set and the last search term. One instance is created by the
// composition root and shared by reference.
type Store struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	mu         sync.RWMutex
	movies     []domain.Movie
	favorites  []domain.Movie
	lastSearch string
}

// New creates a Store and loads prior state from kv. Missing or corrupt
// records fall back to empty values.
func New(kv domain.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		kv:        kv,
		logger:    logger,
		movies:    []domain.Movie{},
		favorites: []domain.Movie{},
	}
	s.load()
	return s
}

func (s *Store) load() {
	if s.kv == nil {
		return
	}

	if data, ok := s.kv.Get(KeyFavorites); ok {
		var favs []domain.Movie
		if err := json.Unmarshal(data, &favs); err != nil {
			s.logger.Warn("discarding corrupt favorites record", "error", err)
		} else {
			s.favorites = dedupe(favs)
		}
	}

	if data, ok := s.kv.Get(KeyLastSearch); ok {
		s.lastSearch = string(data)
	}

	s.logger.Info("favorites loaded", "count", len(s.favorites), "lastSearch", s.lastSearch)
}

// dedupe keeps the first occurrence of each id
func dedupe(movies []domain.Movie) []domain.Movie {
	seen := make(map[int64]bool, len(movies))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

// persist writes the favorites set and last search term. Callers hold mu.
func (s *Store) persist() error {
	if s.kv == nil {
		return nil
	}

	data, err := json.Marshal(s.favorites)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.kv.Set(KeyFavorites, data); err != nil {
		s.logger.Error("failed to persist favorites", "error", err)
		return fmt.Errorf("persist favorites: %w", err)
	}
	if err := s.kv.Set(KeyLastSearch, []byte(s.lastSearch)); err != nil {
		s.logger.Error("failed to persist last search", "error", err)
		return fmt.Errorf("persist last search: %w", err)
	}
	return nil
}

// SetMovies replaces the current movie list. It is not persisted.
func (s *Store) SetMovies(movies []domain.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = slices.Clone(movies)
	if s.movies == nil {
		s.movies = []domain.Movie{}
	}
}

// Movies returns a copy of the current movie list
func (s *Store) Movies() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.movies)
}

// SetLastSearch replaces the last search term and persists
func (s *Store) SetLastSearch(term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSearch = term
	return s.persist()
}

// LastSearch returns the last search term
func (s *Store) LastSearch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSearch
}

// ApplySearch replaces the movie list and last search term together,
// as a successful search does.
func (s *Store) ApplySearch(term string, movies []domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = slices.Clone(movies)
	if s.movies == nil {
		s.movies = []domain.Movie{}
	}
	s.lastSearch = term
	return s.persist()
}

// ToggleFavorite removes the movie from favorites when an entry with the
// same id exists, otherwise appends it. added reports which happened.
// The in-memory change stands even if persisting fails.
func (s *Store) ToggleFavorite(movie domain.Movie) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.favorites, func(m domain.Movie) bool { return m.ID == movie.ID })
	if idx >= 0 {
		s.favorites = slices.Delete(s.favorites, idx, idx+1)
	} else {
		s.favorites = append(s.favorites, movie)
		added = true
	}

	s.logger.Debug("favorite toggled", "id", movie.ID, "title", movie.Title, "added", added)
	return added, s.persist()
}

// Favorites returns a copy of the favorites set in insertion order
func (s *Store) Favorites() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favorites)
}

// IsFavorite reports whether a movie with id is in the favorites set
func (s *Store) IsFavorite(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.favorites, func(m domain.Movie) bool { return m.ID == id })
}

// Favorite returns the stored snapshot for id
func (s *Store) Favorite(id int64) (domain.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.favorites {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Movie{}, false
}
