package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/marquee/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/mmcdole/marquee/internal/domain Catalog

const (
	// MaxCast is how many cast members the details view shows
	MaxCast = 6

	trailerType = "Trailer"
	trailerSite = "YouTube"
)

// CatalogService fronts the remote catalog for the views. Failures are
// logged here and surface as empty or absent results, never as errors.
type CatalogService struct {
	catalog domain.Catalog
	window  string
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service. window is the trending
// window, "day" or "week".
func NewCatalogService(catalog domain.Catalog, window string, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if window == "" {
		window = "day"
	}
	return &CatalogService{
		catalog: catalog,
		window:  window,
		logger:  logger,
	}
}

// Search returns the movies matching query. ok is false when the query is
// blank or the request failed; the caller keeps its current list then.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Movie, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false
	}

	movies, err := s.catalog.SearchMovies(ctx, query)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		return nil, false
	}

	s.logger.Info("search complete", "query", query, "count", len(movies))
	return nonNil(movies), true
}

// Trending returns the trending movies for the configured window
func (s *CatalogService) Trending(ctx context.Context) ([]domain.Movie, bool) {
	movies, err := s.catalog.TrendingMovies(ctx, s.window)
	if err != nil {
		s.logger.Error("trending fetch failed", "window", s.window, "error", err)
		return nil, false
	}

	s.logger.Info("trending loaded", "window", s.window, "count", len(movies))
	return nonNil(movies), true
}

// Movie returns the full movie record, or nil on failure
func (s *CatalogService) Movie(ctx context.Context, id int64) *domain.Movie {
	movie, err := s.catalog.GetMovie(ctx, id)
	if err != nil {
		s.logger.Error("movie fetch failed", "id", id, "error", err)
		return nil
	}
	return movie
}

// Cast returns the first MaxCast cast members in upstream order
func (s *CatalogService) Cast(ctx context.Context, id int64) []domain.CastMember {
	cast, err := s.catalog.GetCredits(ctx, id)
	if err != nil {
		s.logger.Error("credits fetch failed", "id", id, "error", err)
		return nil
	}
	if len(cast) > MaxCast {
		cast = cast[:MaxCast]
	}
	return cast
}

// Trailer returns the first YouTube trailer, or nil when there is none
func (s *CatalogService) Trailer(ctx context.Context, id int64) *domain.Trailer {
	videos, err := s.catalog.GetVideos(ctx, id)
	if err != nil {
		s.logger.Error("videos fetch failed", "id", id, "error", err)
		return nil
	}
	return FindTrailer(videos)
}

// FindTrailer picks the first video of type Trailer hosted on YouTube
func FindTrailer(videos []domain.Video) *domain.Trailer {
	for _, v := range videos {
		if v.Type == trailerType && v.Site == trailerSite && v.Key != "" {
			return &domain.Trailer{Key: v.Key, Name: v.Name}
		}
	}
	return nil
}

// Details fetches movie, cast and trailer concurrently. Each part is
// filled independently; a failed part stays empty.
func (s *CatalogService) Details(ctx context.Context, id int64) domain.Details {
	var d domain.Details

	// Sub-fetches never return errors, so one failure cannot cancel the rest
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Movie = s.Movie(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.Cast = s.Cast(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.Trailer = s.Trailer(gctx, id)
		return nil
	})
	_ = g.Wait()

	return d
}

func nonNil(movies []domain.Movie) []domain.Movie {
	if movies == nil {
		return []domain.Movie{}
	}
	return movies
}
