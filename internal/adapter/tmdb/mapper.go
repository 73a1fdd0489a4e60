package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// MapSummaries converts list results to domain movies, preserving order
func MapSummaries(results []MovieSummary) []domain.Movie {
	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		// Trending can mix in other media types when the endpoint is widened
		if r.MediaType != "" && r.MediaType != "movie" {
			continue
		}
		movies = append(movies, mapSummary(r))
	}
	return movies
}

func mapSummary(r MovieSummary) domain.Movie {
	return domain.Movie{
		ID:               r.ID,
		Title:            r.Title,
		PosterPath:       deref(r.PosterPath),
		BackdropPath:     deref(r.BackdropPath),
		ReleaseDate:      r.ReleaseDate,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		Overview:         r.Overview,
		Popularity:       r.Popularity,
		OriginalLanguage: r.Language,
	}
}

// MapDetail converts a detail response to a domain movie
func MapDetail(d MovieDetail) *domain.Movie {
	m := mapSummary(d.MovieSummary)
	m.Tagline = d.Tagline
	if d.Runtime != nil {
		m.Runtime = *d.Runtime
	}
	m.Budget = d.Budget
	m.Revenue = d.Revenue
	m.Status = d.Status
	m.Homepage = deref(d.Homepage)

	for _, g := range d.Genres {
		m.Genres = append(m.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	for _, c := range d.ProductionCompanies {
		m.ProductionCompanies = append(m.ProductionCompanies, domain.Company{
			ID:            c.ID,
			Name:          c.Name,
			LogoPath:      deref(c.LogoPath),
			OriginCountry: c.OriginCountry,
		})
	}
	return &m
}

// MapCast converts credits to domain cast members in upstream order
func MapCast(cast []CastMember) []domain.CastMember {
	out := make([]domain.CastMember, 0, len(cast))
	for _, c := range cast {
		out = append(out, domain.CastMember{
			ID:          c.ID,
			CastID:      c.CastID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: deref(c.ProfilePath),
			Order:       c.Order,
		})
	}
	return out
}

// MapVideos converts video entries to domain videos
func MapVideos(videos []VideoDTO) []domain.Video {
	out := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, domain.Video{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
