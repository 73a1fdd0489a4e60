package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Movie is a catalog record. Field names follow the upstream JSON so a
// stored favorite round-trips unchanged.
type Movie struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	PosterPath          string    `json:"poster_path,omitempty"`
	BackdropPath        string    `json:"backdrop_path,omitempty"`
	ReleaseDate         string    `json:"release_date,omitempty"` // "2024-03-01"
	VoteAverage         float64   `json:"vote_average"`           // 0-10
	VoteCount           int       `json:"vote_count"`
	Overview            string    `json:"overview"`
	Tagline             string    `json:"tagline,omitempty"`
	Runtime             int       `json:"runtime,omitempty"` // minutes
	Budget              int64     `json:"budget,omitempty"`
	Revenue             int64     `json:"revenue,omitempty"`
	Genres              []Genre   `json:"genres,omitempty"`
	ProductionCompanies []Company `json:"production_companies,omitempty"`
	Status              string    `json:"status,omitempty"`
	OriginalLanguage    string    `json:"original_language,omitempty"`
	Popularity          float64   `json:"popularity,omitempty"`
	Homepage            string    `json:"homepage,omitempty"`
}

// Genre is an id/name pair
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company
type Company struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
}

// Year returns the leading year component of the release date, 0 if absent
func (m Movie) Year() int {
	date := strings.TrimSpace(m.ReleaseDate)
	if date == "" {
		return 0
	}
	part, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(part)
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

// YearString returns the release year as text, empty when unknown
func (m Movie) YearString() string {
	if y := m.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	return ""
}

// DisplayTitle returns "Title (Year)" or just the title
func (m Movie) DisplayTitle() string {
	if y := m.Year(); y > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, y)
	}
	return m.Title
}

// StarRating converts the 0-10 vote average to a 0-5 scale
func (m Movie) StarRating() float64 {
	return m.VoteAverage / 2
}

// FormattedRuntime returns "N mins" or "Unknown"
func (m Movie) FormattedRuntime() string {
	if m.Runtime <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d mins", m.Runtime)
}

// GenreNames returns the genre names in order
func (m Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// CastMember is a credited actor
type CastMember struct {
	ID          int64  `json:"id"`
	CastID      int64  `json:"cast_id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// Video is an entry from a movie's video list
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Trailer is the selected trailer video for a movie
type Trailer struct {
	Key  string
	Name string
}

// URL returns the watch page for the trailer
func (t Trailer) URL() string {
	return "https://www.youtube.com/watch?v=" + t.Key
}

// EmbedURL returns the embeddable player URL for the trailer
func (t Trailer) EmbedURL() string {
	return "https://www.youtube.com/embed/" + t.Key
}

// Details aggregates the three independent detail lookups for a movie.
// Any part may be absent.
type Details struct {
	Movie   *Movie
	Cast    []CastMember
	Trailer *Trailer
}
