package tmdb

// Wire types for the TMDB v3 API. Nullable fields are pointers so a
// JSON null and an absent field decode the same way.

// MovieSummary is a search/trending result entry
type MovieSummary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
	Language     string  `json:"original_language"`
	MediaType    string  `json:"media_type,omitempty"` // trending only
}

// PagedMovies wraps list endpoints
type PagedMovies struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// MovieDetail is the response from GET /movie/{id}
type MovieDetail struct {
	MovieSummary
	Tagline             string              `json:"tagline"`
	Runtime             *int                `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Genres              []GenreDTO          `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	Status              string              `json:"status"`
	Homepage            *string             `json:"homepage"`
}

// GenreDTO is an id/name pair
type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a company entry on a movie detail
type ProductionCompany struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

// Credits is the response from GET /movie/{id}/credits
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
}

// CastMember is a single cast entry
type CastMember struct {
	ID          int64   `json:"id"`
	CastID      int64   `json:"cast_id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// Videos is the response from GET /movie/{id}/videos
type Videos struct {
	ID      int64      `json:"id"`
	Results []VideoDTO `json:"results"`
}

// VideoDTO is a single video entry
type VideoDTO struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// ErrorBody is the error envelope TMDB returns on failures
type ErrorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
