package domain

import "context"

// Catalog is the read-only remote movie metadata source.
type Catalog interface {
	// SearchMovies returns movies matching a title query, in upstream order
	SearchMovies(ctx context.Context, query string) ([]Movie, error)

	// TrendingMovies returns the trending list for a "day" or "week" window
	TrendingMovies(ctx context.Context, window string) ([]Movie, error)

	// GetMovie returns full details for one movie
	GetMovie(ctx context.Context, id int64) (*Movie, error)

	// GetCredits returns the full cast list in upstream order
	GetCredits(ctx context.Context, id int64) ([]CastMember, error)

	// GetVideos returns every video attached to a movie
	GetVideos(ctx context.Context, id int64) ([]Video, error)
}

// KeyValueStore is durable local storage addressed by string keys.
type KeyValueStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Close() error
}
