// Package tmdb provides a client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org"
	defaultTimeout  = 30 * time.Second
	defaultLanguage = "en-US"
	userAgent       = "Marquee/1.0"
)

// Client implements domain.Catalog for TMDB
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLanguage sets the language requested for detail lookups.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new TMDB client. The API key always comes from
// configuration.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET and decodes the JSON body into dest
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	if c.apiKey == "" {
		return domain.ErrNoAPIKey
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// Never log the key
	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", domain.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var apiErr ErrorBody
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", apiErr.StatusMessage)
		return fmt.Errorf("tmdb api error: %s", resp.Status)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("tmdb decode error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	return nil
}

// SearchMovies searches movies by title
func (c *Client) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	q := url.Values{}
	q.Set("query", query)

	var page PagedMovies
	if err := c.get(ctx, "/3/search/movie", q, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return nil, fmt.Errorf("%w: missing results", domain.ErrMalformed)
	}
	return MapSummaries(page.Results), nil
}

// TrendingMovies returns trending movies for "day" or "week"
func (c *Client) TrendingMovies(ctx context.Context, window string) ([]domain.Movie, error) {
	switch window {
	case "day", "week":
	case "":
		window = "day"
	default:
		return nil, fmt.Errorf("invalid trending window %q", window)
	}

	var page PagedMovies
	if err := c.get(ctx, "/3/trending/movie/"+window, nil, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return nil, fmt.Errorf("%w: missing results", domain.ErrMalformed)
	}
	return MapSummaries(page.Results), nil
}

// GetMovie fetches full details by id
func (c *Client) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	q := url.Values{}
	q.Set("language", c.language)

	var detail MovieDetail
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", id), q, &detail); err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, fmt.Errorf("%w: missing id", domain.ErrMalformed)
	}
	return MapDetail(detail), nil
}

// GetCredits fetches the cast of a movie
func (c *Client) GetCredits(ctx context.Context, id int64) ([]domain.CastMember, error) {
	var credits Credits
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d/credits", id), nil, &credits); err != nil {
		return nil, err
	}
	return MapCast(credits.Cast), nil
}

// GetVideos fetches the videos attached to a movie
func (c *Client) GetVideos(ctx context.Context, id int64) ([]domain.Video, error) {
	var videos Videos
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d/videos", id), nil, &videos); err != nil {
		return nil, err
	}
	return MapVideos(videos.Results), nil
}

// IsAuthError reports whether err means the API key was rejected or missing
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNoAPIKey)
}
