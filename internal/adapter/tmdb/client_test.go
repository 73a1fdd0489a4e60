package tmdb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", WithBaseURL(server.URL), WithLogger(testLogger()))
}

func TestClient_SearchMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "the matrix", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":603,"title":"The Matrix","poster_path":"/m.jpg","release_date":"1999-03-31","vote_average":8.2},
			{"id":604,"title":"The Matrix Reloaded","poster_path":null,"release_date":"2003-05-15","vote_average":7.0}
		],"total_pages":1,"total_results":2}`))
	})

	movies, err := client.SearchMovies(context.Background(), "the matrix")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(603), movies[0].ID)
	assert.Equal(t, "/m.jpg", movies[0].PosterPath)
	assert.Equal(t, int64(604), movies[1].ID)
	assert.Empty(t, movies[1].PosterPath)
	assert.Equal(t, 2003, movies[1].Year())
}

func TestClient_TrendingMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/trending/movie/day", r.URL.Path)
		_, _ = w.Write([]byte(`{"results":[
			{"id":1,"title":"A","media_type":"movie"},
			{"id":2,"title":"B","media_type":"tv"},
			{"id":3,"title":"C","media_type":"movie"}
		]}`))
	})

	movies, err := client.TrendingMovies(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(1), movies[0].ID)
	assert.Equal(t, int64(3), movies[1].ID)
}

func TestClient_TrendingMovies_InvalidWindow(t *testing.T) {
	client := NewClient("test-key")
	_, err := client.TrendingMovies(context.Background(), "month")
	assert.Error(t, err)
}

func TestClient_GetMovie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{
			"id":550,"title":"Fight Club","tagline":"Mischief. Mayhem. Soap.",
			"release_date":"1999-10-15","runtime":139,"budget":63000000,"revenue":100853753,
			"genres":[{"id":18,"name":"Drama"}],
			"production_companies":[{"id":508,"name":"Regency","logo_path":null,"origin_country":"US"}],
			"status":"Released","original_language":"en","popularity":61.4,"homepage":null
		}`))
	})

	movie, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, 139, movie.Runtime)
	assert.Equal(t, int64(63000000), movie.Budget)
	assert.Equal(t, []string{"Drama"}, movie.GenreNames())
	require.Len(t, movie.ProductionCompanies, 1)
	assert.Equal(t, "Regency", movie.ProductionCompanies[0].Name)
	assert.Empty(t, movie.Homepage)
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	})

	movie, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.SearchMovies(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, IsAuthError(err))
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.SearchMovies(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_MalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := client.SearchMovies(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrMalformed)
}

func TestClient_MissingResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1}`))
	})

	_, err := client.SearchMovies(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrMalformed)
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithLogger(testLogger()))
	_, err := client.TrendingMovies(context.Background(), "week")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestClient_NoAPIKey(t *testing.T) {
	client := NewClient("")
	_, err := client.SearchMovies(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)
}

func TestClient_CreditsAndVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/movie/550/credits":
			_, _ = w.Write([]byte(`{"id":550,"cast":[
				{"id":819,"cast_id":4,"name":"Edward Norton","character":"The Narrator","profile_path":"/e.jpg","order":0},
				{"id":287,"cast_id":5,"name":"Brad Pitt","character":"Tyler Durden","profile_path":null,"order":1}
			]}`))
		case "/3/movie/550/videos":
			_, _ = w.Write([]byte(`{"id":550,"results":[{"key":"abc","name":"Official Trailer","site":"YouTube","type":"Trailer"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	cast, err := client.GetCredits(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, cast, 2)
	assert.Equal(t, "Edward Norton", cast[0].Name)
	assert.Empty(t, cast[1].ProfilePath)

	videos, err := client.GetVideos(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "Trailer", videos[0].Type)
}
