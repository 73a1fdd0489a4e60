package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/service/mocks"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/components"
)

var trending = []domain.Movie{
	{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25", VoteAverage: 8.1},
	{ID: 2, Title: "Aliens", ReleaseDate: "1986-07-18", VoteAverage: 7.9},
	{ID: 3, Title: "Blade Runner", ReleaseDate: "1982-06-25", VoteAverage: 7.9},
}

type testApp struct {
	model   Model
	catalog *mocks.MockCatalog
	store   *favorites.Store
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestApp builds a sized model on a memory-only store
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	kv, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	logger := discardLogger()

	favs := favorites.New(kv, logger)
	m := NewModel(
		favs,
		service.NewCatalogService(catalog, "day", logger),
		service.NewPlaybackService(nil, logger),
		Options{GridColumns: 2, Logger: logger},
	)

	app := &testApp{model: m, catalog: catalog, store: favs}
	app.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func (a *testApp) send(msg tea.Msg) tea.Cmd {
	next, cmd := a.model.Update(msg)
	a.model = next.(Model)
	return cmd
}

func (a *testApp) key(s string) tea.Cmd {
	switch s {
	case "enter":
		return a.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return a.send(tea.KeyMsg{Type: tea.KeyEsc})
	}
	return a.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// mountHomeWithTrending mounts the home view and delivers the trending list
func (a *testApp) mountHomeWithTrending(t *testing.T) {
	t.Helper()
	a.send(NavigateMsg{Route: HomeRoute()})
	a.send(TrendingLoadedMsg{ViewID: a.model.ViewID(), Movies: trending, OK: true})
	require.Len(t, a.model.HomeGrid.Movies(), 3)
}

func TestModel_HomeMountFetchesTrending(t *testing.T) {
	app := newTestApp(t)
	app.catalog.EXPECT().TrendingMovies(gomock.Any(), "day").Return(trending, nil)

	cmd := app.send(NavigateMsg{Route: HomeRoute()})
	require.NotNil(t, cmd)
	msg, ok := cmd().(TrendingLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, app.model.ViewID(), msg.ViewID)

	app.send(msg)
	assert.Len(t, app.store.Movies(), 3)
	assert.Equal(t, HeaderTrending, app.model.HomeHeader())
	assert.Contains(t, app.model.View(), "Trending Movies")
}

func TestModel_TrendingFailureKeepsList(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)

	app.send(NavigateMsg{Route: HomeRoute()})
	app.send(TrendingLoadedMsg{ViewID: app.model.ViewID(), OK: false})

	assert.Len(t, app.store.Movies(), 3)
	assert.True(t, app.model.StatusIsErr)
}

func TestModel_StaleTrendingDropped(t *testing.T) {
	app := newTestApp(t)
	app.send(NavigateMsg{Route: HomeRoute()})
	homeID := app.model.ViewID()

	app.key("F")
	require.Equal(t, RouteFavorites, app.model.Route().Kind)

	app.send(TrendingLoadedMsg{ViewID: homeID, Movies: trending, OK: true})
	assert.Empty(t, app.store.Movies(), "result for an unmounted view must not reach the store")
}

func TestModel_TrendingAfterSearchDropped(t *testing.T) {
	app := newTestApp(t)
	app.send(NavigateMsg{Route: HomeRoute()})
	id := app.model.ViewID()

	dune := []domain.Movie{{ID: 438631, Title: "Dune"}}
	app.send(SearchResultsMsg{ViewID: id, Query: "dune", Movies: dune, OK: true})
	app.send(TrendingLoadedMsg{ViewID: id, Movies: trending, OK: true})

	assert.Equal(t, dune, app.store.Movies())
	assert.Equal(t, HeaderSearchResults, app.model.HomeHeader())
}

func TestModel_SearchReplacesListAndTerm(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)

	dune := []domain.Movie{{ID: 438631, Title: "Dune"}, {ID: 693134, Title: "Dune: Part Two"}}
	app.catalog.EXPECT().SearchMovies(gomock.Any(), "dune").Return(dune, nil)

	cmd := app.send(components.SubmitSearchMsg{Query: "dune"})
	require.NotNil(t, cmd)
	app.send(cmd())

	assert.Equal(t, dune, app.store.Movies())
	assert.Equal(t, "dune", app.store.LastSearch())
	assert.Equal(t, HeaderSearchResults, app.model.HomeHeader())
	assert.Len(t, app.model.HomeGrid.Movies(), 2)
	assert.Contains(t, app.model.View(), "Search Results")
}

func TestModel_FailedSearchLeavesListUnchanged(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)
	require.NoError(t, app.store.SetLastSearch("alien"))

	app.catalog.EXPECT().SearchMovies(gomock.Any(), "dune").Return(nil, errors.New("connection reset"))

	cmd := app.send(components.SubmitSearchMsg{Query: "dune"})
	app.send(cmd())

	assert.Len(t, app.store.Movies(), 3)
	assert.Equal(t, "alien", app.store.LastSearch())
	assert.Equal(t, HeaderTrending, app.model.HomeHeader())
	assert.True(t, app.model.StatusIsErr)
}

func TestModel_SearchFromKeyboard(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)

	app.key("s")
	require.True(t, app.model.SearchBar.Focused())

	// Typed keys go to the input, not the global bindings
	app.key("F")
	assert.Equal(t, RouteHome, app.model.Route().Kind)
	assert.Equal(t, "F", app.model.SearchBar.Value())

	app.model.SearchBar.SetValue("heat")
	cmd := app.key("enter")
	require.NotNil(t, cmd)
	msg, ok := cmd().(components.SubmitSearchMsg)
	require.True(t, ok)
	assert.Equal(t, "heat", msg.Query)
}

func TestModel_FavoriteKeyDoesNotNavigate(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)

	cmd := app.key("f")
	require.NotNil(t, cmd)
	msg := cmd()
	_, isOpen := msg.(components.OpenMovieMsg)
	require.False(t, isOpen)

	app.send(msg)
	assert.Equal(t, RouteHome, app.model.Route().Kind)
	assert.True(t, app.store.IsFavorite(1))
}

func TestModel_HeartClickDoesNotNavigate(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)

	top := components.NavbarHeight + components.SearchBarHeight + HeaderHeight
	heartX := components.CardWidth - 3
	cmd := app.send(tea.MouseMsg{X: heartX, Y: top + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NotNil(t, cmd)

	msg := cmd()
	toggle, ok := msg.(components.ToggleFavoriteMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, int64(1), toggle.Movie.ID)

	app.send(msg)
	assert.Equal(t, RouteHome, app.model.Route().Kind)
	assert.True(t, app.store.IsFavorite(1))

	// Clicking the heart again removes it
	app.send(app.send(tea.MouseMsg{X: heartX, Y: top + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})())
	assert.False(t, app.store.IsFavorite(1))
}

func TestModel_CardClickOpensDetails(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)

	top := components.NavbarHeight + components.SearchBarHeight + HeaderHeight
	cmd := app.send(tea.MouseMsg{X: 4, Y: top + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NotNil(t, cmd)
	open, ok := cmd().(components.OpenMovieMsg)
	require.True(t, ok)

	app.send(open)
	assert.Equal(t, MovieRoute(1), app.model.Route())
	assert.True(t, app.model.Details.Loading())
}

func TestModel_DetailsLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.mountHomeWithTrending(t)

	app.send(components.OpenMovieMsg{Movie: trending[0]})
	id := app.model.ViewID()

	movie := trending[0]
	movie.Overview = "In space no one can hear you scream."
	app.send(MovieLoadedMsg{ViewID: id, Movie: &movie})
	app.send(CastLoadedMsg{ViewID: id, Cast: []domain.CastMember{{Name: "Sigourney Weaver", Character: "Ripley"}}})
	app.send(TrailerLoadedMsg{ViewID: id})

	view := app.model.View()
	assert.Contains(t, view, "no one can hear you scream")
	assert.Contains(t, view, "Sigourney Weaver")
	assert.NotContains(t, app.model.Details.View(), "Trailer")

	// f toggles the shown movie without leaving the page
	app.key("f")
	assert.True(t, app.store.IsFavorite(1))
	assert.Equal(t, MovieRoute(1), app.model.Route())

	app.key("esc")
	assert.Equal(t, RouteHome, app.model.Route().Kind)
}

func TestModel_FailedDetailsRendersNothing(t *testing.T) {
	app := newTestApp(t)
	app.send(NavigateMsg{Route: MovieRoute(99)})

	app.send(MovieLoadedMsg{ViewID: app.model.ViewID(), Movie: nil})
	assert.True(t, app.model.Details.Failed())
	assert.Empty(t, app.model.Details.View())
}

func TestModel_StaleDetailsDropped(t *testing.T) {
	app := newTestApp(t)
	app.send(NavigateMsg{Route: MovieRoute(1)})
	first := app.model.ViewID()

	app.send(NavigateMsg{Route: MovieRoute(2)})
	app.send(MovieLoadedMsg{ViewID: first, Movie: &trending[0]})

	assert.True(t, app.model.Details.Loading())
	assert.Nil(t, app.model.Details.Movie())
}

func TestModel_FavoritesView(t *testing.T) {
	app := newTestApp(t)
	app.send(NavigateMsg{Route: FavoritesRoute()})
	assert.Contains(t, app.model.View(), "You have no favorite movies yet.")
	assert.Contains(t, app.model.View(), HeaderFavorites)

	_, err := app.store.ToggleFavorite(trending[2])
	require.NoError(t, err)
	app.send(NavigateMsg{Route: FavoritesRoute()})
	assert.Contains(t, app.model.View(), "Blade Runner")

	// Removing the last favorite empties the grid in place
	app.send(app.key("f")())
	assert.False(t, app.store.IsFavorite(3))
	assert.True(t, app.model.FavGrid.IsEmpty())
	assert.Equal(t, RouteFavorites, app.model.Route().Kind)
}

func TestModel_ThemeToggle(t *testing.T) {
	app := newTestApp(t)
	app.send(NavigateMsg{Route: FavoritesRoute()})
	before := app.model.Theme

	app.key("t")
	assert.NotEqual(t, before, app.model.Theme)
	app.key("t")
	assert.Equal(t, before.Toggle().Toggle(), app.model.Theme)
}

func TestModel_HelpOverlay(t *testing.T) {
	app := newTestApp(t)
	app.send(NavigateMsg{Route: FavoritesRoute()})

	app.key("?")
	require.True(t, app.model.ShowHelp)
	assert.Contains(t, app.model.View(), "Toggle favorite")

	app.key("x")
	assert.False(t, app.model.ShowHelp)
}

func TestModel_StatusClearsBySequence(t *testing.T) {
	app := newTestApp(t)

	app.send(StatusMsg{Message: "first"})
	app.send(StatusMsg{Message: "second"})
	app.send(ClearStatusMsg{Seq: 1})
	assert.Equal(t, "second", app.model.StatusMsg)

	app.send(ClearStatusMsg{Seq: 2})
	assert.Empty(t, app.model.StatusMsg)
}
