package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants
const (
	// Section header plus a blank line above the grid
	HeaderHeight = 2
	FooterHeight = 1
)

// Options configures a Model
type Options struct {
	ImageBaseURL string
	GridColumns  int
	Theme        styles.Mode
	StartRoute   Route
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Store       *favorites.Store
	CatalogSvc  *service.CatalogService
	PlaybackSvc *service.PlaybackService
	logger      *slog.Logger

	// Navigation. viewID identifies the mounted view instance; async
	// results tagged with an older id are dropped.
	route   Route
	history []Route
	viewID  int

	// Home view state for the current mount
	searched      bool
	homeLoading   bool
	searchPending bool

	// UI Components
	SearchBar components.SearchBar
	HomeGrid  components.Grid
	FavGrid   components.Grid
	Details   components.Details

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	Theme       styles.Mode
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
	ShowHelp    bool
}

// NewModel creates a new application model
func NewModel(
	store *favorites.Store,
	catalogSvc *service.CatalogService,
	playbackSvc *service.PlaybackService,
	opts Options,
) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	styles.Apply(opts.Theme)

	home := components.NewGrid(store.IsFavorite)
	home.SetEmptyText("No movies available")
	home.SetColumns(opts.GridColumns)

	favs := components.NewGrid(store.IsFavorite)
	favs.SetEmptyText("You have no favorite movies yet.")
	favs.SetColumns(opts.GridColumns)

	return Model{
		Store:       store,
		CatalogSvc:  catalogSvc,
		PlaybackSvc: playbackSvc,
		logger:      logger,
		route:       opts.StartRoute,
		SearchBar:   components.NewSearchBar(store.LastSearch()),
		HomeGrid:    home,
		FavGrid:     favs,
		Details:     components.NewDetails(opts.ImageBaseURL),
		Theme:       opts.Theme,
	}
}

// Route returns the current route
func (m Model) Route() Route {
	return m.route
}

// ViewID returns the id of the mounted view instance
func (m Model) ViewID() int {
	return m.viewID
}

// Init mounts the starting route
func (m Model) Init() tea.Cmd {
	route := m.route
	return func() tea.Msg {
		return NavigateMsg{Route: route}
	}
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case NavigateMsg:
		cmd := m.mount(msg.Route)
		return m, cmd

	case TrendingLoadedMsg:
		// Only the home mount that asked applies the result, and never
		// over a search the user made meanwhile
		if msg.ViewID != m.viewID || m.route.Kind != RouteHome || m.searched {
			m.logger.Debug("dropping stale trending result", "viewID", msg.ViewID, "current", m.viewID)
			return m, nil
		}
		m.homeLoading = false
		if !msg.OK {
			return m, m.setStatus("Could not load trending movies", true)
		}
		m.Store.SetMovies(msg.Movies)
		m.HomeGrid.SetMovies(m.Store.Movies())
		return m, nil

	case components.SubmitSearchMsg:
		m.searchPending = true
		return m, SearchCmd(m.CatalogSvc, m.viewID, msg.Query)

	case SearchResultsMsg:
		return m.handleSearchResults(msg)

	case MovieLoadedMsg:
		if !m.isLiveDetails(msg.ViewID) {
			return m, nil
		}
		m.Details.SetMovie(msg.Movie)
		return m, nil

	case CastLoadedMsg:
		if !m.isLiveDetails(msg.ViewID) {
			return m, nil
		}
		m.Details.SetCast(msg.Cast)
		return m, nil

	case TrailerLoadedMsg:
		if !m.isLiveDetails(msg.ViewID) {
			return m, nil
		}
		m.Details.SetTrailer(msg.Trailer)
		return m, nil

	case components.OpenMovieMsg:
		return m, m.push(MovieRoute(msg.Movie.ID))

	case components.ToggleFavoriteMsg:
		return m, m.toggleFavorite(msg.Movie)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Anything else (spinner ticks, cursor blinks) goes to the active view
	return m.updateActive(msg)
}

// handleSearchResults applies a finished search. The Store is updated
// whenever the search succeeded; the home grid only if its mount is live.
func (m Model) handleSearchResults(msg SearchResultsMsg) (tea.Model, tea.Cmd) {
	live := msg.ViewID == m.viewID && m.route.Kind == RouteHome
	if live {
		m.searchPending = false
	}

	if !msg.OK {
		return m, m.setStatus(fmt.Sprintf("Search for %q failed", msg.Query), true)
	}

	if err := m.Store.ApplySearch(msg.Query, msg.Movies); err != nil {
		m.logger.Warn("failed to persist last search", "error", err)
	}

	if live {
		m.searched = true
		m.homeLoading = false
		m.HomeGrid.SetMovies(m.Store.Movies())
		m.SearchBar.SetValue(msg.Query)
		m.SearchBar.Blur()
		m.HomeGrid.SetFocused(true)
	}
	return m, nil
}

// isLiveDetails reports whether a details result belongs to the mounted view
func (m Model) isLiveDetails(viewID int) bool {
	if viewID != m.viewID || m.route.Kind != RouteMovie {
		m.logger.Debug("dropping stale details result", "viewID", viewID, "current", m.viewID)
		return false
	}
	return true
}

// toggleFavorite flips membership and refreshes every view showing it
func (m *Model) toggleFavorite(movie domain.Movie) tea.Cmd {
	added, err := m.Store.ToggleFavorite(movie)

	if m.route.Kind == RouteFavorites {
		m.FavGrid.ReplaceMovies(m.Store.Favorites())
	}
	if m.route.Kind == RouteMovie && m.route.MovieID == movie.ID {
		m.Details.SetFavorite(added)
	}

	if err != nil {
		m.logger.Warn("failed to persist favorites", "error", err)
		return m.setStatus("Favorites could not be saved", true)
	}
	if added {
		return m.setStatus("Added to favorites: "+movie.Title, false)
	}
	return m.setStatus("Removed from favorites: "+movie.Title, false)
}

// push navigates to route, remembering the current one for Back
func (m *Model) push(route Route) tea.Cmd {
	m.history = append(m.history, m.route)
	return m.mount(route)
}

// back returns to the previous route, or home when there is none
func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		if m.route.Kind == RouteHome {
			return nil
		}
		return m.mount(HomeRoute())
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.mount(prev)
}

// mount makes route the active view. Each mount gets a fresh viewID so
// results of requests issued by earlier mounts are ignored.
func (m *Model) mount(route Route) tea.Cmd {
	m.viewID++
	m.route = route
	m.SearchBar.Blur()
	m.HomeGrid.SetFocused(false)
	m.FavGrid.SetFocused(false)

	m.logger.Debug("mount", "route", route.Path(), "viewID", m.viewID)

	var cmd tea.Cmd
	switch route.Kind {
	case RouteHome:
		m.searched = false
		m.searchPending = false
		m.homeLoading = true
		m.HomeGrid.SetMovies(m.Store.Movies())
		m.HomeGrid.SetFocused(true)
		cmd = TrendingCmd(m.CatalogSvc, m.viewID)

	case RouteFavorites:
		m.FavGrid.SetMovies(m.Store.Favorites())
		m.FavGrid.SetFocused(true)

	case RouteMovie:
		tick := m.Details.Reset()
		m.Details.SetFavorite(m.Store.IsFavorite(route.MovieID))
		cmd = tea.Batch(tick, LoadDetailsCmd(m.CatalogSvc, m.viewID, route.MovieID))
	}

	m.updateLayout()
	return cmd
}

// setStatus shows a message in the footer for a few seconds
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	delay := 3 * time.Second
	if isErr {
		delay = 5 * time.Second
	}
	return ClearStatusCmd(m.statusSeq, delay)
}

// handleKeyMsg processes keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// Text inputs own the keyboard while focused
	if m.route.Kind == RouteHome && m.SearchBar.Focused() {
		var cmd tea.Cmd
		m.SearchBar, cmd = m.SearchBar.Update(msg)
		if !m.SearchBar.Focused() {
			m.HomeGrid.SetFocused(true)
		}
		return m, cmd
	}
	if grid := m.activeGrid(); grid != nil && grid.IsFilterTyping() {
		var cmd tea.Cmd
		*grid, cmd = grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Theme):
		m.Theme = m.Theme.Toggle()
		styles.Apply(m.Theme)
		m.Details.Refresh()
		return m, nil

	case key.Matches(msg, Keys.Favorites):
		if m.route.Kind == RouteFavorites {
			return m, nil
		}
		return m, m.push(FavoritesRoute())

	case key.Matches(msg, Keys.Home):
		if m.route.Kind == RouteHome {
			return m, nil
		}
		return m, m.push(HomeRoute())

	case key.Matches(msg, Keys.Back):
		return m, m.back()

	case key.Matches(msg, Keys.Escape):
		if grid := m.activeGrid(); grid != nil && grid.IsFiltering() {
			grid.ClearFilter()
			return m, nil
		}
		return m, m.back()
	}

	switch m.route.Kind {
	case RouteHome:
		switch {
		case key.Matches(msg, Keys.Search):
			m.HomeGrid.SetFocused(false)
			return m, m.SearchBar.Focus()
		case key.Matches(msg, Keys.Refresh):
			return m, m.mount(HomeRoute())
		}

	case RouteMovie:
		movie := m.Details.Movie()
		switch {
		case key.Matches(msg, Keys.Play):
			if movie == nil {
				return m, nil
			}
			return m, PlayTrailerCmd(m.PlaybackSvc, movie.Title, m.Details.Trailer())
		case key.Matches(msg, Keys.Homepage):
			if movie == nil {
				return m, nil
			}
			return m, OpenHomepageCmd(m.PlaybackSvc, movie)
		case key.Matches(msg, Keys.Favorite):
			if movie == nil {
				return m, nil
			}
			return m, m.toggleFavorite(*movie)
		}
	}

	return m.updateActive(msg)
}

// handleMouseMsg routes mouse events to the active view
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp {
		if msg.Action == tea.MouseActionPress {
			m.ShowHelp = false
		}
		return m, nil
	}

	// A click on the search line focuses the input
	if m.route.Kind == RouteHome && msg.Action == tea.MouseActionPress &&
		msg.Button == tea.MouseButtonLeft && msg.Y == components.NavbarHeight {
		m.HomeGrid.SetFocused(false)
		return m, m.SearchBar.Focus()
	}

	if m.route.Kind == RouteHome && m.SearchBar.Focused() && msg.Action == tea.MouseActionPress {
		m.SearchBar.Blur()
		m.HomeGrid.SetFocused(true)
	}

	return m.updateActive(msg)
}

// updateActive forwards a message to the mounted view's component
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route.Kind {
	case RouteHome:
		if m.SearchBar.Focused() {
			m.SearchBar, cmd = m.SearchBar.Update(msg)
		} else {
			m.HomeGrid, cmd = m.HomeGrid.Update(msg)
		}
	case RouteFavorites:
		m.FavGrid, cmd = m.FavGrid.Update(msg)
	case RouteMovie:
		m.Details, cmd = m.Details.Update(msg)
	}
	return m, cmd
}

// activeGrid returns the grid of the mounted view, if it has one
func (m *Model) activeGrid() *components.Grid {
	switch m.route.Kind {
	case RouteHome:
		return &m.HomeGrid
	case RouteFavorites:
		return &m.FavGrid
	}
	return nil
}

// updateLayout sizes components and records grid origins for hit-testing
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	homeTop := components.NavbarHeight + components.SearchBarHeight + HeaderHeight
	m.SearchBar.SetWidth(m.Width)
	m.HomeGrid.SetSize(m.Width, max(m.Height-homeTop-FooterHeight, 1))
	m.HomeGrid.SetOrigin(0, homeTop)

	favTop := components.NavbarHeight + HeaderHeight
	m.FavGrid.SetSize(m.Width, max(m.Height-favTop-FooterHeight, 1))
	m.FavGrid.SetOrigin(0, favTop)

	m.Details.SetSize(m.Width, max(m.Height-components.NavbarHeight-FooterHeight-1, 1))
}
