package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Lines the grid reserves below the cards
const (
	ScrollIndicatorLines = 1
	FilterBarLines       = 1
)

// OpenMovieMsg asks the app to show a movie's details
type OpenMovieMsg struct {
	Movie domain.Movie
}

// ToggleFavoriteMsg asks the app to toggle a movie's favorite status
type ToggleFavoriteMsg struct {
	Movie domain.Movie
}

// Grid is a scrollable grid of movie cards
type Grid struct {
	movies  []domain.Movie
	index   *service.MovieIndex
	visible []service.FilterMatch

	isFavorite func(id int64) bool
	emptyText  string

	// Selection
	cursor    int
	rowOffset int

	// Dimensions and screen position of the top-left card
	width, height int
	originX       int
	originY       int
	fixedColumns  int
	focused       bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
}

// NewGrid creates a new card grid
func NewGrid(isFavorite func(id int64) bool) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if isFavorite == nil {
		isFavorite = func(int64) bool { return false }
	}

	g := Grid{
		isFavorite:  isFavorite,
		emptyText:   "No movies available",
		filterInput: ti,
	}
	g.SetMovies(nil)
	return g
}

// SetMovies replaces the grid content and resets selection
func (g *Grid) SetMovies(movies []domain.Movie) {
	g.movies = movies
	g.index = service.NewMovieIndex(movies)
	g.cursor = 0
	g.rowOffset = 0
	g.clearFilter()
}

// ReplaceMovies swaps the content but keeps the filter and a clamped cursor
func (g *Grid) ReplaceMovies(movies []domain.Movie) {
	cursor := g.cursor
	g.movies = movies
	g.index = service.NewMovieIndex(movies)
	g.applyFilter()
	g.SetCursor(cursor)
}

// Movies returns the unfiltered content
func (g Grid) Movies() []domain.Movie {
	return g.movies
}

// SetEmptyText sets the message shown when there are no movies
func (g *Grid) SetEmptyText(s string) {
	g.emptyText = s
}

// SetColumns fixes the column count; 0 fits as many as the width allows
func (g *Grid) SetColumns(n int) {
	g.fixedColumns = max(n, 0)
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetOrigin records where the grid is drawn on screen, for mouse hit-testing
func (g *Grid) SetOrigin(x, y int) {
	g.originX = x
	g.originY = y
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Columns returns how many cards fit per row
func (g Grid) Columns() int {
	if g.fixedColumns > 0 {
		return g.fixedColumns
	}
	return max(1, (g.width+CardGapX)/(CardWidth+CardGapX))
}

// visibleRows returns how many card rows fit
func (g Grid) visibleRows() int {
	avail := g.height - ScrollIndicatorLines
	if g.filterActive {
		avail -= FilterBarLines
	}
	return max(1, avail/CardHeight)
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor moves the cursor, clamped to the visible cards
func (g *Grid) SetCursor(pos int) {
	count := len(g.visible)
	if count == 0 {
		g.cursor = 0
		return
	}
	g.cursor = min(max(pos, 0), count-1)
	g.ensureVisible()
}

// Selected returns the movie under the cursor
func (g Grid) Selected() (domain.Movie, bool) {
	if g.cursor < 0 || g.cursor >= len(g.visible) {
		return domain.Movie{}, false
	}
	return g.visible[g.cursor].Movie, true
}

// IsEmpty returns true if there are no cards to show
func (g Grid) IsEmpty() bool {
	return len(g.visible) == 0
}

// IsFilterTyping returns true while the filter input has focus
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// IsFiltering returns true while a filter is applied
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// ensureVisible scrolls so the cursor row is on screen
func (g *Grid) ensureVisible() {
	cols := g.Columns()
	row := g.cursor / cols
	rows := g.visibleRows()
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+rows {
		g.rowOffset = row - rows + 1
	}
	if g.rowOffset < 0 {
		g.rowOffset = 0
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.ensureVisible()
}

// ClearFilter deactivates the filter and shows all cards
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.applyFilter()
}

// applyFilter recomputes the visible cards from the filter query
func (g *Grid) applyFilter() {
	g.visible = g.index.Filter(g.filterInput.Value())
	g.cursor = 0
	g.rowOffset = 0
}

// Click maps a screen position to a card action. A click on the heart
// toggles the favorite and never opens the card.
func (g *Grid) Click(x, y int) tea.Cmd {
	idx, hit := g.hitTest(x, y)
	if hit == HitNone {
		return nil
	}

	g.cursor = idx
	movie := g.visible[idx].Movie
	if hit == HitHeart {
		return func() tea.Msg { return ToggleFavoriteMsg{Movie: movie} }
	}
	return func() tea.Msg { return OpenMovieMsg{Movie: movie} }
}

// hitTest finds the card and card region under a screen position
func (g Grid) hitTest(x, y int) (int, CardHit) {
	relX := x - g.originX
	relY := y - g.originY
	if relX < 0 || relY < 0 {
		return -1, HitNone
	}

	col := relX / (CardWidth + CardGapX)
	row := relY / CardHeight
	if col >= g.Columns() || row >= g.visibleRows() {
		return -1, HitNone
	}

	idx := (g.rowOffset+row)*g.Columns() + col
	if idx >= len(g.visible) {
		return -1, HitNone
	}

	hit := HitTestCard(relX-col*(CardWidth+CardGapX), relY-row*CardHeight)
	return idx, hit
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Filter input has focus: route keys to it
	if g.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return g, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			return g, g.Click(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			g.SetCursor(g.cursor - g.Columns())
		case tea.MouseButtonWheelDown:
			g.SetCursor(g.cursor + g.Columns())
		}
		return g, nil

	case tea.KeyMsg:
		cols := g.Columns()
		page := g.visibleRows() * cols

		switch {
		case key.Matches(msg, GridKeys.Filter):
			if g.filterActive {
				g.filterInput.Focus()
			} else {
				g.ToggleFilter()
			}
		case key.Matches(msg, GridKeys.Escape):
			if g.filterActive {
				g.clearFilter()
			}
		case key.Matches(msg, GridKeys.Left):
			g.SetCursor(g.cursor - 1)
		case key.Matches(msg, GridKeys.Right):
			g.SetCursor(g.cursor + 1)
		case key.Matches(msg, GridKeys.Up):
			if g.cursor-cols >= 0 {
				g.SetCursor(g.cursor - cols)
			}
		case key.Matches(msg, GridKeys.Down):
			if g.cursor+cols < len(g.visible) {
				g.SetCursor(g.cursor + cols)
			}
		case key.Matches(msg, GridKeys.Home):
			g.SetCursor(0)
		case key.Matches(msg, GridKeys.End):
			g.SetCursor(len(g.visible) - 1)
		case key.Matches(msg, GridKeys.HalfUp):
			g.SetCursor(g.cursor - page)
		case key.Matches(msg, GridKeys.HalfDown):
			g.SetCursor(g.cursor + page)
		case key.Matches(msg, GridKeys.Open):
			if m, ok := g.Selected(); ok {
				return g, func() tea.Msg { return OpenMovieMsg{Movie: m} }
			}
		case key.Matches(msg, GridKeys.Favorite):
			if m, ok := g.Selected(); ok {
				return g, func() tea.Msg { return ToggleFavoriteMsg{Movie: m} }
			}
		}
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	var sections []string

	if len(g.visible) == 0 {
		empty := g.emptyText
		if g.filterActive && g.filterInput.Value() != "" {
			empty = "No matches"
		}
		sections = append(sections, styles.DimStyle.Render(empty))
	} else {
		cols := g.Columns()
		rows := g.visibleRows()
		start := g.rowOffset * cols
		end := min(start+rows*cols, len(g.visible))

		var rowViews []string
		for rowStart := start; rowStart < end; rowStart += cols {
			var cards []string
			for i := rowStart; i < min(rowStart+cols, end); i++ {
				match := g.visible[i]
				card := RenderCard(match.Movie, g.isFavorite(match.Movie.ID), g.focused && i == g.cursor, match.MatchedIndexes)
				if i > rowStart {
					card = lipgloss.NewStyle().MarginLeft(CardGapX).Render(card)
				}
				cards = append(cards, card)
			}
			rowViews = append(rowViews, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		}
		sections = append(sections, strings.Join(rowViews, "\n"))

		indicator := " "
		if end < len(g.visible) {
			indicator = styles.DimStyle.Render(fmt.Sprintf("↓ more (%d/%d)", g.cursor+1, len(g.visible)))
		} else if g.rowOffset > 0 {
			indicator = styles.DimStyle.Render("↑ more")
		}
		sections = append(sections, indicator)
	}

	if g.filterActive {
		sections = append(sections, g.renderFilterBar())
	}

	return strings.Join(sections, "\n")
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()
	countStr := ""
	if g.filterInput.Value() != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(g.visible), len(g.movies)))
	}
	return input + countStr
}
