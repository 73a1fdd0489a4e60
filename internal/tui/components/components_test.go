package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

func sampleMovies() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25", VoteAverage: 8.1},
		{ID: 2, Title: "Aliens", ReleaseDate: "1986-07-18", VoteAverage: 7.9},
		{ID: 3, Title: "Blade Runner", ReleaseDate: "1982-06-25", VoteAverage: 7.9},
	}
}

func newTestGrid(movies []domain.Movie) Grid {
	g := NewGrid(nil)
	g.SetColumns(2)
	g.SetSize(80, 30)
	g.SetOrigin(0, 5)
	g.SetFocused(true)
	g.SetMovies(movies)
	return g
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestHitTestCard(t *testing.T) {
	heartX := cardFrameX + cardInner - 1

	assert.Equal(t, HitHeart, HitTestCard(heartX, heartRow))
	assert.Equal(t, HitHeart, HitTestCard(heartX-1, heartRow))
	assert.Equal(t, HitBody, HitTestCard(heartX, heartRow+1))
	assert.Equal(t, HitBody, HitTestCard(3, heartRow))
	assert.Equal(t, HitNone, HitTestCard(-1, 0))
	assert.Equal(t, HitNone, HitTestCard(CardWidth, 0))
}

func TestRenderCard_Geometry(t *testing.T) {
	card := RenderCard(sampleMovies()[0], false, false, nil)

	assert.Equal(t, CardWidth, lipgloss.Width(card))
	assert.Equal(t, CardHeight, lipgloss.Height(card))
	assert.Contains(t, card, "Alien")
	assert.Contains(t, card, "1979")
	assert.Contains(t, card, "Rating: 8.1")
}

func TestRenderCard_Heart(t *testing.T) {
	m := sampleMovies()[0]
	assert.Contains(t, RenderCard(m, true, false, nil), "♥")
	assert.Contains(t, RenderCard(m, false, false, nil), "♡")
}

func TestGrid_ClickHeartOnlyToggles(t *testing.T) {
	g := newTestGrid(sampleMovies())

	// Second card, heart glyph on its first content row
	x := (CardWidth + CardGapX) + cardFrameX + cardInner - 1
	y := 5 + heartRow

	msg := runCmd(t, g.Click(x, y))
	toggle, ok := msg.(ToggleFavoriteMsg)
	require.True(t, ok, "heart click must not open the card, got %T", msg)
	assert.Equal(t, int64(2), toggle.Movie.ID)
}

func TestGrid_ClickBodyOpens(t *testing.T) {
	g := newTestGrid(sampleMovies())

	// First card of the second row, title line
	msg := runCmd(t, g.Click(4, 5+CardHeight+2))
	open, ok := msg.(OpenMovieMsg)
	require.True(t, ok)
	assert.Equal(t, int64(3), open.Movie.ID)
	assert.Equal(t, 2, g.Cursor())
}

func TestGrid_ClickOutside(t *testing.T) {
	g := newTestGrid(sampleMovies())

	assert.Nil(t, g.Click(4, 2), "above the grid")
	assert.Nil(t, g.Click(2*(CardWidth+CardGapX)+3, 6), "past the last column")
	assert.Nil(t, g.Click(CardWidth+CardGapX+3, 5+CardHeight+1), "empty slot")
}

func TestGrid_Keys(t *testing.T) {
	g := newTestGrid(sampleMovies())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	assert.Equal(t, 1, g.Cursor())
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, g.Cursor(), "no card below")
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 2, g.Cursor())

	_, cmd := g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	toggle, ok := runCmd(t, cmd).(ToggleFavoriteMsg)
	require.True(t, ok)
	assert.Equal(t, int64(3), toggle.Movie.ID)

	_, cmd = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	open, ok := runCmd(t, cmd).(OpenMovieMsg)
	require.True(t, ok)
	assert.Equal(t, int64(3), open.Movie.ID)
}

func TestGrid_Filter(t *testing.T) {
	g := newTestGrid(sampleMovies())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, g.IsFilterTyping())
	for _, r := range "blade" {
		g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	sel, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "Blade Runner", sel.Title)
	assert.NotContains(t, g.View(), "Aliens")

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, g.IsFiltering())
	assert.Contains(t, g.View(), "Aliens")
}

func TestGrid_EmptyText(t *testing.T) {
	g := newTestGrid(nil)
	g.SetEmptyText("No movies available")

	assert.True(t, g.IsEmpty())
	assert.Contains(t, g.View(), "No movies available")
	assert.Nil(t, g.Click(4, 6))
}

func TestGrid_ReplaceMoviesKeepsCursor(t *testing.T) {
	g := newTestGrid(sampleMovies())
	g.SetCursor(2)

	g.ReplaceMovies(sampleMovies()[:2])
	assert.Equal(t, 1, g.Cursor())
}

func TestSearchBar_Submit(t *testing.T) {
	s := NewSearchBar("")
	s.Focus()

	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "blank input is not submitted")
	assert.True(t, s.Focused())

	s.SetValue("  dune ")
	s, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(t, cmd).(SubmitSearchMsg)
	require.True(t, ok)
	assert.Equal(t, "dune", msg.Query)
	assert.False(t, s.Focused())
}

func TestSearchBar_PrefilledWithLastSearch(t *testing.T) {
	s := NewSearchBar("matrix")
	assert.Equal(t, "matrix", s.Value())
	assert.Contains(t, s.View(), SearchBarLabel)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "N/A", FormatCurrency(0))
	assert.Equal(t, "$165,000,000", FormatCurrency(165000000))
	assert.Equal(t, "$999", FormatCurrency(999))
}

func detailedMovie() domain.Movie {
	return domain.Movie{
		ID:               157336,
		Title:            "Interstellar",
		ReleaseDate:      "2014-11-05",
		Tagline:          "Mankind was born on Earth. It was never meant to die here.",
		Overview:         "A team of explorers travel through a wormhole in space.",
		VoteAverage:      8.4,
		VoteCount:        35120,
		Runtime:          169,
		Budget:           165000000,
		Revenue:          701729206,
		Genres:           []domain.Genre{{ID: 12, Name: "Adventure"}, {ID: 18, Name: "Drama"}},
		Status:           "Released",
		OriginalLanguage: "en",
		Popularity:       140.241,
		Homepage:         "http://www.interstellarmovie.net/",
	}
}

func TestRenderDetails_Sections(t *testing.T) {
	cast := []domain.CastMember{{ID: 10297, Name: "Matthew McConaughey", Character: "Cooper"}}
	trailer := &domain.Trailer{Key: "zSWdZVtXT7E", Name: "Official Trailer"}

	out := RenderDetails(detailedMovie(), cast, true, trailer, true, "https://image.tmdb.org/t/p", 120)

	for _, want := range []string{
		"Interstellar", "(2014)", "Mankind was born", "Adventure", "Drama",
		"4.2/5", "35,120 votes",
		"Overview", "wormhole",
		"Release Date:", "2014-11-05", "Runtime:", "$165,000,000", "$701,729,206",
		"Top Cast", "Matthew McConaughey", "as Cooper",
		"Trailer", "youtube.com/watch?v=zSWdZVtXT7E",
		"No production companies information available.",
		"Status:", "Released", "Original Language:", "EN", "Popularity:", "140.2",
		"interstellarmovie.net",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderDetails_NoTrailerOmitsSection(t *testing.T) {
	out := RenderDetails(detailedMovie(), nil, true, nil, false, "", 120)

	assert.NotContains(t, out, "Trailer")
	assert.Contains(t, out, "No cast information available.")
}

func TestRenderDetails_EmptyFields(t *testing.T) {
	out := RenderDetails(domain.Movie{ID: 1, Title: "Untitled"}, nil, false, nil, false, "", 80)

	assert.Contains(t, out, "No overview available.")
	assert.Contains(t, out, "Loading cast...")
	assert.Contains(t, out, "Budget: N/A")
	assert.NotContains(t, out, "Status:")
	assert.NotContains(t, out, "Homepage:")
}

func TestDetails_States(t *testing.T) {
	d := NewDetails("")
	d.SetSize(100, 30)

	cmd := d.Reset()
	assert.NotNil(t, cmd)
	assert.True(t, d.Loading())
	assert.Contains(t, d.View(), "Loading movie")

	d.SetMovie(nil)
	assert.True(t, d.Failed())
	assert.Empty(t, d.View())

	d.Reset()
	m := detailedMovie()
	d.SetMovie(&m)
	assert.False(t, d.Loading())
	assert.Contains(t, d.View(), "Interstellar")
}

func TestRenderNavbar(t *testing.T) {
	bar := RenderNavbar(80, "Favorites ", 3, styles.Light)

	assert.Contains(t, bar, AppTitle)
	assert.Contains(t, bar, "Favorites")
	assert.Contains(t, bar, "3")
	assert.Equal(t, 80, lipgloss.Width(bar))
}
