package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// detailsState tracks the movie request; cast and trailer are independent
type detailsState int

const (
	detailsLoading detailsState = iota
	detailsReady
	detailsFailed
)

var usd = message.NewPrinter(language.AmericanEnglish)

// Details shows one movie's full record in a scrollable viewport
type Details struct {
	state    detailsState
	movie    *domain.Movie
	cast     []domain.CastMember
	castDone bool
	trailer  *domain.Trailer

	favorite  bool
	imageBase string

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

// NewDetails creates a new details view
func NewDetails(imageBase string) Details {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Details{
		imageBase: imageBase,
		spinner:   sp,
		viewport:  viewport.New(0, 0),
	}
}

// Reset clears the view for a new movie and returns the spinner tick
func (d *Details) Reset() tea.Cmd {
	d.state = detailsLoading
	d.movie = nil
	d.cast = nil
	d.castDone = false
	d.trailer = nil
	d.favorite = false
	d.viewport.GotoTop()
	d.refresh()
	return d.spinner.Tick
}

// SetMovie applies the movie result; nil means the request failed
func (d *Details) SetMovie(m *domain.Movie) {
	if m == nil {
		d.state = detailsFailed
		d.movie = nil
	} else {
		d.state = detailsReady
		d.movie = m
	}
	d.refresh()
}

// SetCast applies the cast result
func (d *Details) SetCast(cast []domain.CastMember) {
	d.cast = cast
	d.castDone = true
	d.refresh()
}

// SetTrailer applies the trailer result; nil means none
func (d *Details) SetTrailer(t *domain.Trailer) {
	d.trailer = t
	d.refresh()
}

// SetFavorite updates the favorite indicator
func (d *Details) SetFavorite(fav bool) {
	d.favorite = fav
	d.refresh()
}

// Movie returns the loaded movie, nil while loading or after failure
func (d Details) Movie() *domain.Movie {
	return d.movie
}

// Trailer returns the trailer, nil when there is none
func (d Details) Trailer() *domain.Trailer {
	return d.trailer
}

// Loading reports whether the movie request is still pending
func (d Details) Loading() bool {
	return d.state == detailsLoading
}

// Failed reports whether the movie request failed
func (d Details) Failed() bool {
	return d.state == detailsFailed
}

// SetSize updates the component dimensions
func (d *Details) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = max(height, 1)
	d.refresh()
}

// Refresh re-renders content, e.g. after a theme change
func (d *Details) Refresh() {
	d.refresh()
}

func (d *Details) refresh() {
	if d.state != detailsReady || d.movie == nil {
		d.viewport.SetContent("")
		return
	}
	d.viewport.SetContent(RenderDetails(*d.movie, d.cast, d.castDone, d.trailer, d.favorite, d.imageBase, d.width))
}

// Update handles scrolling and the loading spinner
func (d Details) Update(msg tea.Msg) (Details, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if d.state != detailsLoading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DetailsKeys.Up):
			d.viewport.LineUp(1)
		case key.Matches(msg, DetailsKeys.Down):
			d.viewport.LineDown(1)
		case key.Matches(msg, DetailsKeys.HalfUp):
			d.viewport.HalfViewUp()
		case key.Matches(msg, DetailsKeys.HalfDown):
			d.viewport.HalfViewDown()
		case key.Matches(msg, DetailsKeys.Top):
			d.viewport.GotoTop()
		case key.Matches(msg, DetailsKeys.Bottom):
			d.viewport.GotoBottom()
		}
		return d, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return d, cmd
	}

	return d, nil
}

// View renders the component. A failed movie request renders nothing.
func (d Details) View() string {
	switch d.state {
	case detailsLoading:
		return d.renderSkeleton()
	case detailsFailed:
		return ""
	}

	view := d.viewport.View()
	if !d.viewport.AtBottom() {
		view += "\n" + styles.DimStyle.Render(fmt.Sprintf("↓ %3.f%%", d.viewport.ScrollPercent()*100))
	}
	return view
}

// renderSkeleton draws placeholder bars while the movie loads
func (d Details) renderSkeleton() string {
	w := max(d.width, 20)
	bar := func(frac float64) string {
		return styles.SkeletonStyle.Render(strings.Repeat("░", max(int(float64(w)*frac), 4)))
	}

	lines := []string{
		d.spinner.View() + styles.DimStyle.Render(" Loading movie..."),
		"",
		bar(1.0),
		bar(1.0),
		bar(1.0),
		"",
		bar(0.7),
		bar(0.15) + "  " + bar(0.15) + "  " + bar(0.15),
		"",
		bar(1.0),
		bar(1.0),
		bar(0.6),
	}
	return strings.Join(lines, "\n")
}

// RenderDetails renders the full details page for a movie
func RenderDetails(m domain.Movie, cast []domain.CastMember, castDone bool, trailer *domain.Trailer, favorite bool, imageBase string, width int) string {
	width = max(width, 30)
	bodyWidth := min(width-2, 100)

	var b strings.Builder

	// Header: backdrop and poster references, title, tagline, genres, rating
	b.WriteString(styles.PosterStyle.Render(styles.Truncate("backdrop "+m.BackdropURL(imageBase), width)))
	b.WriteString("\n")
	b.WriteString(styles.PosterStyle.Render(styles.Truncate("poster   "+m.PosterURL(imageBase), width)))
	b.WriteString("\n\n")

	heart := styles.HeartOffStyle.Render(styles.HeartEmpty)
	if favorite {
		heart = styles.HeartOnStyle.Render(styles.HeartFull)
	}
	title := styles.TitleStyle.Render(m.Title)
	if y := m.YearString(); y != "" {
		title += styles.SubtitleStyle.Render(" (" + y + ")")
	}
	b.WriteString(heart + " " + title)
	b.WriteString("\n")

	if m.Tagline != "" {
		b.WriteString(styles.TaglineStyle.Render(m.Tagline))
		b.WriteString("\n")
	}

	if len(m.Genres) > 0 {
		chips := make([]string, len(m.Genres))
		for i, g := range m.Genres {
			chips[i] = styles.ChipStyle.Render(g.Name)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
		b.WriteString("\n")
	}

	if m.VoteAverage > 0 {
		stars := m.StarRating()
		b.WriteString(styles.RatingStyle(m.VoteAverage).Render(styles.RenderStars(stars)))
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" %.1f/5 (%s votes)", stars, humanize.Comma(int64(m.VoteCount)))))
		b.WriteString("\n")
	}

	// Overview and facts
	b.WriteString(section("Overview"))
	overview := m.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(styles.WordWrap(overview, bodyWidth))
	b.WriteString("\n\n")

	releaseDate := m.ReleaseDate
	if releaseDate == "" {
		releaseDate = "Unknown"
	}
	b.WriteString(fact("Release Date", releaseDate))
	b.WriteString(fact("Runtime", m.FormattedRuntime()))
	b.WriteString(fact("Budget", FormatCurrency(m.Budget)))
	b.WriteString(fact("Revenue", FormatCurrency(m.Revenue)))

	// Cast
	b.WriteString(section("Top Cast"))
	switch {
	case !castDone:
		b.WriteString(styles.DimStyle.Render("Loading cast..."))
		b.WriteString("\n")
	case len(cast) == 0:
		b.WriteString("No cast information available.\n")
	default:
		for _, c := range cast {
			line := styles.TitleStyle.Render(c.Name)
			if c.Character != "" {
				line += styles.DimStyle.Render(" as " + c.Character)
			}
			b.WriteString("  " + line + "\n")
			b.WriteString("    " + styles.PosterStyle.Render(styles.Truncate(c.ProfileURL(imageBase), bodyWidth-4)) + "\n")
		}
	}

	// Trailer section only exists when a trailer was found
	if trailer != nil {
		b.WriteString(section("▶ Trailer"))
		name := trailer.Name
		if name == "" {
			name = "Movie Trailer"
		}
		b.WriteString(name + "\n")
		b.WriteString(styles.AccentStyle.Render(trailer.URL()))
		b.WriteString(styles.DimStyle.Render("  (p to play)"))
		b.WriteString("\n")
	}

	// Production
	b.WriteString(section("Production"))
	if len(m.ProductionCompanies) == 0 {
		b.WriteString("No production companies information available.\n")
	} else {
		for _, c := range m.ProductionCompanies {
			line := "  " + c.Name
			if c.OriginCountry != "" {
				line += styles.DimStyle.Render(" · " + c.OriginCountry)
			}
			b.WriteString(line + "\n")
		}
	}

	// Additional details; each row only when the field is present
	b.WriteString(section("Additional Details"))
	if m.Status != "" {
		b.WriteString(fact("Status", m.Status))
	}
	if m.OriginalLanguage != "" {
		b.WriteString(fact("Original Language", strings.ToUpper(m.OriginalLanguage)))
	}
	if m.Popularity != 0 {
		b.WriteString(fact("Popularity", fmt.Sprintf("%.1f", m.Popularity)))
	}
	if m.Homepage != "" {
		b.WriteString(fact("Homepage", styles.AccentStyle.Render(m.Homepage)+styles.DimStyle.Render("  (o to visit)")))
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatCurrency renders whole US dollars, or N/A for zero
func FormatCurrency(amount int64) string {
	if amount == 0 {
		return "N/A"
	}
	return usd.Sprintf("$%d", amount)
}

func section(title string) string {
	return styles.SectionStyle.Render(title) + "\n"
}

func fact(label, value string) string {
	return styles.TitleStyle.Render(label+":") + " " + value + "\n"
}
