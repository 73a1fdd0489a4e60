package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Section headers
const (
	HeaderTrending      = "Trending Movies"
	HeaderSearchResults = "Search Results"
	HeaderFavorites     = "My Favorite Movies"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	navbar := components.RenderNavbar(m.Width, m.location(), len(m.Store.Favorites()), m.Theme)

	var body string
	switch m.route.Kind {
	case RouteHome:
		body = m.renderHome()
	case RouteFavorites:
		body = m.renderFavorites()
	case RouteMovie:
		body = m.Details.View()
	}

	bodyHeight := max(m.Height-components.NavbarHeight-FooterHeight, 0)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return styles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, navbar, body, m.renderFooter()))
}

// location names the current view for the navbar
func (m Model) location() string {
	switch m.route.Kind {
	case RouteFavorites:
		return "Favorites "
	case RouteMovie:
		if movie := m.Details.Movie(); movie != nil {
			return styles.Truncate(movie.Title, 40) + " "
		}
		return "Movie "
	}
	return ""
}

// HomeHeader returns the home section header for the current mount
func (m Model) HomeHeader() string {
	if m.searched {
		return HeaderSearchResults
	}
	return HeaderTrending
}

func (m Model) renderHome() string {
	header := styles.TitleStyle.Render(m.HomeHeader())
	switch {
	case m.searchPending:
		header += styles.DimStyle.Render("  searching...")
	case m.homeLoading:
		header += styles.DimStyle.Render("  loading...")
	}

	return m.SearchBar.View() + "\n" + header + "\n\n" + m.HomeGrid.View()
}

func (m Model) renderFavorites() string {
	header := styles.TitleStyle.Render(HeaderFavorites)
	return header + "\n\n" + m.FavGrid.View()
}

// renderFooter renders the status line or the key hints for the view
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	var hints []string
	switch m.route.Kind {
	case RouteHome:
		hints = []string{"s search", "enter open", "f favorite", "/ filter", "F favorites"}
	case RouteFavorites:
		hints = []string{"enter open", "f remove", "/ filter", "esc back"}
	case RouteMovie:
		hints = []string{"j/k scroll", "f favorite", "p trailer", "o homepage", "esc back"}
	}
	hints = append(hints, "t theme", "? help", "q quit")

	return styles.DimStyle.Render(styles.Truncate(strings.Join(hints, " · "), m.Width))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"BROWSING", ""},
		{"h/j/k/l", "Move between cards"},
		{"g/G", "First/last card"},
		{"Ctrl+u/d", "Page up/down"},
		{"Enter", "Open movie details"},
		{"f", "Toggle favorite"},
		{"/", "Filter cards by title"},
		{"", ""},
		{"NAVIGATION", ""},
		{Keys.Search.Help().Key, "Search movies"},
		{Keys.Favorites.Help().Key, "Go to favorites"},
		{Keys.Home.Help().Key, "Home"},
		{"esc/b", "Back"},
		{Keys.Refresh.Help().Key, "Reload trending"},
		{"", ""},
		{"DETAILS", ""},
		{Keys.Play.Help().Key, "Play trailer"},
		{Keys.Homepage.Help().Key, "Open homepage"},
		{"", ""},
		{"OTHER", ""},
		{Keys.Theme.Help().Key, "Toggle light/dark theme"},
		{Keys.Help.Help().Key, "This help"},
		{Keys.Quit.Help().Key, "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(components.AppTitle + " help"))
	b.WriteString("\n\n")
	for _, r := range rows {
		switch {
		case r[0] == "" && r[1] == "":
			b.WriteString("\n")
		case r[1] == "":
			b.WriteString(styles.SectionStyle.Render(r[0]) + "\n")
		default:
			b.WriteString(fmt.Sprintf("  %s %s\n",
				styles.HelpKeyStyle.Render(styles.Pad(r[0], 10)),
				styles.HelpDescStyle.Render(r[1])))
		}
	}
	b.WriteString("\n" + styles.DimStyle.Render("Press any key to return..."))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}
