package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// AppTitle is shown at the left of the navbar
const AppTitle = "Movie Explorer"

// NavbarHeight is the number of lines the navbar occupies
const NavbarHeight = 1

// RenderNavbar renders the top bar: title and location on the left,
// favorites count and theme indicator on the right
func RenderNavbar(width int, location string, favoriteCount int, mode styles.Mode) string {
	left := styles.NavbarTitleStyle.Render(" " + AppTitle)
	if location != "" {
		left += styles.NavbarStyle.Render("› " + location)
	}

	theme := "☀ light"
	if mode == styles.Dark {
		theme = "☾ dark"
	}
	right := styles.NavbarStyle.Render(styles.HeartFull + " " + strconv.Itoa(favoriteCount) + "   " + theme)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	filler := styles.NavbarTitleStyle.Render(strings.Repeat(" ", gap))

	return left + filler + right
}
