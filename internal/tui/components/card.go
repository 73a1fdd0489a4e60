package components

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Card geometry, including the border
const (
	CardWidth  = 28
	CardHeight = 6
	CardGapX   = 1

	// Border (1) + padding (1) on each side
	cardFrameX = 2
	cardInner  = CardWidth - 2*cardFrameX

	// The heart sits at the right end of the first content row.
	// heartHitWidth columns ending there count as a heart click.
	heartRow      = 1
	heartHitWidth = 3
)

// CardHit says which part of a card a point landed on
type CardHit int

const (
	HitNone CardHit = iota
	HitBody
	HitHeart
)

// HitTestCard classifies a point relative to the card's top-left corner
func HitTestCard(x, y int) CardHit {
	if x < 0 || y < 0 || x >= CardWidth || y >= CardHeight {
		return HitNone
	}
	heartX := cardFrameX + cardInner - 1
	if y == heartRow && x <= heartX && x > heartX-heartHitWidth {
		return HitHeart
	}
	return HitBody
}

// posterLabel is the terminal stand-in for the poster image
func posterLabel(m domain.Movie) string {
	if m.PosterPath == "" {
		return "▣ " + domain.Placeholder(500, 750)
	}
	return "▣ " + domain.PosterSize + "/" + path.Base(m.PosterPath)
}

// RenderCard renders one movie card. matched highlights title characters
// from an active filter.
func RenderCard(m domain.Movie, favorite, selected bool, matched []int) string {
	heart := styles.HeartOffStyle.Render(styles.HeartEmpty)
	if favorite {
		heart = styles.HeartOnStyle.Render(styles.HeartFull)
	}

	poster := styles.PosterStyle.Render(styles.Truncate(posterLabel(m), cardInner-2))
	topRow := styles.Pad(poster, cardInner-1) + heart

	title := m.DisplayTitle()
	titleLine := styles.TitleStyle.Render(styles.Truncate(title, cardInner))
	if len(matched) > 0 && lipgloss.Width(title) <= cardInner {
		titleLine = styles.HighlightMatches(title, matched, styles.TitleStyle)
	}

	year := m.YearString()
	if year == "" {
		year = " "
	}

	rating := styles.RatingStyle(m.VoteAverage).Render(fmt.Sprintf("Rating: %s", formatVote(m.VoteAverage)))

	content := strings.Join([]string{
		topRow,
		titleLine,
		styles.DimStyle.Render(year),
		rating,
	}, "\n")

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(CardWidth - frameW + style.GetHorizontalPadding()).
		Height(CardHeight - frameH + style.GetVerticalPadding()).
		Render(content)
}

// formatVote prints a vote average the way the catalog reports it,
// without trailing zeros
func formatVote(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
