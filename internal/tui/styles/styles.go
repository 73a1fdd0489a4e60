package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the process-wide color theme
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode maps a config value to a Mode, defaulting to Light
func ParseMode(s string) Mode {
	if strings.EqualFold(s, string(Dark)) {
		return Dark
	}
	return Light
}

// Palette holds the colors of one theme
type Palette struct {
	Primary    lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Heart      lipgloss.Color
	HeartEmpty lipgloss.Color
	Green      lipgloss.Color
	Amber      lipgloss.Color
	Red        lipgloss.Color
}

// Color palettes
var (
	LightPalette = Palette{
		Primary:    lipgloss.Color("#1976D2"),
		Background: lipgloss.Color("#F4F4F4"),
		Surface:    lipgloss.Color("#FFFFFF"),
		Text:       lipgloss.Color("#212121"),
		Muted:      lipgloss.Color("#6B7280"),
		Border:     lipgloss.Color("#BDBDBD"),
		Heart:      lipgloss.Color("#E53935"),
		HeartEmpty: lipgloss.Color("#9E9E9E"),
		Green:      lipgloss.Color("#2E7D32"),
		Amber:      lipgloss.Color("#F9A825"),
		Red:        lipgloss.Color("#C62828"),
	}

	DarkPalette = Palette{
		Primary:    lipgloss.Color("#90CAF9"),
		Background: lipgloss.Color("#121212"),
		Surface:    lipgloss.Color("#1E1E1E"),
		Text:       lipgloss.Color("#F9FAFB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Border:     lipgloss.Color("#4B5563"),
		Heart:      lipgloss.Color("#EF5350"),
		HeartEmpty: lipgloss.Color("#6B7280"),
		Green:      lipgloss.Color("#10B981"),
		Amber:      lipgloss.Color("#E5A00D"),
		Red:        lipgloss.Color("#EF4444"),
	}
)

// Current is the active palette
var Current = LightPalette

// Raw glyphs (unstyled)
const (
	HeartFull  = "♥"
	HeartEmpty = "♡"
	StarFull   = "★"
	StarHalf   = "⯪"
	StarEmpty  = "☆"
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
	SectionStyle   lipgloss.Style
	TaglineStyle   lipgloss.Style
	ChipStyle      lipgloss.Style
)

// Chrome
var (
	NavbarStyle      lipgloss.Style
	NavbarTitleStyle lipgloss.Style
	AppStyle         lipgloss.Style
	SkeletonStyle    lipgloss.Style
)

// Cards
var (
	CardStyle         lipgloss.Style
	CardSelectedStyle lipgloss.Style
	HeartOnStyle      lipgloss.Style
	HeartOffStyle     lipgloss.Style
	PosterStyle       lipgloss.Style
)

// Modal and help
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	HelpKeyStyle    lipgloss.Style
	HelpDescStyle   lipgloss.Style
)

// Search, filter and spinner
var (
	SearchLabelStyle    lipgloss.Style
	FilterStyle         lipgloss.Style
	FilterPromptStyle   lipgloss.Style
	MatchHighlightStyle lipgloss.Style
	SpinnerStyle        lipgloss.Style
)

func init() {
	Apply(Light)
}

// Apply rebuilds every style from the palette for mode
func Apply(mode Mode) {
	p := LightPalette
	if mode == Dark {
		p = DarkPalette
	}
	Current = p

	TitleStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(p.Muted)
	DimStyle = lipgloss.NewStyle().Foreground(p.Muted)
	AccentStyle = lipgloss.NewStyle().Foreground(p.Primary)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Green)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Primary).
		Padding(0, 1)
	SectionStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginTop(1)
	TaglineStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	ChipStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	NavbarStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Primary).
		Padding(0, 1)
	NavbarTitleStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Primary).
		Bold(true)
	AppStyle = lipgloss.NewStyle().Foreground(p.Text)
	SkeletonStyle = lipgloss.NewStyle().Foreground(p.Border)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	CardSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
	HeartOnStyle = lipgloss.NewStyle().Foreground(p.Heart).Bold(true)
	HeartOffStyle = lipgloss.NewStyle().Foreground(p.HeartEmpty)
	PosterStyle = lipgloss.NewStyle().Foreground(p.Muted).Faint(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true).
		MarginBottom(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(p.Muted)

	SearchLabelStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	FilterStyle = lipgloss.NewStyle().Foreground(p.Primary)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	MatchHighlightStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Underline(true)
	SpinnerStyle = lipgloss.NewStyle().Foreground(p.Primary)
}

// RatingStyle colors a 0-10 vote average
func RatingStyle(voteAverage float64) lipgloss.Style {
	switch {
	case voteAverage >= 7:
		return lipgloss.NewStyle().Foreground(Current.Green)
	case voteAverage >= 5:
		return lipgloss.NewStyle().Foreground(Current.Amber)
	default:
		return lipgloss.NewStyle().Foreground(Current.Red)
	}
}

// Helper functions

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string with spaces to the given display width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// RenderStars renders a 0-5 rating in half-star precision
func RenderStars(outOfFive float64) string {
	halves := int(outOfFive*2 + 0.5)
	var b strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case halves >= 2:
			b.WriteString(StarFull)
			halves -= 2
		case halves == 1:
			b.WriteString(StarHalf)
			halves = 0
		default:
			b.WriteString(StarEmpty)
		}
	}
	return b.String()
}

// HighlightMatches renders s with the byte offsets in matched emphasized
func HighlightMatches(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// WordWrap wraps text at word boundaries to width
func WordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if lipgloss.Width(line)+1+lipgloss.Width(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
