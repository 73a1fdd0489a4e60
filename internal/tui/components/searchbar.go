package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchBarLabel labels the search input
const SearchBarLabel = "Search Movies"

// SearchBarHeight is the number of lines the search bar occupies
const SearchBarHeight = 2

// SubmitSearchMsg is emitted when the user submits a query
type SubmitSearchMsg struct {
	Query string
}

// SearchBar is the title search input
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar creates a new search bar seeded with the last search term
func NewSearchBar(initial string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "title..."
	ti.Prompt = "› "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.CharLimit = 200
	ti.SetValue(initial)

	return SearchBar{input: ti}
}

// Focus gives the input keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current query text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// SetWidth sets the rendered width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-len(SearchBarLabel)-8, 10)
}

// Update handles messages while focused. Enter submits non-blank input.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	if !s.input.Focused() {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchBarKeys.Submit):
			query := strings.TrimSpace(s.input.Value())
			if query == "" {
				return s, nil
			}
			s.input.Blur()
			return s, func() tea.Msg { return SubmitSearchMsg{Query: query} }
		case key.Matches(msg, SearchBarKeys.Cancel):
			s.input.Blur()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the component
func (s SearchBar) View() string {
	label := styles.SearchLabelStyle.Render(SearchBarLabel)
	hint := ""
	if !s.input.Focused() {
		hint = styles.DimStyle.Render("  (s to search)")
	}
	return label + " " + s.input.View() + hint + "\n"
}
