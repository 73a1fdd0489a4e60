package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// Results of async requests carry the ViewID of the view instance that
// issued them. Update drops a result whose ViewID is no longer current.

// TrendingLoadedMsg carries the trending list for the home view
type TrendingLoadedMsg struct {
	ViewID int
	Movies []domain.Movie
	OK     bool
}

// SearchResultsMsg carries the results of a submitted search
type SearchResultsMsg struct {
	ViewID int
	Query  string
	Movies []domain.Movie
	OK     bool
}

// MovieLoadedMsg carries the details view movie; nil on failure
type MovieLoadedMsg struct {
	ViewID int
	Movie  *domain.Movie
}

// CastLoadedMsg carries the details view cast
type CastLoadedMsg struct {
	ViewID int
	Cast   []domain.CastMember
}

// TrailerLoadedMsg carries the details view trailer; nil when none
type TrailerLoadedMsg struct {
	ViewID  int
	Trailer *domain.Trailer
}

// NavigateMsg switches to another route
type NavigateMsg struct {
	Route Route
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
