package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// TrendingCmd fetches the trending list for a home view instance
func TrendingCmd(svc *service.CatalogService, viewID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		movies, ok := svc.Trending(ctx)
		return TrendingLoadedMsg{ViewID: viewID, Movies: movies, OK: ok}
	}
}

// SearchCmd runs a title search for a home view instance
func SearchCmd(svc *service.CatalogService, viewID int, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		movies, ok := svc.Search(ctx, query)
		return SearchResultsMsg{ViewID: viewID, Query: query, Movies: movies, OK: ok}
	}
}

// LoadDetailsCmd issues the three independent details requests. Each
// result arrives as its own message so one cannot hold up another.
func LoadDetailsCmd(svc *service.CatalogService, viewID int, id int64) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return MovieLoadedMsg{ViewID: viewID, Movie: svc.Movie(ctx, id)}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return CastLoadedMsg{ViewID: viewID, Cast: svc.Cast(ctx, id)}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return TrailerLoadedMsg{ViewID: viewID, Trailer: svc.Trailer(ctx, id)}
		},
	)
}

// PlayTrailerCmd hands the trailer to an external player
func PlayTrailerCmd(svc *service.PlaybackService, title string, trailer *domain.Trailer) tea.Cmd {
	return func() tea.Msg {
		if err := svc.PlayTrailer(title, trailer); err != nil {
			if errors.Is(err, service.ErrNoTrailer) {
				return StatusMsg{Message: "No trailer available"}
			}
			return StatusMsg{Message: "Could not launch player: " + err.Error(), IsError: true}
		}
		return StatusMsg{Message: "Playing trailer"}
	}
}

// OpenHomepageCmd opens the movie homepage in the browser
func OpenHomepageCmd(svc *service.PlaybackService, movie *domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if err := svc.OpenHomepage(movie); err != nil {
			if errors.Is(err, service.ErrNoHomepage) {
				return StatusMsg{Message: "No homepage available"}
			}
			return StatusMsg{Message: "Could not open browser: " + err.Error(), IsError: true}
		}
		return StatusMsg{Message: "Opened homepage"}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
