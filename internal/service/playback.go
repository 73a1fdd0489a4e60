package service

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// ErrNoTrailer is returned when there is nothing to play
var ErrNoTrailer = errors.New("no trailer available")

// ErrNoHomepage is returned when the movie has no homepage
var ErrNoHomepage = errors.New("no homepage available")

// launcher abstracts external player/browser launching (consumer-defined interface)
type launcher interface {
	PlayTrailer(url string) error
	OpenURL(url string) error
}

// PlaybackService hands trailers and homepages to external programs
type PlaybackService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		logger:   logger,
	}
}

// PlayTrailer opens the trailer in a video player
func (s *PlaybackService) PlayTrailer(movieTitle string, trailer *domain.Trailer) error {
	if trailer == nil || trailer.Key == "" {
		return ErrNoTrailer
	}

	s.logger.Info("launching trailer", "title", movieTitle, "key", trailer.Key)
	if err := s.launcher.PlayTrailer(trailer.URL()); err != nil {
		s.logger.Error("failed to launch trailer", "error", err, "key", trailer.Key)
		return err
	}
	return nil
}

// OpenHomepage opens the movie homepage in the default browser
func (s *PlaybackService) OpenHomepage(movie *domain.Movie) error {
	if movie == nil || movie.Homepage == "" {
		return ErrNoHomepage
	}

	s.logger.Info("opening homepage", "title", movie.Title, "url", movie.Homepage)
	return s.launcher.OpenURL(movie.Homepage)
}
