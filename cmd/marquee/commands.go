package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search movies by title",
		Long: `Search movies by title. The results and query become the
current list and last search shown by the browser.

Examples:
  marquee search "The Matrix"
  marquee search --json dune`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			env, err := setup(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			movies, ok := env.catalog.Search(cmd.Context(), query)
			if !ok {
				return fmt.Errorf("search for %q failed", query)
			}
			if err := env.store.ApplySearch(query, movies); err != nil {
				env.logger.Warn("failed to persist last search", "error", err)
			}

			return printMovies(cmd.OutOrStdout(), opts, movies, "No movies found", env.store.IsFavorite)
		},
	}
}

func newTrendingCmd(opts *rootOptions) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List trending movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			svc := env.catalog
			if window != "" {
				if window != "day" && window != "week" {
					return fmt.Errorf("--window must be \"day\" or \"week\", got %q", window)
				}
				svc = service.NewCatalogService(env.client, window, env.logger)
			}

			movies, ok := svc.Trending(cmd.Context())
			if !ok {
				return fmt.Errorf("could not load trending movies")
			}
			return printMovies(cmd.OutOrStdout(), opts, movies, "No movies available", env.store.IsFavorite)
		},
	}

	cmd.Flags().StringVar(&window, "window", "", "Trending window: day or week (default from config)")
	return cmd
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show full details for a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}

			env, err := setup(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			details := env.catalog.Details(cmd.Context(), id)
			if details.Movie == nil {
				return fmt.Errorf("movie %d: %w", id, domain.ErrNotFound)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, details)
			}

			fmt.Fprintln(out, components.RenderDetails(*details.Movie, details.Cast, true, details.Trailer,
				env.store.IsFavorite(id), env.cfg.TMDB.ImageBaseURL, 100))
			return nil
		},
	}
}

func newFavoritesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or change favorite movies",
	}

	var match string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorite movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			movies := env.store.Favorites()
			if match != "" {
				movies = service.RankByTitle(movies, match)
			}

			empty := "You have no favorite movies yet."
			if match != "" {
				empty = fmt.Sprintf("No favorites match %q", match)
			}
			return printMovies(cmd.OutOrStdout(), opts, movies, empty, func(int64) bool { return true })
		},
	}
	listCmd.Flags().StringVar(&match, "match", "", "Only show favorites whose title matches, best first")

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add a movie to favorites, or remove it if present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}

			// Removing needs no network, so only adding requires a key
			env, err := setup(cmd, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			movie, ok := env.store.Favorite(id)
			if !ok {
				if !env.cfg.IsConfigured() {
					return fmt.Errorf("%w: needed to look up movie %d", domain.ErrNoAPIKey, id)
				}
				found := env.catalog.Movie(cmd.Context(), id)
				if found == nil {
					return fmt.Errorf("movie %d: %w", id, domain.ErrNotFound)
				}
				movie = *found
			}

			added, err := env.store.ToggleFavorite(movie)
			if err != nil {
				return fmt.Errorf("failed to save favorites: %w", err)
			}

			out := cmd.OutOrStdout()
			if added {
				fmt.Fprintf(out, "%s Added to favorites: %s\n", styles.HeartFull, movie.DisplayTitle())
			} else {
				fmt.Fprintf(out, "%s Removed from favorites: %s\n", styles.HeartEmpty, movie.DisplayTitle())
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd, toggleCmd)
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file and data directory locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", configPath(opts))
			fmt.Fprintf(out, "data:   %s\n", cfg.Storage.DataDir)
			fmt.Fprintf(out, "log:    %s\n", cfg.Logging.File)
			return nil
		},
	}

	cmd.AddCommand(pathCmd)
	return cmd
}

// configPath is the file the API key prompt saves to
func configPath(opts *rootOptions) string {
	if opts.configDir != "" {
		return filepath.Join(opts.configDir, "config.yaml")
	}
	return adapter.ConfigFilePath()
}

func parseMovieID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", s)
	}
	return id, nil
}

// printMovies writes one line per movie, or JSON with --json
func printMovies(out io.Writer, opts *rootOptions, movies []domain.Movie, empty string, isFavorite func(int64) bool) error {
	if opts.jsonOutput {
		return printJSON(out, movies)
	}

	if len(movies) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}

	for _, m := range movies {
		heart := " "
		if isFavorite(m.ID) {
			heart = styles.HeartFull
		}
		year := m.YearString()
		if year == "" {
			year = "----"
		}
		fmt.Fprintf(out, "%s %8d  %s  %s  %4.1f  %s votes\n",
			heart, m.ID, year, styles.Pad(styles.Truncate(m.Title, 40), 40),
			m.VoteAverage, humanize.Comma(int64(m.VoteCount)))
	}
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
