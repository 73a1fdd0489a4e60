package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// promptInput is read by the first-run API key prompt
var promptInput = os.Stdin

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configDir  string
	ephemeral  bool
	jsonOutput bool
}

// appEnv is everything a command needs, wired from configuration
type appEnv struct {
	cfg      *adapter.Config
	logger   *slog.Logger
	kv       *store.LocalStore
	client   domain.Catalog
	store    *favorites.Store
	catalog  *service.CatalogService
	playback *service.PlaybackService
}

// Close releases the storage file lock
func (e *appEnv) Close() error {
	return e.kv.Close()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var openPath string

	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Browse, search and favorite movies from your terminal",
		Long: `marquee - a terminal movie explorer backed by The Movie Database

Run without arguments to start the interactive browser. Favorites and
your last search are kept in a local database between sessions.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, openPath)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "", "Config directory (default "+adapter.DefaultConfigDir()+")")
	cmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep favorites in memory only")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&openPath, "open", "", "Start at a route: /, /favorites or /movie/<id>")

	cmd.Version = version
	cmd.SetVersionTemplate("marquee {{.Version}}\n")

	cmd.AddCommand(
		newSearchCmd(opts),
		newTrendingCmd(opts),
		newInfoCmd(opts),
		newFavoritesCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// loadConfig reads the config from --config or the default locations
func loadConfig(opts *rootOptions) (*adapter.Config, error) {
	if opts.configDir != "" {
		return adapter.LoadConfigFrom(opts.configDir)
	}
	return adapter.LoadConfig()
}

// setup loads configuration and wires storage and services. When
// needKey is set and no API key is configured, the user is prompted for
// one on an interactive terminal.
func setup(cmd *cobra.Command, opts *rootOptions, needKey bool) (*appEnv, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	if needKey && !cfg.IsConfigured() {
		if err := runSetupFlow(cmd.OutOrStdout(), opts, cfg); err != nil {
			return nil, err
		}
	}

	dataDir := cfg.Storage.DataDir
	if opts.ephemeral {
		dataDir = ""
	}
	kv, err := store.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLogger(logger),
	)
	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	logger.Info("starting marquee", "version", version, "persistent", kv.Persistent())

	return &appEnv{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		client:   client,
		store:    favorites.New(kv, logger),
		catalog:  service.NewCatalogService(client, cfg.TMDB.TrendingWindow, logger),
		playback: service.NewPlaybackService(launcher, logger),
	}, nil
}

// runSetupFlow asks for the TMDB API key with hidden input and saves it
func runSetupFlow(out io.Writer, opts *rootOptions, cfg *adapter.Config) error {
	fd := int(promptInput.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("%w: set tmdb.api_key in %s or MARQUEE_TMDB_API_KEY", domain.ErrNoAPIKey, configPath(opts))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to Movie Explorer!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "An API key for The Movie Database is required.")
	fmt.Fprintln(out, "Create one at https://www.themoviedb.org/settings/api")
	fmt.Fprintln(out)

	for {
		fmt.Fprint(out, "API key: ")
		keyBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(out) // Add newline after hidden input
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}

		cfg.TMDB.APIKey = strings.TrimSpace(string(keyBytes))
		if cfg.IsConfigured() {
			break
		}
		fmt.Fprintln(out, "API key cannot be empty. Please try again.")
	}

	if err := saveConfig(opts, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "✓ Configuration saved to %s\n\n", configPath(opts))
	return nil
}

func saveConfig(opts *rootOptions, cfg *adapter.Config) error {
	if opts.configDir != "" {
		return adapter.SaveConfigTo(cfg, opts.configDir)
	}
	return adapter.SaveConfig(cfg)
}

// runTUI starts the interactive browser
func runTUI(cmd *cobra.Command, opts *rootOptions, openPath string) error {
	route := tui.HomeRoute()
	if openPath != "" {
		r, err := tui.ParseRoute(openPath)
		if err != nil {
			return err
		}
		route = r
	}

	env, err := setup(cmd, opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	model := tui.NewModel(env.store, env.catalog, env.playback, tui.Options{
		ImageBaseURL: env.cfg.TMDB.ImageBaseURL,
		GridColumns:  env.cfg.UI.GridColumns,
		Theme:        styles.ParseMode(env.cfg.UI.Theme),
		StartRoute:   route,
		Logger:       env.logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	env.logger.Info("starting TUI", "route", route.Path())

	if _, err := p.Run(); err != nil {
		env.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	env.logger.Info("shutting down")
	return nil
}
