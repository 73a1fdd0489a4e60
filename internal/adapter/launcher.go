package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher hands trailer and homepage URLs to external programs
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // additional arguments for the player
	logger  *slog.Logger

	// start runs a command without waiting; lookPath checks availability.
	// Both are swapped out in tests.
	start    func(name string, args ...string) error
	lookPath func(name string) (string, error)
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", "vlc", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// players that can stream a video page URL directly
var players = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
	"vlc": {
		"darwin":  {{path: "vlc"}, {path: "open-a:VLC"}},
		"linux":   {{path: "vlc"}},
		"windows": {{path: "vlc"}},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "vlc"},
	"windows": {"mpv", "vlc"},
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		start:    startCommand,
		lookPath: exec.LookPath,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// PlayTrailer opens a video URL in the configured player, a detected
// player, or the system default handler, in that order.
func (l *Launcher) PlayTrailer(url string) error {
	// Tier 1: User configured a specific player
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		l.logger.Info("launching configured player", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}

	// Tier 2: Try candidate chain
	if name, err := l.detectAndLaunch(url); err == nil {
		l.logger.Info("launched with detected player", "player", name)
		return nil
	}

	// Tier 3: Fall back to system default
	l.logger.Info("no candidate players found, using system default")
	return l.OpenURL(url)
}

// detectAndLaunch tries candidate players in order
func (l *Launcher) detectAndLaunch(url string) (string, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"] // default
	}

	for _, name := range candidates {
		paths, ok := players[name][runtime.GOOS]
		if !ok {
			continue
		}
		for _, lp := range paths {
			var err error
			if app, isApp := strings.CutPrefix(lp.path, "open-a:"); isApp {
				args := append(append([]string{}, lp.openFlags...), "-a", app, url)
				err = l.start("open", args...)
			} else {
				if _, err = l.lookPath(lp.path); err == nil {
					err = l.start(lp.path, url)
				}
			}
			if err == nil {
				return name, nil
			}
			l.logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
		}
	}

	return "", fmt.Errorf("no candidate players found")
}

// OpenURL opens the URL using the system default handler
func (l *Launcher) OpenURL(url string) error {
	if url == "" {
		return fmt.Errorf("no url to open")
	}

	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{url}
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		name, args = "xdg-open", []string{url}
	}

	l.logger.Info("opening with system default", "os", runtime.GOOS, "url", url)
	return l.start(name, args...)
}
