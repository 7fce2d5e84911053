// sliceit is a slicing arcade game for the terminal and the desktop.
//
// Usage:
//
//	sliceit list                 - List game modes
//	sliceit play <mode>          - Play a mode in the terminal
//	sliceit gui <mode>           - Play a mode in a desktop window
//	sliceit menu                 - Pick modes, scores and achievements interactively
//	sliceit serve                - Start SSH server for remote play
//	sliceit scores <mode>        - Show high scores and run statistics
//	sliceit achievements         - Show unlocked achievements
//	sliceit settings             - Show or change player settings
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.sliceit/sliceit.db)
//	--log <path>    - Set log file path (default: ~/.sliceit/sliceit.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sliceit/internal/core"
	"github.com/vovakirdan/sliceit/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/sliceit/internal/games/sliceit"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sliceit",
	Short: "Slice It - slice falling objects with your mouse",
	Long: `Slice It is an arcade game: drag the mouse across falling books,
light bulbs and mugs to slice them. Avoid the bombs, chain combos and
catch power-ups.

Available commands:
  list          - Show all game modes
  play          - Play a mode in the terminal
  gui           - Play a mode in a desktop window
  menu          - Interactive mode picker
  serve         - Start SSH server for remote play
  scores        - View high scores
  achievements  - View achievements
  settings      - Show or change settings

Examples:
  sliceit list
  sliceit play classic
  sliceit gui boss
  sliceit menu
  sliceit serve --ssh :2222
  sliceit scores arcade`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sliceit/sliceit.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.sliceit/sliceit.log", "Path to the log file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(settingsCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// setupLogger installs the default logger. Full-screen frontends own the
// terminal, so they log to a file; toStderr is used by the server.
// The returned closer must be called on exit.
func setupLogger(toStderr bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closer := func() {}

	if !toStderr {
		w = io.Discard
		if path, err := expandHome(flagLogPath); err == nil && path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err == nil {
					w = f
					closer = func() { _ = f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sliceit",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return logger, closer
}

// openStore opens the database, or returns nil with a warning so the game
// still runs without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("running without persistence", "err", err)
		return nil
	}
	return store
}

// terminalConfig builds the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// defaultPlayer is the high-score name offered to the local player.
func defaultPlayer() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if name := strings.TrimSpace(os.Getenv(env)); name != "" {
			return name
		}
	}
	return "player"
}
