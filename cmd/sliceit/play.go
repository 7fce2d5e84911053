package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sliceit/internal/audio"
	"github.com/vovakirdan/sliceit/internal/games/sliceit"
	"github.com/vovakirdan/sliceit/internal/platform/tui"
	"github.com/vovakirdan/sliceit/internal/registry"
	"github.com/vovakirdan/sliceit/internal/settings"
	"github.com/vovakirdan/sliceit/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode in the terminal",
	Long: `Start playing the specified mode in the terminal.

Controls:
  Mouse drag  - Slice
  P/Space     - Pause
  Esc/B       - Pause, then back
  R           - Restart (after game over)
  Ctrl+S      - Save a screenshot
  +/-         - Raise or lower the volume (saved to settings)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  sliceit play classic
  sliceit play zen --difficulty easy
  sliceit play arcade --mute
  sliceit play boss --config ./my-sliceit.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the flags shared by every command that starts runs.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	cmd.Flags().StringVar(&flagName, "name", "", "Name for high scores (default: $USER)")
}

// session holds what a local frontend needs for its lifetime.
type session struct {
	log      *log.Logger
	store    *storage.Store
	audio    *audio.SoundManager
	prefs    *settings.Manager
	player   string
	closeLog func()
}

// newSession loads settings, opens storage and audio, and applies the
// game flags. Failures degrade to running without the failed part.
func newSession() *session {
	logger, closeLog := setupLogger(false)
	s := &session{
		log:      logger,
		closeLog: closeLog,
		player:   flagName,
	}
	if s.player == "" {
		s.player = defaultPlayer()
	}

	s.prefs = settings.Open(logger.WithPrefix("settings"))
	prefs := s.prefs.Get()
	sliceit.SetConfigPath(flagConfig)
	sliceit.SetDifficultyPreset(flagDifficulty)
	sliceit.SetEffects(prefs.ParticleEffects, prefs.TrailEffect)

	s.store = openStore(logger)

	// Opened even when muted; the in-game volume keys unmute.
	if !flagMute {
		sm := audio.NewSoundManager(prefs.EffectiveVolume(), logger.WithPrefix("audio"))
		if err := sm.Initialize(); err == nil {
			s.audio = sm
		}
	}
	return s
}

func (s *session) services() tui.Services {
	return tui.Services{
		Store:    s.store,
		Audio:    s.audio,
		Settings: s.prefs,
		Player:   s.player,
		Log:      s.log,
	}
}

func (s *session) close() {
	if s.audio != nil {
		s.audio.Cleanup()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.Warn("could not close database", "err", err)
		}
	}
	s.closeLog()
}

// checkMode fails with a hint when mode is not registered.
func checkMode(mode string) error {
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'sliceit list' to see available modes)", mode)
	}
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := args[0]
	if err := checkMode(mode); err != nil {
		return err
	}

	s := newSession()
	defer s.close()

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if err := tui.Run(game, s.services(), terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
