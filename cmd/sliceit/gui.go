package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sliceit/internal/games/sliceit"
	"github.com/vovakirdan/sliceit/internal/platform/gui"
)

var flagScale float64

var guiCmd = &cobra.Command{
	Use:   "gui <mode>",
	Short: "Play a mode in a desktop window",
	Long: `Open a desktop window and play the specified mode.

Controls:
  Mouse/touch drag - Slice
  P/Space/Esc      - Pause
  Esc (paused)     - Quit
  R                - Restart (after game over)
  Q                - Quit

Examples:
  sliceit gui classic
  sliceit gui boss --scale 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: runGUI,
}

func init() {
	addPlayFlags(guiCmd)
	guiCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the playfield")
}

func runGUI(_ *cobra.Command, args []string) error {
	mode := args[0]
	if err := checkMode(mode); err != nil {
		return err
	}

	s := newSession()
	defer s.close()

	err := gui.Run(sliceit.New(mode), gui.Options{
		Store:    s.store,
		Audio:    s.audio,
		Player:   s.player,
		Log:      s.log,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Scale:    flagScale,
	})
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
