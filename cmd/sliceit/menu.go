package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sliceit/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or w/s to navigate, Enter to select a mode.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/w/s  - Navigate menu
  Enter        - Select mode
  Tab          - High scores
  A            - Achievements
  Q            - Quit

Examples:
  sliceit menu
  sliceit menu --fps 30
  sliceit menu --db ./sliceit.db`,
	RunE: runMenu,
}

func init() {
	addPlayFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	s := newSession()
	defer s.close()

	if err := tui.RunSession(s.services(), terminalConfig()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
