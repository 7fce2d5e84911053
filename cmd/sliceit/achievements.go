package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sliceit/internal/platform/tui"
	"github.com/vovakirdan/sliceit/internal/storage"
)

var flagResetAchievements bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievements",
	Long: `List every achievement and whether it has been unlocked.

Examples:
  sliceit achievements
  sliceit achievements --reset`,
	Args: cobra.NoArgs,
	RunE: runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVar(&flagResetAchievements, "reset", false, "Forget every unlocked achievement")
}

func runAchievements(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if flagResetAchievements {
		if err := store.ResetAchievements(); err != nil {
			return err
		}
		fmt.Println("Achievements reset.")
		return nil
	}

	rows, err := tui.LoadAchievementRows(store)
	if err != nil {
		return fmt.Errorf("loading achievements: %w", err)
	}

	unlocked := 0
	for _, r := range rows {
		if r.Unlocked {
			unlocked++
		}
	}
	fmt.Printf("Achievements %d/%d\n", unlocked, len(rows))
	fmt.Println()

	for _, r := range rows {
		mark := " "
		when := ""
		if r.Unlocked {
			mark = "*"
			when = "  (" + r.UnlockedAt + ")"
		}
		fmt.Printf("  [%s] %-20s %s%s\n", mark, r.Name, r.Description, when)
	}
	return nil
}
