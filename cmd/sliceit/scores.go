package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sliceit/internal/platform/tui"
	"github.com/vovakirdan/sliceit/internal/registry"
	"github.com/vovakirdan/sliceit/internal/storage"
)

var (
	flagRuns        int
	flagInteractive bool
	flagClear       bool
	flagRunID       string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores and run statistics for a mode.
Without a mode, statistics for every mode are shown.

Examples:
  sliceit scores classic
  sliceit scores arcade --runs 5
  sliceit scores --run 0b7c6f1e-3d2a-4c59-9a51-2f1e8d7c4b30
  sliceit scores zen --clear
  sliceit scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 0, "Also list this many recent runs")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the high scores of the given mode")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show one recorded run by id")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if flagRunID != "" {
		return showRun(os.Stdout, store, flagRunID)
	}

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a mode")
		}
		return printAllStats(store)
	}

	mode := args[0]
	if err := checkMode(mode); err != nil {
		return err
	}
	if flagClear {
		return clearScores(os.Stdout, store, mode)
	}
	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	scores, err := store.TopScores(mode, storage.MaxScores)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sliceit play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-10d  %s\n", i+1, entry.Name, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load statistics: %v\n", err)
	} else {
		fmt.Println()
		printStats(stats)
	}

	if flagRuns > 0 {
		return printRecentRuns(store, mode, flagRuns)
	}
	return nil
}

func printStats(s *storage.GameStats) {
	fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best combo: x%d  Sliced: %d  Played: %s\n",
		s.HighScore, s.GamesCount, s.AvgScore, s.BestCombo, s.TotalSliced, s.PlayTime.Round(time.Second))
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving statistics: %w", err)
	}

	fmt.Println("Statistics")
	fmt.Println()
	for _, info := range registry.List() {
		fmt.Printf("%s\n  ", info.Title)
		stats, ok := all[info.ID]
		if !ok || stats == nil || stats.GamesCount == 0 {
			fmt.Println("No runs yet.")
			continue
		}
		printStats(stats)
	}

	if flagRuns > 0 {
		return printRecentRuns(store, "", flagRuns)
	}
	return nil
}

func printRecentRuns(store *storage.Store, mode string, limit int) error {
	runs, err := store.RecentRuns(mode, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println()
	fmt.Println("Recent runs")
	if len(runs) == 0 {
		fmt.Println("  none")
		return nil
	}
	fmt.Printf("  %-16s  %-8s  %-12s  %-8s  %-6s  %-16s  %-9s  %s\n", "Date", "Mode", "Player", "Score", "Combo", "End", "Duration", "Id")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-8s  %-12s  %-8d  x%-5d  %-16s  %-9s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.GameID, r.Player, r.Score,
			r.MaxCombo, r.EndReason, r.Duration.Round(time.Second), r.ID)
	}
	return nil
}

func showRun(w io.Writer, store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}
	if r == nil {
		return fmt.Errorf("no run with id %q", id)
	}

	fmt.Fprintf(w, "Run %s\n\n", r.ID)
	fmt.Fprintf(w, "  Mode:      %s\n", r.GameID)
	fmt.Fprintf(w, "  Player:    %s\n", r.Player)
	fmt.Fprintf(w, "  Date:      %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  Score:     %d\n", r.Score)
	fmt.Fprintf(w, "  Max combo: x%d\n", r.MaxCombo)
	fmt.Fprintf(w, "  Sliced:    %d\n", r.ObjectsSliced)
	fmt.Fprintf(w, "  Level:     %d\n", r.Level)
	fmt.Fprintf(w, "  Duration:  %s\n", r.Duration.Round(time.Second))
	fmt.Fprintf(w, "  Ended by:  %s\n", r.EndReason)
	return nil
}

func clearScores(w io.Writer, store *storage.Store, mode string) error {
	if err := store.ClearScores(mode); err != nil {
		return fmt.Errorf("clearing scores: %w", err)
	}
	fmt.Fprintf(w, "High scores for %s cleared. Run history is kept.\n", mode)
	return nil
}
