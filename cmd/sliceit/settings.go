package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sliceit/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change player settings",
	Long: `Show the saved player settings, or change them.

Keys:
  volume     - Sound effect volume, 0.0 to 1.0
  particles  - Particle effects: low, medium, high
  trail      - Blade trail: true, false
  muted      - Mute all sound: true, false

Examples:
  sliceit settings
  sliceit settings set volume 0.4
  sliceit settings set particles high
  sliceit settings reset`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func openSettings() (*settings.Manager, func()) {
	logger, closeLog := setupLogger(false)
	return settings.Open(logger.WithPrefix("settings")), closeLog
}

func printSettings(m *settings.Manager) {
	s := m.Get()
	fmt.Printf("  volume     %.2f\n", s.SfxVolume)
	fmt.Printf("  particles  %s\n", s.ParticleEffects)
	fmt.Printf("  trail      %t\n", s.TrailEffect)
	fmt.Printf("  muted      %t\n", s.Muted)
	if !m.Persistent() {
		fmt.Println()
		fmt.Println("Warning: settings storage is unavailable; changes will not be kept.")
	}
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	m, closeLog := openSettings()
	defer closeLog()

	fmt.Println("Settings")
	printSettings(m)
	return nil
}

func runSettingsSet(_ *cobra.Command, args []string) error {
	m, closeLog := openSettings()
	defer closeLog()

	if err := m.Set(strings.ToLower(args[0]), args[1]); err != nil {
		return fmt.Errorf("%w (keys: %s)", err, strings.Join(settings.Keys(), ", "))
	}
	if err := m.Save(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	printSettings(m)
	return nil
}

func runSettingsReset(_ *cobra.Command, _ []string) error {
	m, closeLog := openSettings()
	defer closeLog()

	m.Reset()
	if err := m.Save(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	printSettings(m)
	return nil
}
