// chuteworks is a terminal block-sorting game: drag falling figures into the
// matching chutes, cut them with the saw and spend fuel on tools.
//
// Usage:
//
//	chuteworks list              - List levels and figure shapes
//	chuteworks play [level]      - Play a level (no level opens the picker)
//	chuteworks menu              - Start menu to pick levels interactively
//	chuteworks serve             - Start SSH server for remote play
//	chuteworks runs [level]      - Show run history for a level
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible spawns
//	--db <path>         - Set database path (default: ~/.chuteworks/runs.db)
//	--config <path>     - Simulation tuning YAML
//	--preset <name>     - Economy preset: easy, normal, hard
//	--levels <dir>      - Load levels from a directory instead of the built-in set
//	--theme <name>      - Color theme
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLevels   string
	flagTheme    string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chuteworks",
	Short: "Chuteworks - sort falling blocks into chutes in your terminal",
	Long: `Chuteworks is a terminal game about routing falling figures.

Drag figures with the mouse into the chute of their color, cut them on the
saw, rotate and transmute them with tools, and spend research on upgrades.

Available commands:
  list     - Show all levels and figure shapes
  play     - Play a specific level directly
  menu     - Interactive level picker menu
  serve    - Start SSH server for remote play
  runs     - View run history

Examples:
  chuteworks list
  chuteworks play intro
  chuteworks play ./my-level.yaml --watch
  chuteworks menu --preset easy
  chuteworks serve --ssh :2222
  chuteworks runs intro`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.chuteworks/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Economy preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
