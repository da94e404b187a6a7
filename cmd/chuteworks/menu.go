package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chuteworks/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start chuteworks with a level picker menu",
	Long: `Start chuteworks in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a level ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Run history
  Q            - Quit

Examples:
  chuteworks menu
  chuteworks menu --fps 30
  chuteworks menu --levels ./levels --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if err := applyTheme(); err != nil {
		fail("%v", err)
	}

	simCfg, err := loadSimConfig()
	if err != nil {
		fail("%v", err)
	}

	lvls, err := loadLevels()
	if err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(lvls, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRuns {
			goBack, runsErr := tui.RunRuns(lvls, store, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.Level == nil {
			break
		}

		// Fresh spawn sequence per run unless pinned with --seed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		err = tui.Run(tui.GameOptions{
			Level:   *menuResult.Level,
			Sim:     simCfg,
			Runtime: cfg,
			Store:   store,
			Logger:  logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
