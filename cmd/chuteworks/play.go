package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chuteworks/internal/platform/tui"
	"github.com/vovakirdan/chuteworks/internal/sim/levels"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level. The argument is a level ID or a path to a
level YAML file. Without an argument the level picker opens first.

Controls:
  Mouse drag - Move the figure under the pointer
  R          - Rotate the figure under the pointer (on the rotator)
  T          - Transmute the figure under the pointer (on the transmuter)
  U          - Open the upgrade picker when research is complete
  P          - Pause
  Ctrl+R     - Restart the level
  Esc/B      - Back
  Q/Ctrl+C   - Quit

Presets:
  easy   - Double starting fuel, research twice as fast
  normal - Values from the config file
  hard   - Half starting fuel, research twice as slow

Examples:
  chuteworks play
  chuteworks play intro
  chuteworks play saw --preset hard
  chuteworks play ./levels/mine.yaml --watch
  chuteworks play intro --config ./my-sim.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level file when it changes")
}

func runPlay(_ *cobra.Command, args []string) {
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

	cfg := runtimeConfig()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		lvls, err := loadLevels()
		if err != nil {
			fail("%v", err)
		}
		err = tui.RunSession(tui.SessionOptions{
			Levels:  lvls,
			Sim:     simCfg,
			Runtime: cfg,
			Store:   store,
			Logger:  logger,
		})
		if err != nil {
			fail("running session: %v", err)
		}
		return
	}

	level, err := findLevel(args[0])
	if err != nil {
		if errors.Is(err, levels.ErrNotFound) {
			fail("unknown level %q\nRun 'chuteworks list' to see available levels.", args[0])
		}
		fail("%v", err)
	}

	opts := tui.GameOptions{
		Level:   level,
		Sim:     simCfg,
		Runtime: cfg,
		Store:   store,
		Logger:  logger,
	}

	if flagWatch {
		if level.FilePath == "" || !isFilePath(args[0]) {
			fail("--watch needs a level file path, not a built-in level ID")
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		opts.Reloads = watchLevel(ctx, level.FilePath, logger)
	}

	if err := tui.Run(opts); err != nil {
		fail("running level: %v", err)
	}
}
