package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
	"github.com/vovakirdan/chuteworks/internal/platform/tui"
	"github.com/vovakirdan/chuteworks/internal/sim/levels"
	"github.com/vovakirdan/chuteworks/internal/storage"
)

// newLogger builds the process logger from --log-level and --log-file.
// Interactive commands pass quiet=true so nothing is written over the
// alternate screen unless a log file was requested.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "chuteworks",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadSimConfig loads --config and applies --preset.
func loadSimConfig() (config.SimConfig, error) {
	preset, ok := config.ParsePreset(flagPreset)
	if !ok {
		return config.SimConfig{}, fmt.Errorf("unknown preset %q (want easy, normal or hard)", flagPreset)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SimConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// loadLevels returns every level from --levels, or the built-in set.
func loadLevels() ([]levels.Level, error) {
	lvls, err := levels.NewLoader(flagLevels).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no levels found in %s", flagLevels)
	}
	return lvls, nil
}

// findLevel resolves a level argument: a path to a level file, or an ID.
func findLevel(arg string) (levels.Level, error) {
	if isFilePath(arg) {
		return levels.NewLoader(filepath.Dir(arg)).LoadFile(arg)
	}
	return levels.NewLoader(flagLevels).LoadByID(arg)
}

// applyTheme installs the --theme palette.
func applyTheme() error {
	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		return err
	}
	tui.SetTheme(theme)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the run history. Failure is reported and the game
// continues without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("run history disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
