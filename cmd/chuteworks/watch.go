package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chuteworks/internal/platform/tui"
	"github.com/vovakirdan/chuteworks/internal/sim/levels"
)

// watchLevel feeds level file changes to the game until ctx is done.
// Changes that arrive while the game is busy replace the pending one.
func watchLevel(ctx context.Context, path string, logger *log.Logger) <-chan tui.LevelReloadMsg {
	ch := make(chan tui.LevelReloadMsg, 1)
	go func() {
		err := levels.Watch(ctx, path, func(lvl levels.Level, err error) {
			if err != nil {
				logger.Warn("level reload failed", "path", path, "err", err)
			} else {
				logger.Info("level reloaded", "path", path, "id", lvl.ID)
			}
			msg := tui.LevelReloadMsg{Level: lvl, Err: err}
			select {
			case ch <- msg:
			default:
				select {
				case <-ch:
				default:
				}
				select {
				case ch <- msg:
				default:
				}
			}
		})
		if err != nil {
			logger.Error("level watcher stopped", "path", path, "err", err)
		}
	}()
	return ch
}

func isFilePath(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	return ext == ".yaml" || ext == ".yml"
}
