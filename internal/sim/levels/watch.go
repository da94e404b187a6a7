package levels

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the level file at path whenever it changes and passes the
// result to onChange. It blocks until ctx is done.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temp file over the original are still seen.
func Watch(ctx context.Context, path string, onChange func(Level, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("levels: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("levels: cannot resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("levels: cannot watch %s: %w", filepath.Dir(abs), err)
	}

	loader := NewLoader(filepath.Dir(abs))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				onChange(loader.LoadFile(abs))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(Level{}, fmt.Errorf("levels: watch error: %w", err))
		}
	}
}
