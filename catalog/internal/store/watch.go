package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/brickset/brickset/catalog/internal/source"
)

// Watch reloads src whenever its backing file changes and swaps the new
// snapshot into live. onReload, if non-nil, is called after every reload
// attempt with the new Store (nil on failure) and the load error.
// It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file, so a dataset
// replaced by rename keeps being followed. A failed reload is logged and
// the previous snapshot stays current.
func Watch(ctx context.Context, src source.Source, live *Live, onReload func(*Store, error)) error {
	file, ok := source.Underlying(src).(*source.File)
	if !ok {
		return fmt.Errorf("store: watch: %q is not a file resource", src.Name())
	}
	path, err := filepath.Abs(file.Path())
	if err != nil {
		return fmt.Errorf("store: watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("store: watch %q: %w", filepath.Dir(path), err)
	}

	slog.Info("store: watching dataset for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !datasetChanged(event, path) {
				continue
			}

			st, err := Load(ctx, src)
			if onReload != nil {
				onReload(st, err)
			}
			if err != nil {
				slog.Error("store: reload failed, keeping previous snapshot",
					"path", path, "err", err)
				continue
			}
			live.Replace(st)
			slog.Info("store: dataset reloaded", "path", path, "records", st.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("store: watcher error", "err", err)
		}
	}
}

// datasetChanged reports whether event leaves new content at path: an
// in-place write, or a file created or renamed onto it.
func datasetChanged(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
