package paramfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path and calls onChange with the reloaded file each time it
// is saved. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file, so saves that write a
// temp file and rename it over path keep being seen.
//
// A reload that fails to parse is passed to onError (when non-nil) and the
// watch continues; onChange is not called for it.
func Watch(ctx context.Context, path string, onChange func(*ParamsFile), onError func(error)) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return err
	}

	slog.Debug("paramfile: watching for changes", "path", path, "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			// A rename onto path arrives as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			f, err := Load(path)
			if err != nil {
				slog.Debug("paramfile: reload failed", "path", path, "err", err)
				if onError != nil {
					onError(err)
				}
				continue
			}

			onChange(f)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("paramfile: watcher error", "err", err)
		}
	}
}
