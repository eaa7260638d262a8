package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-evaluates a document whenever it, or any file it reaches via
// extends/import, changes on disk.
type Watch struct {
	Source string `arg:"" help:"Document to watch" name:"source" type:"existingfile"`
}

// Run executes the watch command. It returns once ctx is canceled or the
// watcher fails to start or shuts down.
func (w *Watch) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	rootDir := filepath.Dir(w.Source)

	if err := w.evalAndRewatch(ctx, watcher, rootDir); err != nil {
		fmt.Fprintln(os.Stderr, "bconf:", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			fmt.Fprintln(os.Stderr, "bconf: watch error:", err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if err := w.evalAndRewatch(ctx, watcher, rootDir); err != nil {
				fmt.Fprintln(os.Stderr, "bconf:", err)
			}
		}
	}
}

// evalAndRewatch re-parses the root document, prints its value tree, and
// resets the watch list to exactly the files touched by this parse (the set
// of extends/import targets can change between runs).
func (w *Watch) evalAndRewatch(ctx context.Context, watcher *fsnotify.Watcher, rootDir string) error {
	text, err := os.ReadFile(w.Source)
	if err != nil {
		return err
	}

	result, touched, err := evaluate(ctx, string(text), rootDir)

	w.resetWatches(watcher, append([]string{w.Source}, touched...))

	if err != nil {
		return err
	}

	fmt.Print(printTree("data", result.Data))

	return nil
}

func (w *Watch) resetWatches(watcher *fsnotify.Watcher, paths []string) {
	for _, p := range watcher.WatchList() {
		_ = watcher.Remove(p)
	}

	seen := make(map[string]bool, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}

		seen[abs] = true
		_ = watcher.Add(abs)
	}
}
