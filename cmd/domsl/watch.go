package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"domsl/internal/compile"
	"domsl/internal/gen"
)

// settle is how long a directory must stay quiet before it is regenerated.
// Editors often write a file in several steps.
const settle = 100 * time.Millisecond

// watch regenerates a directory whenever one of its markup files changes,
// until ctx is done.
func watch(ctx context.Context, c *compile.Compiler, dirs []string, ext string, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("domsl: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("domsl: watching %s: %w", dir, err)
		}
	}

	log.Info("watching", "dirs", len(dirs))

	pending := map[string]bool{}
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevant(event, ext) {
				continue
			}

			// The output of a deleted source goes with it.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if err := os.Remove(gen.OutputName(event.Name)); err != nil && !errors.Is(err, os.ErrNotExist) {
					log.Error("removing output", "err", err)
				}
			}

			pending[filepath.Dir(event.Name)] = true
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Error("watcher failed", "err", err)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for dir := range pending {
				changed = append(changed, dir)
			}

			slices.Sort(changed)
			clear(pending)

			for _, dir := range changed {
				if err := generateDir(ctx, c, dir, log); err != nil {
					log.Error("generation failed", "dir", dir, "err", err)
				}
			}
		}
	}
}

func relevant(event fsnotify.Event, ext string) bool {
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	return event.Op&ops != 0 && isMarkup(filepath.Base(event.Name), ext)
}
