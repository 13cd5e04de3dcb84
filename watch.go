package quill

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watch rebuilds the site whenever something under ContentDir or StaticDir
// changes, until ctx is cancelled. Bursts of events within the debounce
// window trigger a single rebuild. A failed rebuild is logged, not returned.
func (a *App) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range []string{a.Config.ContentDir, a.Config.StaticDir} {
		if err := addTree(watcher, dir); err != nil {
			return err
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			a.Logger.Debugf("watch: %s %s", event.Op, event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						a.Logger.Warnf("watch: %v", err)
					}
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, a.rebuild)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warnf("watch: %v", err)
		}
	}
}

func (a *App) rebuild() {
	a.Logger.Infof("watch: change detected, rebuilding")
	if _, err := a.Build(); err != nil {
		a.Logger.Errorf("watch: rebuild failed: %v", err)
	}
}

// addTree watches dir and every directory below it. A missing dir is skipped.
func addTree(w *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
