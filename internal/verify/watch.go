package verify

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces bursts of filesystem events (editors often
// write several per save) into a single re-run.
const defaultDebounce = 300 * time.Millisecond

// skipDirs are never watched.
var skipDirs = map[string]bool{
	".git":         true,
	".hooksmith":   true,
	"node_modules": true,
}

// Watch invokes fn whenever a file under root matching one of the
// doublestar globs changes. It blocks until ctx is done. Directories
// created while watching are picked up.
func Watch(ctx context.Context, root string, globs []string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close() //nolint:errcheck // best-effort close on shutdown

	if err := addDirs(watcher, root); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addDirs(watcher, event.Name)
				}
			}
			if !matchesAny(root, event.Name, globs) {
				continue
			}
			// Debounce: (re)arm the timer, fire once it settles.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(defaultDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			fn()

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient (e.g. a dir vanished mid-walk);
			// keep watching.
		}
	}
}

// addDirs registers dir and every subdirectory with the watcher,
// skipping VCS and state directories.
func addDirs(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries, keep walking
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirs[d.Name()] || (strings.HasPrefix(d.Name(), ".") && path != dir) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// matchesAny reports whether the event path, relative to root, matches
// any of the globs.
func matchesAny(root, path string, globs []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, glob := range globs {
		if ok, matchErr := doublestar.Match(glob, rel); matchErr == nil && ok {
			return true
		}
	}
	return false
}
