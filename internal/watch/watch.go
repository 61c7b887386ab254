// Package watch provides file system watching with debouncing so the
// analyzer can re-run when docs or sources change.
package watch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher monitors directories for markdown changes and coalesces
// bursts of events into single change signals.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	roots     []string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
	log       zerolog.Logger
}

// Config holds watcher options.
type Config struct {
	Roots       []string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(roots ...string) Config {
	return Config{
		Roots:       roots,
		DebounceDur: 1 * time.Second,
	}
}

// New creates a watcher over the configured roots.
func New(cfg Config, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		roots:     cfg.Roots,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		log:       log,
	}, nil
}

// Start registers the watch roots and begins processing. Returns a
// channel that receives a signal after each debounced change burst.
// fsnotify does not recurse, so every subdirectory is added explicitly.
func (w *Watcher) Start() (<-chan struct{}, error) {
	for _, root := range w.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	go w.loop()
	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timerC(timer):
			if pending {
				// Non-blocking send: drop if a signal is already queued.
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// relevant filters to content and config changes. Editors produce
// noisy chmod events that should not trigger a re-run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") && base != ".nav.yml" {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".md", ".yml", ".yaml", ".csv", ".py", ".go", ".json":
		return true
	}
	// Directory creation needs a signal so new trees get re-registered
	// on the next run.
	return event.Op&fsnotify.Create != 0 && filepath.Ext(base) == ""
}
