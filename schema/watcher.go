package schema

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a schema file watcher.
type WatcherConfig struct {
	// Root is the directory holding schema definition files.
	Root string

	// Pattern is the doublestar pattern matching definition files
	// under Root. Defaults to DefaultPattern.
	Pattern string

	// DebounceDelay is how long to wait for more changes before
	// reloading. Defaults to 250ms.
	DebounceDelay time.Duration

	// Logger for watch events.
	Logger *slog.Logger
}

// ReloadEvent reports the outcome of one registry reload.
type ReloadEvent struct {
	// Schemas is the number of schemas registered on success.
	Schemas int

	// Err is the load failure, nil on success. The registry keeps its
	// previous contents on failure.
	Err error
}

// Watcher keeps a registry in sync with schema definition files on
// disk. File events are debounced; each settled batch triggers one
// reload, reported on Events.
type Watcher struct {
	config   WatcherConfig
	registry *Registry
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   bool

	events chan ReloadEvent
}

// NewWatcher creates a watcher that reloads the given registry.
func NewWatcher(registry *Registry, config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 250 * time.Millisecond
	}

	return &Watcher{
		config:   config,
		registry: registry,
		watcher:  fsw,
		logger:   logger,
		events:   make(chan ReloadEvent, 16),
	}, nil
}

// Events returns the channel of reload outcomes.
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.events
}

// Start performs an initial load, then begins watching Root for changes
// until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.config.Root); err != nil {
		return err
	}
	if err := w.reload(); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Schema watcher started",
		"root", w.config.Root,
		"pattern", w.config.Pattern,
		"debounce", w.config.DebounceDelay)
	return nil
}

// Stop stops the watcher and closes the events channel.
func (w *Watcher) Stop() error {
	close(w.events)
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if base := filepath.Base(path); strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	// New directories need their own watch before their files do.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	rel, err := filepath.Rel(w.config.Root, event.Name)
	if err != nil {
		return
	}
	matched, err := doublestar.Match(w.config.Pattern, filepath.ToSlash(rel))
	if err != nil || !matched {
		return
	}

	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
	w.logger.Debug("Schema file changed", "path", rel, "op", event.Op.String())
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	dirty := w.pending
	w.pending = false
	w.pendingMu.Unlock()
	if !dirty {
		return
	}

	err := w.reload()
	if err != nil {
		w.logger.Error("Schema reload failed", "error", err)
	}
}

// reload loads every matching definition file and registers the result,
// overwriting same-named schemas. Load failures leave the registry as it
// was.
func (w *Watcher) reload() error {
	schemas, err := LoadGlob(w.config.Root, w.config.Pattern)
	if err == nil {
		err = w.registry.LoadDefinitions(schemas)
	}

	event := ReloadEvent{Err: err}
	if err == nil {
		event.Schemas = len(schemas)
		w.logger.Info("Schemas reloaded", "count", len(schemas))
	}
	select {
	case w.events <- event:
	default:
		// Slow consumer; drop rather than block the watch loop.
	}
	return err
}
