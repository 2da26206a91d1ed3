package config

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// ReloadHandler receives the result of a reload. Exactly one of settings
// and err is non-nil.
type ReloadHandler func(settings *Settings, err error)

// Watcher reloads a Config whenever its file changes.
//
// The file's directory is watched rather than the file so that editors that
// save by rename are followed.
type Watcher struct {
	cfg      *Config
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the settle time after the last change.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(logger *log.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a watcher for cfg's file.
func NewWatcher(cfg *Config, opts ...WatcherOption) (*Watcher, error) {
	if cfg.Path() == "" {
		return nil, ErrNoPath
	}
	path, err := filepath.Abs(cfg.Path())
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		cfg:      cfg,
		path:     path,
		fsw:      fsw,
		debounce: DefaultDebounce,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers reloads to handler until ctx is done. It closes the
// underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context, handler ReloadHandler) error {
	defer w.fsw.Close()

	// reload is nil until a change arms it.
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("config changed", "path", ev.Name, "op", ev.Op.String())
			reload = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "err", err)

		case <-reload:
			reload = nil
			settings, err := w.cfg.Load()
			if err != nil {
				w.logger.Error("config reload failed", "err", err)
				handler(nil, err)
				continue
			}
			w.logger.Info("config reloaded", "path", w.path)
			handler(settings, nil)
		}
	}
}

// Close stops watching. It is only needed when Run is never called.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}
