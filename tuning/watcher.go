package tuning

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher acts as a live tuning authority backed by a table file. It
// publishes the file into a [Live] provider and republishes it whenever the
// file is written. Removing the file disconnects the authority; a file that
// fails to parse leaves the previous snapshot in place.
type Watcher struct {
	path    string
	live    *Live
	logger  *zap.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher loads path into live and starts watching it. The parent
// directory is watched so that editors replacing the file are followed.
func NewWatcher(path string, live *Live, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("tuning: resolve %q: %w", path, err)
	}

	snap, err := LoadFile(abs)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("tuning: create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("tuning: watch %q: %w", abs, err)
	}

	live.PublishSnapshot(snap)
	logger.Info("tuning table loaded", zap.String("path", abs), zap.Int("usable", snap.Filtered.Usable()))

	return &Watcher{path: abs, live: live, logger: logger, watcher: fw}, nil
}

// Path returns the absolute path of the watched table file.
func (w *Watcher) Path() string { return w.path }

// Run processes file events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("tuning watcher error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.live.Disconnect()
		w.logger.Info("tuning table removed, authority lost", zap.String("path", w.path))
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
		w.reload()
	}
}

func (w *Watcher) reload() {
	snap, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("tuning table reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.live.PublishSnapshot(snap)
	w.logger.Info("tuning table reloaded", zap.String("path", w.path), zap.Int("usable", snap.Filtered.Usable()))
}

// Close stops watching. Run returns once the event channels are closed.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
