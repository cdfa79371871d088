package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives a release path once it has settled.
type Handler func(ctx context.Context, path string)

// Watcher observes one directory for incoming release folders.
type Watcher struct {
	dir     string
	settle  time.Duration
	logger  *slog.Logger
	handler Handler

	mu      sync.Mutex
	pending map[string]time.Time
}

// New builds a watcher over dir. Paths are reported to handler after
// settle elapses without further events.
func New(dir string, settle time.Duration, logger *slog.Logger, handler Handler) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("watch: directory is required")
	}
	if handler == nil {
		return nil, errors.New("watch: handler is required")
	}
	if settle <= 0 {
		settle = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		dir:     dir,
		settle:  settle,
		logger:  logger.With("component", "watch"),
		handler: handler,
		pending: make(map[string]time.Time),
	}, nil
}

// Run blocks until ctx is cancelled, dispatching settled paths as they
// appear. Entries already present in the directory are picked up on
// start so a restart does not strand releases.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching directory", "dir", w.dir, "settle", w.settle)

	if err := w.seedExisting(); err != nil {
		return err
	}

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			w.observe(event)
		case watchErr, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", watchErr)
		case <-ticker.C:
			for _, path := range w.takeSettled(time.Now()) {
				w.logger.Info("release settled", "path", path)
				w.handler(ctx, path)
			}
		}
	}
}

func (w *Watcher) seedExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, entry := range entries {
		if !entry.IsDir() || hidden(entry.Name()) {
			continue
		}
		w.pending[filepath.Join(w.dir, entry.Name())] = now
	}
	return nil
}

// observe maps an event to the top-level release folder it belongs to
// and refreshes that folder's settle deadline.
func (w *Watcher) observe(event fsnotify.Event) {
	root := w.releaseRoot(event.Name)
	if root == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if event.Op&fsnotify.Remove != 0 && event.Name == root {
		delete(w.pending, root)
		return
	}
	w.pending[root] = time.Now()
}

func (w *Watcher) releaseRoot(path string) string {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	top := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	if hidden(top) {
		return ""
	}
	return filepath.Join(w.dir, top)
}

func (w *Watcher) takeSettled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var settled []string
	for path, last := range w.pending {
		if now.Sub(last) < w.settle {
			continue
		}
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			delete(w.pending, path)
			continue
		}
		settled = append(settled, path)
		delete(w.pending, path)
	}
	return settled
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
