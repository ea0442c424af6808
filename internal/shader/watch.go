package shader

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports the names of programs whose shader files changed on
// disk. Changes are coalesced per program until the consumer drains them,
// so a render loop can poll Pending once per frame without blocking.
type Watcher struct {
	fs     *fsnotify.Watcher
	logger *slog.Logger
	notify chan struct{}

	mu      sync.Mutex
	pending map[string]struct{}

	done chan struct{}
}

// Watch starts watching dir until ctx is cancelled or Close is called.
func Watch(ctx context.Context, dir string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader: creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("shader: watching %s: %w", dir, err)
	}
	w := &Watcher{
		fs:      fw,
		logger:  logger.With("area", "shader-watch", "dir", dir),
		notify:  make(chan struct{}, 1),
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	go w.loop(ctx)
	return w, nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name, ok := ProgramName(ev.Name)
			if !ok {
				continue
			}
			w.logger.Debug("shader changed", "file", ev.Name, "program", name)
			w.mu.Lock()
			w.pending[name] = struct{}{}
			w.mu.Unlock()
			select {
			case w.notify <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

// Changed fires after at least one program became pending.
func (w *Watcher) Changed() <-chan struct{} {
	return w.notify
}

// Pending returns, sorted, and clears the set of changed programs.
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	names := make([]string, 0, len(w.pending))
	for name := range w.pending {
		names = append(names, name)
	}
	clear(w.pending)
	slices.Sort(names)
	return names
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
