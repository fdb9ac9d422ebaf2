// Package watch converts PDFs as they appear in a directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/CarlosRamz1/pdf-converter/internal/catalog"
)

// DefaultDebounce is how long a file must stay quiet before it is handled.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called once a PDF has settled. Calls are serialized.
type Handler func(ctx context.Context, path string)

// Options configures a Watcher.
type Options struct {
	Dir      string
	Debounce time.Duration
	Existing bool // also handle PDFs already in Dir at start
	Logger   *slog.Logger
}

// Watcher feeds settled PDFs from a directory to a Handler.
type Watcher struct {
	dir      string
	debounce time.Duration
	existing bool
	handler  Handler
	logger   *slog.Logger
	started  chan struct{}
}

// New creates a Watcher.
func New(opts Options, handler Handler) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Watcher{
		dir:      opts.Dir,
		debounce: opts.Debounce,
		existing: opts.Existing,
		handler:  handler,
		logger:   opts.Logger,
		started:  make(chan struct{}),
	}
}

// Started is closed once the directory is being watched.
func (w *Watcher) Started() <-chan struct{} {
	return w.started
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	close(w.started)
	w.logger.Info("watching for PDFs", "dir", w.dir, "debounce", w.debounce)

	if w.existing {
		paths, err := catalog.Find(w.dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			if ctx.Err() != nil {
				return nil
			}
			w.handler(ctx, p)
		}
	}

	// Handler calls run on one worker so the event loop keeps draining
	// events while a conversion is in progress.
	work := make(chan string)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		for path := range work {
			w.handler(ctx, path)
		}
	}()
	defer func() {
		close(work)
		<-workerDone
	}()

	// Every event starts a new timer under a new generation. A timer that
	// already fired may still be waiting to send, so only the send matching
	// the path's current generation counts.
	pending := make(map[string]*settle)
	ready := make(chan settled)
	defer func() {
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	// Settled paths wait here until the worker is free. A path that
	// settles again before its turn is not queued twice.
	var queue []string
	queued := make(map[string]bool)

	for {
		var next chan string
		var head string
		if len(queue) > 0 {
			next, head = work, queue[0]
		}

		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !catalog.IsPDF(ev.Name) || !(ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)) {
				continue
			}
			path := ev.Name
			p, ok := pending[path]
			if !ok {
				p = &settle{}
				pending[path] = p
			} else {
				p.timer.Stop()
			}
			p.gen++
			gen := p.gen
			p.timer = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- settled{path: path, gen: gen}:
				case <-ctx.Done():
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case s := <-ready:
			if p, ok := pending[s.path]; !ok || p.gen != s.gen {
				continue
			}
			delete(pending, s.path)
			if info, err := os.Stat(s.path); err != nil || info.IsDir() {
				continue
			}
			if queued[s.path] {
				continue
			}
			w.logger.Debug("pdf settled", "path", s.path)
			queued[s.path] = true
			queue = append(queue, s.path)

		case next <- head:
			queue = queue[1:]
			delete(queued, head)
		}
	}
}

type settle struct {
	timer *time.Timer
	gen   uint64
}

type settled struct {
	path string
	gen  uint64
}
