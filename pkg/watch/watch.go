// Package watch reports files of a directory once they stopped changing.
package watch

import (
	"context"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"

	"github.com/mpapenbr/accstats/log"
)

type (
	// Handler is called from the goroutine executing Run, never concurrently.
	Handler func(ctx context.Context, path string)
	Watcher struct {
		debounce time.Duration
		l        *log.Logger
		ready    chan struct{}
	}
	Option func(*Watcher)
)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		w.l = l
	}
}

func New(opts ...Option) *Watcher {
	ret := &Watcher{
		debounce: time.Second,
		l:        log.Default().Named("watch"),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Ready is closed once the directory is being watched
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches dir until ctx is done. A path is handed to handle after no
// create or write event occurred for it during the debounce window. Paths that
// become due at the same time are handled in ascending name order.
//
//nolint:cyclop // by design
func (w *Watcher) Run(ctx context.Context, dir string, handle Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return err
	}
	close(w.ready)
	w.l.Info("watching directory",
		log.String("dir", dir), log.Duration("debounce", w.debounce))

	pending := map[string]time.Time{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	schedule := func() {
		if len(pending) == 0 {
			return
		}
		next := slices.MinFunc(lo.Values(pending), func(a, b time.Time) int {
			return a.Compare(b)
		})
		timer.Reset(max(time.Until(next), 0))
	}

	for {
		select {
		case <-ctx.Done():
			w.l.Info("context done, stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.l.Debug("change detected",
				log.String("file", event.Name), log.String("op", event.Op.String()))
			pending[event.Name] = time.Now().Add(w.debounce)
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.l.Error("watcher error", log.ErrorField(err))
		case <-timer.C:
			now := time.Now()
			due := lo.Keys(lo.PickBy(pending, func(_ string, t time.Time) bool {
				return !t.After(now)
			}))
			slices.Sort(due)
			for _, path := range due {
				delete(pending, path)
				handle(ctx, path)
			}
			schedule()
		}
	}
}
