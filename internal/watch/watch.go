// Package watch re-runs a callback whenever a job file changes on disk.
// Editor write storms are debounced and re-runs are rate limited, so a file
// being saved repeatedly produces one run per quiet period.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	logx "cronlint/pkg/logx"
)

type Config struct {
	Path string

	// Debounce is the quiet period after the last write event before the
	// callback fires. Default 250ms.
	Debounce time.Duration

	// MinInterval is the minimum spacing between two callback runs.
	// Default 1s.
	MinInterval time.Duration
}

type Watcher struct {
	path     string
	debounce time.Duration
	limiter  *rate.Limiter
	log      logx.Logger
	run      func(ctx context.Context)
}

// New creates a watcher for cfg.Path; run is invoked after each settled
// change, serially from the watch goroutine.
func New(cfg Config, log logx.Logger, run func(ctx context.Context)) *Watcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Watcher{
		path:     cfg.Path,
		debounce: debounce,
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		log:      log,
		run:      run,
	}
}

// Run watches until ctx is cancelled. The watch is on the containing
// directory so editors that replace the file (write temp + rename) still
// produce events.
func (w *Watcher) Run(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	file := filepath.Base(w.path)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(dir); err != nil {
		return err
	}

	notifyReady(w.log)
	w.log.Info("watching job file", logx.String("path", w.path))

	// pending run, reset on every relevant event
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	schedule := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		w.log.Debug("change detected; scheduling re-run", logx.String("path", w.path))
		timer = time.AfterFunc(w.debounce, func() {
			// Space out runs; Wait (not Allow) so the final state is never skipped.
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			w.run(ctx)
		})
	}

	for {
		select {
		case <-ctx.Done():
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timerMu.Unlock()
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				schedule()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", logx.Err(err))
		}
	}
}
