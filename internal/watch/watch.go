// Package watch re-solves a beam config file every time it is saved.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/config"
	"github.com/san-kum/beamlab/internal/solver"
)

// DefaultDebounce collapses the burst of events an editor emits on save.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives each solve. err is set when the file could not be read,
// parsed or validated; the watcher keeps running either way.
type Handler func(res *config.Resolved, results []beam.Result, err error)

type Watcher struct {
	log      *slog.Logger
	debounce time.Duration
}

func New(log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{log: log, debounce: DefaultDebounce}
}

// Run solves path once, then again after every write or create of it, until
// ctx is done. The parent directory is watched so editors that replace the
// file on save are still seen.
func (w *Watcher) Run(ctx context.Context, path string, fn Handler) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return err
	}
	w.log.Info("watching", "path", target)

	w.solve(ctx, target, fn)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.solve(ctx, target, fn)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) solve(ctx context.Context, path string, fn Handler) {
	cfg, err := config.Load(path)
	if err != nil {
		w.log.Warn("load config", "path", path, "err", err)
		fn(nil, nil, err)
		return
	}
	res, err := cfg.Resolve()
	if err != nil {
		w.log.Warn("resolve config", "path", path, "err", err)
		fn(nil, nil, err)
		return
	}

	start := time.Now()
	results, err := solver.Compare(ctx, res.Params, res.Models, res.LoadCase)
	if err != nil {
		fn(res, nil, err)
		return
	}
	w.log.Debug("solved", "name", res.Name, "models", len(results), "elapsed", time.Since(start))
	fn(res, results, nil)
}
