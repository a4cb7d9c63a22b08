package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"github.com/zonekit/zonekit/pkg/observability"
)

// DefaultDebounce coalesces bursts of filesystem events into one rerun.
// Editors and exporters commonly touch a file several times per save.
const DefaultDebounce = 500 * time.Millisecond

// retentionSchedule is when the watcher prunes old snapshots.
const retentionSchedule = "@daily"

// Watcher reruns the pipeline whenever one of the watched files changes.
// Parent directories are watched rather than the files themselves, so
// rename-based saves do not silently detach the watch.
type Watcher struct {
	pipeline *Pipeline
	opts     Options
	paths    []string
	debounce time.Duration
	keepDays int
	log      *observability.Logger

	// onRun is invoked after every completed run, when set. The CLI uses
	// it to print the run report.
	onRun func(*Summary)
}

// NewWatcher creates a watcher rerunning p on changes to paths.
func NewWatcher(p *Pipeline, opts Options, paths []string, log *observability.Logger) *Watcher {
	return &Watcher{
		pipeline: p,
		opts:     opts,
		paths:    paths,
		debounce: DefaultDebounce,
		keepDays: p.cfg.Archive.KeepDays,
		log:      log,
	}
}

// OnRun registers a callback invoked after each completed run.
func (w *Watcher) OnRun(fn func(*Summary)) {
	w.onRun = fn
}

// Run performs one initial pipeline pass and then blocks, rerunning on
// every change until ctx is canceled. Failed runs are reported and watching
// continues; only a setup error that would fail every subsequent run stops
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve watch path %q: %w", path, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}
	}

	schedule := cron.New()
	if w.keepDays > 0 {
		_, err := schedule.AddFunc(retentionSchedule, func() {
			if _, err := w.pipeline.Archiver().Prune(w.keepDays); err != nil {
				w.log.WithError(err).Warn("scheduled archive retention failed")
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule retention: %w", err)
		}
		schedule.Start()
		defer schedule.Stop()
	}

	w.log.WithField("paths", w.paths).Info("watching for changes")
	w.runOnce(ctx)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.WithFields(map[string]interface{}{
				"file": event.Name,
				"op":   event.Op.String(),
			}).Debug("change detected")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.runOnce(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("file watcher error")
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	summary, err := w.pipeline.Run(ctx, w.opts)
	if err != nil {
		w.log.WithError(err).Error("run failed")
		return
	}
	if w.onRun != nil {
		w.onRun(summary)
	}
}
