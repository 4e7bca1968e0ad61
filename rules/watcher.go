// rules/watcher.go
package rules

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/util"
)

// Watcher reloads the rule set when files in the rules directory change.
// Events are debounced so an editor's write-then-rename shows up as one
// reload.
type Watcher struct {
	loader   *Loader
	eventBus *util.EventBus
	debounce time.Duration
}

func NewWatcher(loader *Loader, eventBus *util.EventBus) *Watcher {
	return &Watcher{
		loader:   loader,
		eventBus: eventBus,
		debounce: 500 * time.Millisecond,
	}
}

// Start watches the rules directory until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.loader.dir); err != nil {
		fsw.Close()
		return err
	}

	go w.run(ctx, fsw)
	logger.Info("Watching rules directory for changes", zap.String("dir", w.loader.dir))
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Error("Rules watcher error", zap.Error(err))
		case <-timerC:
			count, err := w.loader.Load()
			if err != nil {
				logger.Error("Rule reload failed, keeping previous rule set", zap.Error(err))
				continue
			}
			if w.eventBus != nil {
				w.eventBus.Publish(ctx, util.EventRulesReloaded, count)
			}
		}
	}
}
