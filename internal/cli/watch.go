package cli

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/aretw0/abilitree"
	"github.com/aretw0/abilitree/internal/presentation/tui"
)

// settleDelay lets editors finish writing before the catalog is read again.
const settleDelay = 100 * time.Millisecond

// RunWatch executes a play session that reloads the catalog whenever it
// changes on disk. Enabled abilities are replayed on the new tree, so edits
// keep the player's progress where the catalog still allows it.
func RunWatch(opts RunOptions) error {
	logger := createLogger(opts.Debug)
	tui.PrintBanner(os.Stdout)

	collector, err := serveMetrics(opts.MetricsAddr, logger)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, logger, collector)
	if err != nil {
		return err
	}
	class, err := pickClass(engine, opts.Class)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	r := createRunner(false)
	watchCh, err := engine.Watch(sigCtx)
	if err != nil {
		logger.Warn("Watch unavailable, running a plain session", "err", err)
	} else {
		logger.Info("Starting Watcher", "path", opts.CatalogPath)
		printSystemMessage("Watching '%s' for changes.", opts.CatalogPath)
		tasks := make(chan func(context.Context))
		r.Tasks = tasks
		go watchLoop(sigCtx, engine, class, watchCh, tasks, logger)
	}

	runErr := r.Run(sigCtx, engine, class)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	logCompletion(class, runErr, false, sigCtx.Signal())
	return handleExecutionError(runErr)
}

// watchLoop turns catalog changes into reload tasks for the session. The
// reload itself runs on the session goroutine, never next to a click.
func watchLoop(ctx context.Context, engine *abilitree.Engine, class string, watchCh <-chan string, tasks chan<- func(context.Context), logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watchCh:
			if !ok {
				return
			}
			logger.Info("Change detected, triggering reload", "event", event)
			time.Sleep(settleDelay)

			task := func(ctx context.Context) {
				printSystemMessage("Change detected in '%s'.", event)
				restored, err := reload(ctx, engine, class)
				if err != nil {
					logger.Error("Reload failed, keeping previous catalog", "err", err)
					printSystemMessage("Reload failed: %v", err)
					return
				}
				printSystemMessage("Catalog reloaded, %d abilities restored.", restored)
			}
			select {
			case tasks <- task:
			case <-ctx.Done():
				return
			}
		}
	}
}

// reload reads the catalog again and replays the abilities that were
// enabled before. It returns how many of them are enabled again.
func reload(ctx context.Context, engine *abilitree.Engine, class string) (int, error) {
	var previous []string
	if status, err := engine.Status(class); err == nil {
		previous = status.Enabled
	}
	if err := engine.Reload(ctx); err != nil {
		return 0, err
	}
	return replay(ctx, engine, class, previous)
}

// replay clicks the given abilities until no more of them can be enabled.
// Grid order is not click order, so it takes as many passes as needed.
func replay(ctx context.Context, engine *abilitree.Engine, class string, abilities []string) (int, error) {
	pending := slices.Clone(abilities)
	restored := 0
	for len(pending) > 0 {
		var next []string
		for _, name := range pending {
			if _, err := engine.Click(ctx, class, name); err != nil {
				next = append(next, name)
				continue
			}
			restored++
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}
	return restored, ctx.Err()
}
