package cli

import (
	"context"
	"os"

	"github.com/aretw0/abilitree/internal/presentation/tui"
)

// RunSession executes a single play session on one class.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	if !opts.Headless {
		tui.PrintBanner(os.Stdout)
	}

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
	logger.Info("Session started", "class", class)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	r := createRunner(opts.Headless)
	runErr := r.Run(sigCtx, engine, class)

	// If context was canceled (signal received), ensure runErr reflects it if it doesn't already
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	logCompletion(class, runErr, opts.Headless, sigCtx.Signal())
	return handleExecutionError(runErr)
}
