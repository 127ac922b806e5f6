package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/aretw0/abilitree"
	"github.com/aretw0/abilitree/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// createEngine initializes an engine with standard CLI conventions.
// The collector may be nil.
func createEngine(opts RunOptions, logger *slog.Logger, collector *observability.Collector) (*abilitree.Engine, error) {
	engineOpts := []abilitree.Option{
		abilitree.WithLogger(logger),
		abilitree.WithLifecycleHooks(collector.Hooks()),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, abilitree.WithLifecycleHooks(observability.AuditHooks(logger)))
	}
	if opts.Budget > 0 {
		engineOpts = append(engineOpts, abilitree.WithBudget(opts.Budget))
	}

	engine, err := abilitree.New(opts.CatalogPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// pickClass returns the requested class, or the first class of the catalog
// when none is requested.
func pickClass(engine *abilitree.Engine, requested string) (string, error) {
	classes := engine.Classes()
	if len(classes) == 0 {
		return "", fmt.Errorf("catalog %q has no classes", engine.Name)
	}
	if requested == "" {
		return classes[0], nil
	}
	if !slices.Contains(classes, requested) {
		return "", fmt.Errorf("unknown class %q (have: %v)", requested, classes)
	}
	return requested, nil
}

// serveMetrics exposes the collector on addr until the process exits.
// An empty addr disables it and returns a nil collector.
func serveMetrics(addr string, logger *slog.Logger) (*observability.Collector, error) {
	if addr == "" {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(collector.Gatherer(), promhttp.HandlerOpts{}))
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("Metrics server stopped", "err", err)
		}
	}()
	return collector, nil
}
