package abilitree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/adapters/file"
	loamAdapter "github.com/aretw0/abilitree/pkg/adapters/loam"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/ledger"
	"github.com/aretw0/abilitree/pkg/ports"
	"github.com/aretw0/abilitree/pkg/schema"
)

// Aliases of the runtime views, so consumers can name what the Engine returns.
type (
	Tree         = runtime.Tree
	Outcome      = runtime.Outcome
	Status       = runtime.Status
	NodeView     = runtime.NodeView
	JunctionView = runtime.JunctionView
)

// Engine is the high-level entry point for the abilitree library.
// It owns one runtime tree per class of the catalog and provides a simplified
// API for consumers.
type Engine struct {
	loader  ports.CatalogLoader
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	budget  *int
	ledgers LedgerFactory
	Name    string

	mu      sync.RWMutex
	trees   map[string]*runtime.Tree
	classes []string
}

// LedgerFactory creates the resource book of one class.
type LedgerFactory func(class string, budget int) ports.Ledger

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLoader injects a custom CatalogLoader, bypassing path-based loading.
func WithLoader(l ports.CatalogLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBudget overrides the budget of every class.
func WithBudget(points int) Option {
	return func(e *Engine) {
		e.budget = &points
	}
}

// WithLedgerFactory replaces the default point ledger.
func WithLedgerFactory(f LedgerFactory) Option {
	return func(e *Engine) {
		e.ledgers = f
	}
}

// New initializes a new Engine.
//
// By default the catalog at path is loaded: a .yaml, .yml, .json or .toml
// file is read whole, a directory is opened as a Loam repository.
// If WithLoader option is provided, path can be empty and is only a label.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply Options first to check if a loader is provided
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		loader, err := open(path)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}
	if path != "" {
		eng.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("catalog", eng.Name)
	}
	if eng.ledgers == nil {
		eng.ledgers = func(_ string, budget int) ports.Ledger { return ledger.New(budget) }
	}

	if err := eng.Reload(context.Background()); err != nil {
		return nil, err
	}
	return eng, nil
}

func open(path string) (ports.CatalogLoader, error) {
	if file.Supported(path) {
		return file.New(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid catalog path %s: expected a directory or a .yaml, .json or .toml file", path)
	}
	return loamAdapter.Open(path)
}

// Reload reads the catalog again and rebuilds every tree in its initial state.
// On error the previous trees are kept.
func (e *Engine) Reload(ctx context.Context) error {
	names, err := e.loader.ListClasses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list classes: %w", err)
	}
	if len(names) == 0 {
		return fmt.Errorf("catalog %q has no classes", e.Name)
	}

	trees := make(map[string]*runtime.Tree, len(names))
	for _, name := range names {
		class, err := e.loader.GetClass(ctx, name)
		if err != nil {
			return err
		}
		if e.budget != nil {
			class.Budget = *e.budget
		}
		if err := schema.Validate(class); err != nil {
			return err
		}

		tree, violations, err := runtime.NewTree(class.Name, class.Abilities, e.ledgers(class.Name, class.Budget),
			runtime.WithLogger(e.logger),
			runtime.WithRoot(class.Root),
			runtime.WithLifecycleHooks(e.hooks),
		)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			e.logger.Warn("class loaded with violations", "class", class.Name, "count", len(violations))
		}
		trees[class.Name] = tree
	}

	e.mu.Lock()
	e.trees = trees
	e.classes = names
	e.mu.Unlock()

	e.logger.Debug("catalog loaded", "classes", len(names))
	return nil
}

// Classes returns the class names of the catalog, sorted.
func (e *Engine) Classes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Tree returns the runtime tree of a class for direct use.
func (e *Engine) Tree(class string) (*runtime.Tree, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.trees[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownClass, class)
	}
	return t, nil
}

// Click toggles an ability of a class and propagates the change.
func (e *Engine) Click(ctx context.Context, class, ability string) (*runtime.Outcome, error) {
	t, err := e.Tree(class)
	if err != nil {
		return nil, err
	}
	return t.Click(ctx, ability)
}

// Reset returns a class to its initial state and reports what changed.
func (e *Engine) Reset(ctx context.Context, class string) ([]domain.Transition, error) {
	t, err := e.Tree(class)
	if err != nil {
		return nil, err
	}
	return t.Reset(ctx)
}

// Status summarizes a class.
func (e *Engine) Status(class string) (runtime.Status, error) {
	t, err := e.Tree(class)
	if err != nil {
		return runtime.Status{}, err
	}
	return t.Status(), nil
}

// Inspect returns the node and junction views of a class for visualization
// or introspection tools.
func (e *Engine) Inspect(class string) ([]runtime.NodeView, []runtime.JunctionView, error) {
	t, err := e.Tree(class)
	if err != nil {
		return nil, nil, err
	}
	return t.Nodes(), t.Junctions(), nil
}

// Violations returns the integrity problems found when the class was built.
func (e *Engine) Violations(class string) ([]domain.InvariantViolation, error) {
	t, err := e.Tree(class)
	if err != nil {
		return nil, err
	}
	return t.Violations(), nil
}

// Watch returns a channel that signals when the underlying catalog changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying CatalogLoader used by the engine.
func (e *Engine) Loader() ports.CatalogLoader {
	return e.loader
}
