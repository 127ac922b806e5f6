package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/abilitree"
	"github.com/aretw0/abilitree/internal/presentation/graph"
	"github.com/aretw0/abilitree/internal/presentation/tui"
	loamAdapter "github.com/aretw0/abilitree/pkg/adapters/loam"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/schema"
	"github.com/aretw0/loam"
)

// Output formats of the status command.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrInvalidCatalog is returned by Validate when the catalog has problems.
var ErrInvalidCatalog = errors.New("catalog is invalid")

// ReportOptions selects what the read-only commands look at.
type ReportOptions struct {
	CatalogPath string
	Class       string
	Budget      int
	// Clicks are applied in order before reporting, to preview a build.
	Clicks []string
	Format string
	// Color enables ANSI colors and glamour rendering.
	Color bool
}

// Validate loads the catalog and reports schema errors and per-class
// integrity violations.
func Validate(w io.Writer, path string) error {
	engine, err := abilitree.New(path)
	if err != nil {
		problems := schema.ValidationErrors(err)
		if len(problems) == 0 {
			return err
		}
		for _, p := range problems {
			fmt.Fprintf(w, "  - %v\n", p)
		}
		return fmt.Errorf("%w: %d schema error(s)", ErrInvalidCatalog, len(problems))
	}

	total := 0
	for _, class := range engine.Classes() {
		violations, err := engine.Violations(class)
		if err != nil {
			return err
		}
		if len(violations) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", class)
		for _, v := range violations {
			fmt.Fprintf(w, "  - %v\n", v)
		}
		total += len(violations)
	}
	if total > 0 {
		return fmt.Errorf("%w: %d violation(s)", ErrInvalidCatalog, total)
	}
	return nil
}

// Graph writes the Mermaid diagram of one class.
func Graph(w io.Writer, opts ReportOptions, overlay bool) error {
	engine, class, err := prepare(opts)
	if err != nil {
		return err
	}
	nodes, _, err := engine.Inspect(class)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(nodes, overlay))
	return err
}

// Status writes the state of one class in the requested format.
func Status(w io.Writer, opts ReportOptions) error {
	engine, class, err := prepare(opts)
	if err != nil {
		return err
	}
	status, err := engine.Status(class)
	if err != nil {
		return err
	}
	nodes, _, err := engine.Inspect(class)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "", FormatTable:
		tui.StatusTable(w, status, nodes, opts.Color)
		return nil
	case FormatMarkdown:
		md := tui.Report(status, nodes)
		if opts.Color {
			rendered, err := tui.NewRenderer()(md)
			if err == nil {
				md = rendered
			}
		}
		_, err := io.WriteString(w, md)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			abilitree.Status
			Nodes []abilitree.NodeView `json:"nodes"`
		}{status, nodes})
	}
	return fmt.Errorf("unknown format %q (want %s, %s or %s)", opts.Format, FormatTable, FormatMarkdown, FormatJSON)
}

// prepare loads the catalog, picks the class and applies the preview clicks.
func prepare(opts ReportOptions) (*abilitree.Engine, string, error) {
	runOpts := RunOptions{CatalogPath: opts.CatalogPath, Budget: opts.Budget}
	engine, err := createEngine(runOpts, createLogger(false), nil)
	if err != nil {
		return nil, "", err
	}
	class, err := pickClass(engine, opts.Class)
	if err != nil {
		return nil, "", err
	}
	ctx := context.Background()
	for _, name := range opts.Clicks {
		if _, err := engine.Click(ctx, class, name); err != nil {
			return nil, "", err
		}
	}
	return engine, class, nil
}

// Export converts the catalog at path into a Loam directory at dir and
// returns how many abilities were written.
func Export(ctx context.Context, path, dir string) (int, error) {
	if dir == "" {
		return 0, fmt.Errorf("target directory is required")
	}
	engine, err := abilitree.New(path)
	if err != nil {
		return 0, err
	}
	var cat domain.Catalog
	cat.Name = engine.Name
	for _, name := range engine.Classes() {
		class, err := engine.Loader().GetClass(ctx, name)
		if err != nil {
			return 0, err
		}
		cat.Classes = append(cat.Classes, *class)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("invalid path: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return 0, err
	}
	repo, err := loam.Init(absDir, loam.WithVersioning(false))
	if err != nil {
		return 0, fmt.Errorf("failed to init loam: %w", err)
	}
	if err := loamAdapter.Export(ctx, repo, &cat); err != nil {
		return 0, err
	}

	n := 0
	for _, c := range cat.Classes {
		n += len(c.Abilities)
	}
	return n, nil
}
