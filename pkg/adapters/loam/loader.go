// Package loam loads ability catalogs from a directory of documents.
//
// Each class is a directory and each ability one document inside it:
//
//	warrior/_class.md    budget and root of the class
//	warrior/bash.md      frontmatter is the ability, the body its description
//	warrior/charge.json  data files work too
//
// The ability name defaults to the file name. A "class" key in the
// frontmatter moves a document to another class.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/abilitree/pkg/adapters/memory"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/schema"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the abilitree CatalogLoader interface.
// The directory is read again on every call so edits show up without a restart.
type Loader struct {
	Name string
	Repo *loam.TypedRepository[Metadata]
}

// New creates a new Loam adapter.
func New(name string, repo *loam.TypedRepository[Metadata]) *Loader {
	return &Loader{
		Name: name,
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode makes every format report numbers as json.Number.
	// The engine never writes catalogs.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(filepath.Base(absPath), loam.NewTypedRepository[Metadata](repo)), nil
}

// ListClasses implements ports.CatalogLoader.
func (l *Loader) ListClasses(ctx context.Context) ([]string, error) {
	cat, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cat.Classes))
	for _, c := range cat.Classes {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names, nil
}

// GetClass implements ports.CatalogLoader.
func (l *Loader) GetClass(ctx context.Context, name string) (*domain.Class, error) {
	cat, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return memory.NewLoader(cat).GetClass(ctx, name)
}

// Load reads every document and decodes the whole catalog.
func (l *Loader) Load(ctx context.Context) (*domain.Catalog, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	type rawClass struct {
		settings  map[string]any
		abilities map[string]any
		sources   map[string]string
	}
	classes := make(map[string]*rawClass)
	get := func(name string) *rawClass {
		c, ok := classes[name]
		if !ok {
			c = &rawClass{abilities: make(map[string]any), sources: make(map[string]string)}
			classes[name] = c
		}
		return c
	}

	for _, doc := range docs {
		id := trimExtension(doc.ID)
		dir, base := splitID(id)

		class := doc.Data.class()
		if class == "" {
			class = dir
		}
		if class == "" {
			return nil, fmt.Errorf("document '%s' belongs to no class: move it into a class directory or set %q", doc.ID, classKey)
		}

		if base == classDocument {
			get(class).settings = doc.Data.ability("")
			continue
		}

		raw := doc.Data.ability(doc.Content)
		name := base
		if n, ok := raw["name"].(string); ok && n != "" {
			name = n
		}

		c := get(class)
		// Collision Detection
		if existing, ok := c.sources[name]; ok {
			return nil, fmt.Errorf("collision detected: ability '%s' of class '%s' is defined in both '%s' and '%s'", name, class, existing, doc.ID)
		}
		c.sources[name] = doc.ID
		c.abilities[name] = raw
	}

	raw := make(map[string]any, len(classes))
	for name, c := range classes {
		entry := map[string]any{"abilities": c.abilities}
		for _, key := range []string{"budget", "root"} {
			if v, ok := c.settings[key]; ok {
				entry[key] = v
			}
		}
		raw[name] = entry
	}

	cat, err := schema.DecodeCatalog(l.Name, raw)
	if err != nil {
		return nil, fmt.Errorf("catalog parse failed (%s): %w", l.Name, err)
	}
	return cat, nil
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces on its own; pass the changed ID up the chain.
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// splitID returns the top-level directory and the base name of a document ID.
func splitID(id string) (string, string) {
	base := id
	if i := strings.LastIndex(id, "/"); i >= 0 {
		base = id[i+1:]
	}
	dir, _, found := strings.Cut(id, "/")
	if !found {
		return "", base
	}
	return dir, base
}
