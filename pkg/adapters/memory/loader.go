package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/abilitree/pkg/domain"
)

// Loader implements ports.CatalogLoader over classes held in memory.
type Loader struct {
	classes map[string]domain.Class
}

// NewLoader creates a Loader serving every class of the catalog.
func NewLoader(cat *domain.Catalog) *Loader {
	l := &Loader{classes: make(map[string]domain.Class)}
	if cat != nil {
		for _, c := range cat.Classes {
			l.classes[c.Name] = c
		}
	}
	return l
}

// NewFromClasses creates a Loader from domain objects.
// This improves DX for tests and embedding.
func NewFromClasses(classes ...domain.Class) (*Loader, error) {
	l := &Loader{classes: make(map[string]domain.Class, len(classes))}
	for _, c := range classes {
		if c.Name == "" {
			return nil, fmt.Errorf("class missing name")
		}
		if _, dup := l.classes[c.Name]; dup {
			return nil, fmt.Errorf("duplicate class %q", c.Name)
		}
		l.classes[c.Name] = c
	}
	return l, nil
}

// ListClasses returns all available class names.
func (l *Loader) ListClasses(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(l.classes))
	for name := range l.classes {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

// GetClass returns a copy of the named class.
func (l *Loader) GetClass(_ context.Context, name string) (*domain.Class, error) {
	c, ok := l.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownClass, name)
	}
	c.Abilities = append([]domain.Ability(nil), c.Abilities...)
	return &c, nil
}
