package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/abilitree/pkg/adapters/memory"
	"github.com/aretw0/abilitree/pkg/domain"
)

// Builder manages the catalog construction.
type Builder struct {
	name    string
	classes []*ClassBuilder
}

// New creates a new catalog builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Class creates a new class in the catalog.
// If the class already exists, it returns the existing builder.
func (b *Builder) Class(name string) *ClassBuilder {
	for _, cb := range b.classes {
		if cb.class.Name == name {
			return cb
		}
	}
	cb := &ClassBuilder{
		class:   domain.Class{Name: name, Budget: domain.DefaultBudget},
		builder: b,
		byName:  make(map[string]*AbilityBuilder),
	}
	b.classes = append(b.classes, cb)
	return cb
}

// Catalog resolves every link and returns the catalog.
func (b *Builder) Catalog() (*domain.Catalog, error) {
	cat := &domain.Catalog{Name: b.name}
	var errs []error
	for _, cb := range b.classes {
		class, err := cb.Build()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cat.Classes = append(cat.Classes, class)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cat, nil
}

// Build compiles the catalog into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	cat, err := b.Catalog()
	if err != nil {
		return nil, err
	}
	loader, err := memory.NewFromClasses(cat.Classes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

// ClassBuilder provides a fluent API for configuring a class.
type ClassBuilder struct {
	class     domain.Class
	builder   *Builder
	abilities []*AbilityBuilder
	byName    map[string]*AbilityBuilder
	links     []link
}

type link struct {
	from, to string
	draft    string
}

// Budget sets the ability points of the class.
func (c *ClassBuilder) Budget(points int) *ClassBuilder {
	c.class.Budget = points
	return c
}

// Root names the ability that starts in standby.
func (c *ClassBuilder) Root(name string) *ClassBuilder {
	c.class.Root = name
	return c
}

// Ability creates a new ability in the class.
// If the ability already exists, it returns the existing builder.
func (c *ClassBuilder) Ability(name string) *AbilityBuilder {
	if ab, ok := c.byName[name]; ok {
		return ab
	}
	ab := &AbilityBuilder{
		ability: domain.Ability{Name: name},
		class:   c,
	}
	c.byName[name] = ab
	c.abilities = append(c.abilities, ab)
	return ab
}

// Link makes from export to to and to import from, wired by a draft walked
// from the from side. The reverse draft needed on the to side is derived
// from the positions when the class is built.
func (c *ClassBuilder) Link(from, to, draft string) *ClassBuilder {
	c.links = append(c.links, link{from: from, to: to, draft: draft})
	return c
}

// Build resolves the links and returns the class.
func (c *ClassBuilder) Build() (domain.Class, error) {
	for _, l := range c.links {
		from, ok := c.byName[l.from]
		if !ok {
			return domain.Class{}, fmt.Errorf("class %q: link %s -> %s: %w: %s", c.class.Name, l.from, l.to, domain.ErrUnknownAbility, l.from)
		}
		to, ok := c.byName[l.to]
		if !ok {
			return domain.Class{}, fmt.Errorf("class %q: link %s -> %s: %w: %s", c.class.Name, l.from, l.to, domain.ErrUnknownAbility, l.to)
		}
		back, err := Reverse(from.ability.Position, to.ability.Position, l.draft)
		if err != nil {
			return domain.Class{}, fmt.Errorf("class %q: link %s -> %s: %w", c.class.Name, l.from, l.to, err)
		}
		from.Exports(l.to).Draft(l.draft)
		to.Imports(l.from).Draft(back)
	}
	c.links = nil

	class := c.class
	class.Abilities = make([]domain.Ability, 0, len(c.abilities))
	for _, ab := range c.abilities {
		class.Abilities = append(class.Abilities, ab.Build())
	}
	return class, nil
}

// Reverse returns the draft that walks from to back to from, given the draft
// walked from from. The last cell of the draft must neighbour to.
func Reverse(from, to domain.Position, draft string) (string, error) {
	steps, err := domain.ParseDraft(draft)
	if err != nil {
		return "", err
	}
	if len(steps) == 0 {
		return "", fmt.Errorf("empty draft")
	}

	cell := from
	for _, d := range steps {
		cell = cell.Step(d)
	}
	var last domain.Direction
	found := false
	for _, d := range domain.Directions {
		if cell.Step(d) == to {
			last, found = d, true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("draft %q from %s ends at %s, which does not neighbour %s", draft, from, cell, to)
	}

	back := []byte(last.Opposite().String())
	for i := len(steps) - 1; i >= 1; i-- {
		back = append(back, steps[i].Opposite().String()...)
	}
	return string(back), nil
}
