package dsl

import "github.com/aretw0/abilitree/pkg/domain"

// AbilityBuilder provides a fluent API for configuring an ability.
type AbilityBuilder struct {
	ability domain.Ability
	class   *ClassBuilder
}

// At places the ability on the grid.
func (a *AbilityBuilder) At(row, col int) *AbilityBuilder {
	a.ability.Position = domain.Position{Row: row, Col: col}
	return a
}

// Cost sets the points spent while the ability is enabled.
func (a *AbilityBuilder) Cost(points int) *AbilityBuilder {
	a.ability.Cost = points
	return a
}

// Imports adds abilities that can supply this one.
func (a *AbilityBuilder) Imports(names ...string) *AbilityBuilder {
	a.ability.Imports = appendNew(a.ability.Imports, names...)
	return a
}

// Exports adds abilities this one can supply.
func (a *AbilityBuilder) Exports(names ...string) *AbilityBuilder {
	a.ability.Exports = appendNew(a.ability.Exports, names...)
	return a
}

// Blocks adds mutually exclusive abilities.
func (a *AbilityBuilder) Blocks(names ...string) *AbilityBuilder {
	a.ability.Blocks = appendNew(a.ability.Blocks, names...)
	return a
}

// Requires names an ability that must be enabled first.
func (a *AbilityBuilder) Requires(name string) *AbilityBuilder {
	a.ability.Required = name
	return a
}

// Archetype ties the ability to an archetype that needs min active
// abilities before it unlocks.
func (a *AbilityBuilder) Archetype(name string, min int) *AbilityBuilder {
	a.ability.Archetype = &domain.Archetype{Name: name, Min: min}
	return a
}

// Draft adds path drafts walked from this ability.
func (a *AbilityBuilder) Draft(drafts ...string) *AbilityBuilder {
	a.ability.Drafts = append(a.ability.Drafts, drafts...)
	return a
}

// Display sets the metadata carried through for renderers.
func (a *AbilityBuilder) Display(name, combo string) *AbilityBuilder {
	a.ability.DisplayName = name
	a.ability.Combo = combo
	return a
}

// Describe sets the Markdown description.
func (a *AbilityBuilder) Describe(text string) *AbilityBuilder {
	a.ability.Description = text
	return a
}

// Build returns the underlying domain.Ability.
// This is primarily used by the ClassBuilder, but exposed for advanced usage.
func (a *AbilityBuilder) Build() domain.Ability {
	return a.ability
}

// Class returns to the class builder, for chaining.
func (a *AbilityBuilder) Class() *ClassBuilder {
	return a.class
}

func appendNew(list []string, names ...string) []string {
	for _, name := range names {
		dup := false
		for _, have := range list {
			if have == name {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, name)
		}
	}
	return list
}
