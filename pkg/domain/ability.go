package domain

import "slices"

// DefaultBudget is the number of ability points a class starts with when the
// catalog does not say otherwise.
const DefaultBudget = 45

// Archetype ties an ability to a named sub-category. Min is the number of
// already-active abilities of that archetype required before this one unlocks.
type Archetype struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Min  int    `json:"min" yaml:"min" mapstructure:"min"`
}

// Ability is the immutable definition of one unlockable ability.
// It is supplied by a catalog and never mutated by the engine.
type Ability struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Imports lists the abilities that can supply this one's unlock.
	Imports []string `json:"imports,omitempty" yaml:"imports,omitempty" mapstructure:"imports"`
	// Exports lists the abilities this one can supply.
	Exports []string `json:"exports,omitempty" yaml:"exports,omitempty" mapstructure:"exports"`
	// Blocks lists mutually exclusive abilities, locked while this one is enabled.
	Blocks []string `json:"blocks,omitempty" yaml:"blocks,omitempty" mapstructure:"blocks"`
	// Required names an ability, possibly far away on the grid, that must be
	// enabled before this one can be.
	Required string `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`

	Cost      int        `json:"cost" yaml:"cost" mapstructure:"cost"`
	Archetype *Archetype `json:"archetype,omitempty" yaml:"archetype,omitempty" mapstructure:"archetype"`
	Position  Position   `json:"position" yaml:"position" mapstructure:"position"`

	// Drafts describe how the ability is wired to its neighbours through the
	// grid, one compass walk per path (e.g. "SSSE").
	Drafts []string `json:"drafts,omitempty" yaml:"drafts,omitempty" mapstructure:"drafts"`

	// Display metadata, carried through for renderers.
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty" mapstructure:"display_name"`
	Combo       string `json:"combo,omitempty" yaml:"combo,omitempty" mapstructure:"combo"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" mapstructure:"icon"`
	// Description is free Markdown shown by reports.
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// ImportsFrom reports whether name can supply this ability.
func (a *Ability) ImportsFrom(name string) bool {
	return slices.Contains(a.Imports, name)
}

// ExportsTo reports whether this ability can supply name.
func (a *Ability) ExportsTo(name string) bool {
	return slices.Contains(a.Exports, name)
}

// IsBlocking reports whether enabling this ability locks name.
func (a *Ability) IsBlocking(name string) bool {
	return slices.Contains(a.Blocks, name)
}

// Related reports whether name is an import or an export of this ability.
func (a *Ability) Related(name string) bool {
	return a.ImportsFrom(name) || a.ExportsTo(name)
}

// Label returns the display name, falling back to the identity.
func (a *Ability) Label() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}

// Class is one independent ability tree: its own grid, root and budget.
type Class struct {
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	Budget int    `json:"budget" yaml:"budget" mapstructure:"budget"`
	// Root optionally names the ability that starts in Standby.
	// When empty the single ability without imports is used.
	Root      string    `json:"root,omitempty" yaml:"root,omitempty" mapstructure:"root"`
	Abilities []Ability `json:"abilities" yaml:"abilities" mapstructure:"abilities"`
}

// Catalog is the static ability data consumed by the engine.
type Catalog struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Classes []Class `json:"classes" yaml:"classes" mapstructure:"classes"`
}

// Class returns the class with the given name.
func (c *Catalog) Class(name string) (*Class, bool) {
	for i := range c.Classes {
		if c.Classes[i].Name == name {
			return &c.Classes[i], true
		}
	}
	return nil, false
}
