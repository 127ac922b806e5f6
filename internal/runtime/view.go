package runtime

import (
	"fmt"
	"sort"

	"github.com/aretw0/abilitree/pkg/domain"
)

// NodeView is a read-only snapshot of one ability node for renderers.
type NodeView struct {
	Name           string           `json:"name"`
	Label          string           `json:"label"`
	Position       domain.Position  `json:"position"`
	State          domain.NodeState `json:"state"`
	Locked         bool             `json:"locked"`
	LockedBy       []string         `json:"locked_by,omitempty"`
	RequirementMet bool             `json:"requirement_met"`
	Cost           int              `json:"cost"`
	Archetype      string           `json:"archetype,omitempty"`
	Root           bool             `json:"root,omitempty"`
	Shape          string           `json:"shape"`
	Imports        []string         `json:"imports,omitempty"`
	Exports        []string         `json:"exports,omitempty"`
	Blocks         []string         `json:"blocks,omitempty"`
	Required       string           `json:"required,omitempty"`
	Combo          string           `json:"combo,omitempty"`
	Description    string           `json:"description,omitempty"`
}

// JunctionView is a read-only snapshot of one path cell.
type JunctionView struct {
	Position domain.Position `json:"position"`
	Shape    string          `json:"shape"`
	// Active lists the ports leading to an enabled node. A junction is drawn
	// lit when at least two of them are.
	Active []domain.Direction `json:"active,omitempty"`
}

// Lit reports whether the junction carries an active connection.
func (j JunctionView) Lit() bool { return len(j.Active) >= 2 }

func (t *Tree) view(n *node) NodeView {
	v := NodeView{
		Name:           n.name(),
		Label:          n.def.Label(),
		Position:       n.def.Position,
		State:          n.state,
		Locked:         n.locked(),
		LockedBy:       n.lockers(),
		RequirementMet: n.requirementMet,
		Cost:           n.def.Cost,
		Root:           n == t.root,
		Shape:          n.unit.Shape(),
		Imports:        n.def.Imports,
		Exports:        n.def.Exports,
		Blocks:         n.def.Blocks,
		Required:       n.def.Required,
		Combo:          n.def.Combo,
		Description:    n.def.Description,
	}
	if len(v.LockedBy) == 0 {
		v.LockedBy = nil
	}
	if a := n.def.Archetype; a != nil {
		v.Archetype = a.Name
	}
	return v
}

// Node returns the view of the named ability.
func (t *Tree) Node(name string) (NodeView, error) {
	n, ok := t.byName[name]
	if !ok {
		return NodeView{}, fmt.Errorf("%w: %s", domain.ErrUnknownAbility, name)
	}
	return t.view(n), nil
}

// Nodes returns the view of every node in row-major grid order.
func (t *Tree) Nodes() []NodeView {
	out := make([]NodeView, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, t.view(n))
	}
	return out
}

// Junctions returns the view of every junction in row-major grid order.
func (t *Tree) Junctions() []JunctionView {
	units := t.grid.Junctions()
	out := make([]JunctionView, 0, len(units))
	for _, u := range units {
		jv := JunctionView{Position: u.Pos, Shape: u.Shape()}
		for _, d := range u.Gateway() {
			for _, id := range u.Port(d).Interested() {
				if n := t.nodes[id]; n != nil && n.state == domain.Enabled {
					jv.Active = append(jv.Active, d)
					break
				}
			}
		}
		out = append(out, jv)
	}
	return out
}

// Status summarizes a tree: its budget and what is enabled.
type Status struct {
	Class      string         `json:"class"`
	Root       string         `json:"root"`
	Budget     int            `json:"budget"`
	Remaining  int            `json:"remaining"`
	Enabled    []string       `json:"enabled"`
	Archetypes map[string]int `json:"archetypes,omitempty"`
	Violations int            `json:"violations"`
}

// Spent returns the points held by enabled abilities.
func (s Status) Spent() int { return s.Budget - s.Remaining }

// Status returns the current summary of the tree.
func (t *Tree) Status() Status {
	s := Status{
		Class:      t.class,
		Root:       t.root.name(),
		Budget:     t.ledger.Total(),
		Remaining:  t.ledger.Remaining(),
		Enabled:    t.Enabled(),
		Violations: len(t.violations),
	}
	for _, name := range t.archetypes() {
		if s.Archetypes == nil {
			s.Archetypes = make(map[string]int)
		}
		s.Archetypes[name] = t.ledger.ArchetypeCount(name)
	}
	return s
}

// archetypes returns the distinct archetype names of the class, sorted.
func (t *Tree) archetypes() []string {
	seen := make(map[string]struct{})
	for _, n := range t.order {
		if a := n.def.Archetype; a != nil {
			seen[a.Name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
