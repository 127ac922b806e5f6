package runtime

import (
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/aretw0/abilitree/internal/grid"
	"github.com/aretw0/abilitree/internal/logging"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/ports"
)

// node is the mutable runtime record of one ability.
type node struct {
	id   grid.UnitID
	unit *grid.Unit
	def  *domain.Ability

	state          domain.NodeState
	lockedBy       map[string]struct{}
	requirementMet bool
}

func (n *node) name() string { return n.def.Name }

func (n *node) locked() bool { return len(n.lockedBy) > 0 }

func (n *node) lockers() []string {
	out := make([]string, 0, len(n.lockedBy))
	for name := range n.lockedBy {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Tree is the ability tree of a single class: the wired grid plus the state
// of every node and the ledger they spend from.
//
// A Tree is a single actor. Click and Reset refuse to run while another one
// is in progress; the read accessors must not be called concurrently with them.
type Tree struct {
	class  string
	grid   *grid.Grid
	ledger ports.Ledger
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	nodes      map[grid.UnitID]*node
	byName     map[string]*node
	order      []*node
	root       *node
	rootName   string
	requiredBy map[string][]*node

	violations []domain.InvariantViolation
	busy       atomic.Bool
	nextRoute  uint64
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the tree logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRoot names the root ability explicitly instead of inferring it.
func WithRoot(name string) Option {
	return func(t *Tree) {
		t.rootName = name
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Tree) {
		t.hooks = t.hooks.Merge(hooks)
	}
}

// NewTree wires the abilities of a class into a grid and puts the tree in its
// initial state: the root in Standby, every other node Disabled.
//
// Catalog integrity problems do not fail construction. They are logged and
// returned so the caller can decide how loud to be about them.
func NewTree(class string, abilities []domain.Ability, ledger ports.Ledger, opts ...Option) (*Tree, []domain.InvariantViolation, error) {
	if len(abilities) == 0 {
		return nil, nil, fmt.Errorf("class %q has no abilities", class)
	}
	if ledger == nil {
		return nil, nil, fmt.Errorf("class %q: ledger is required", class)
	}

	t := &Tree{
		class:      class,
		ledger:     ledger,
		logger:     logging.NewNop(),
		nodes:      make(map[grid.UnitID]*node, len(abilities)),
		byName:     make(map[string]*node, len(abilities)),
		requiredBy: make(map[string][]*node),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("class", class)

	defs := make([]domain.Ability, len(abilities))
	copy(defs, abilities)
	t.grid = grid.Build(defs, grid.WithLogger(t.logger))
	t.violations = append(t.violations, t.grid.Violations()...)

	for _, u := range t.grid.Nodes() {
		var def *domain.Ability
		for i := range defs {
			if defs[i].Name == u.Name() && defs[i].Position == u.Pos {
				def = &defs[i]
				break
			}
		}
		n := &node{
			id:             u.ID,
			unit:           u,
			def:            def,
			lockedBy:       make(map[string]struct{}),
			requirementMet: def.Required == "",
		}
		t.nodes[u.ID] = n
		t.byName[def.Name] = n
		t.order = append(t.order, n)
	}

	for _, n := range t.order {
		if req := n.def.Required; req != "" {
			t.requiredBy[req] = append(t.requiredBy[req], n)
		}
	}

	if t.rootName != "" {
		if _, ok := t.byName[t.rootName]; !ok {
			return nil, nil, fmt.Errorf("class %q: root: %w: %s", class, domain.ErrUnknownAbility, t.rootName)
		}
	}

	t.checkRelations()
	t.pickRoot(t.rootName)
	t.restore()
	return t, t.Violations(), nil
}

// checkRelations reports names that resolve to nothing and relations that
// no draft ever wired.
func (t *Tree) checkRelations() {
	for _, n := range t.order {
		family := make(map[string]struct{})
		for _, id := range t.grid.Family(n.id) {
			family[t.grid.Unit(id).Name()] = struct{}{}
		}
		check := func(kind string, names []string, wired bool) {
			for _, name := range names {
				if _, ok := t.byName[name]; !ok {
					t.violate(domain.ViolationUnknownName, n, fmt.Sprintf("%s <%s> does not exist", kind, name))
					continue
				}
				if !wired {
					continue
				}
				if _, ok := family[name]; !ok {
					t.violate(domain.ViolationUnwired, n, fmt.Sprintf("%s <%s> is not connected by any draft", kind, name))
				}
			}
		}
		check("import", n.def.Imports, true)
		check("export", n.def.Exports, true)
		check("block", n.def.Blocks, false)
		if req := n.def.Required; req != "" {
			check("required", []string{req}, false)
		}
	}
}

func (t *Tree) pickRoot(explicit string) {
	if explicit != "" {
		t.root = t.byName[explicit]
		return
	}
	var roots []*node
	for _, n := range t.order {
		if len(n.def.Imports) == 0 {
			roots = append(roots, n)
		}
	}
	switch len(roots) {
	case 0:
		t.root = t.order[0]
		t.violate(domain.ViolationRoot, t.root, "every ability imports another; falling back to the first placed")
	case 1:
		t.root = roots[0]
	default:
		t.root = roots[0]
		for _, n := range roots[1:] {
			t.violate(domain.ViolationRoot, n, fmt.Sprintf("second ability without imports; <%s> is the root", t.root.name()))
		}
	}
}

func (t *Tree) violate(kind domain.ViolationKind, n *node, detail string) {
	v := domain.InvariantViolation{Kind: kind, Ability: n.name(), Position: n.def.Position, Detail: detail}
	t.violations = append(t.violations, v)
	t.logger.Warn("tree invariant violation", "kind", kind, "ability", n.name(), "detail", detail)
}

// restore puts every node back into its initial state.
func (t *Tree) restore() {
	for _, n := range t.order {
		n.state = domain.Disabled
		clear(n.lockedBy)
		n.requirementMet = n.def.Required == ""
	}
	t.root.state = domain.Standby
	t.ledger.Restore()
}

// Class returns the class name.
func (t *Tree) Class() string { return t.class }

// Root returns the name of the root ability.
func (t *Tree) Root() string { return t.root.name() }

// Ledger returns the ledger the tree spends from.
func (t *Tree) Ledger() ports.Ledger { return t.ledger }

// Grid exposes the wired grid for presentation.
func (t *Tree) Grid() *grid.Grid { return t.grid }

// Violations returns a copy of every integrity problem found at construction.
func (t *Tree) Violations() []domain.InvariantViolation {
	out := make([]domain.InvariantViolation, len(t.violations))
	copy(out, t.violations)
	return out
}

// State returns the state of the named ability.
func (t *Tree) State(name string) (domain.NodeState, error) {
	n, ok := t.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownAbility, name)
	}
	return n.state, nil
}

// Enabled returns the names of every enabled ability in grid order.
func (t *Tree) Enabled() []string {
	var out []string
	for _, n := range t.order {
		if n.state == domain.Enabled {
			out = append(out, n.name())
		}
	}
	return out
}

// Snapshot returns the state of every node by name.
func (t *Tree) Snapshot() domain.Snapshot {
	s := make(domain.Snapshot, len(t.order))
	for _, n := range t.order {
		s[n.name()] = n.state
	}
	return s
}
