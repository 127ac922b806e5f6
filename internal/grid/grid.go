package grid

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/abilitree/internal/logging"
	"github.com/aretw0/abilitree/pkg/domain"
)

// Grid is the sparse arena of units of one class.
// It is built once and then only read; it is not safe for concurrent writes.
type Grid struct {
	units      []*Unit
	cells      map[domain.Position]UnitID
	names      map[string]UnitID
	violations []domain.InvariantViolation
	logger     *slog.Logger
}

// Option configures the Grid.
type Option func(*Grid)

// WithLogger configures the logger used to report invariant violations.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates an empty grid.
func New(opts ...Option) *Grid {
	g := &Grid{
		cells:  make(map[domain.Position]UnitID),
		names:  make(map[string]UnitID),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build places every ability and then lays every draft.
// Nodes go in first so that no draft can claim a cell a node will need.
func Build(abilities []domain.Ability, opts ...Option) *Grid {
	g := New(opts...)
	placed := make([]UnitID, len(abilities))
	for i := range abilities {
		placed[i] = g.PlaceNode(&abilities[i])
	}
	for i := range abilities {
		if placed[i] == None {
			continue
		}
		for _, draft := range abilities[i].Drafts {
			g.LayDraft(placed[i], draft)
		}
	}
	return g
}

// PlaceNode puts an ability on its grid position and returns its ID.
// A position or a name already taken is an invariant violation and the
// ability is skipped (None is returned).
func (g *Grid) PlaceNode(a *domain.Ability) UnitID {
	if id, ok := g.cells[a.Position]; ok {
		g.violate(domain.ViolationNodeCollision, a.Name, a.Position,
			fmt.Sprintf("cell already holds %s", g.describe(id)))
		return None
	}
	if _, ok := g.names[a.Name]; ok {
		g.violate(domain.ViolationNodeCollision, a.Name, a.Position, "duplicate ability name")
		return None
	}

	u := g.alloc(KindNode, a.Position)
	u.name = a.Name
	u.family = make(map[string]struct{}, len(a.Imports)+len(a.Exports))
	for _, n := range a.Imports {
		u.family[n] = struct{}{}
	}
	for _, n := range a.Exports {
		u.family[n] = struct{}{}
	}
	g.names[a.Name] = u.ID
	return u.ID
}

// LayDraft walks a path draft from a node, one cell per step, creating or
// reusing junctions and binding the traversed ports back to the previous hop.
// An illegal direction token or a step into another node's cell is recorded
// as a violation and ends the walk.
func (g *Grid) LayDraft(node UnitID, draft string) {
	origin := g.Unit(node)
	if origin == nil || !origin.IsNode() {
		return
	}

	steps, err := domain.ParseDraft(draft)
	if err != nil {
		g.violate(domain.ViolationInvalidDirection, origin.name, origin.Pos, err.Error())
		return
	}

	pos, prev := origin.Pos, origin.ID
	for _, dir := range steps {
		pos = pos.Step(dir)

		var junction *Unit
		if id, ok := g.cells[pos]; ok {
			junction = g.Unit(id)
			if junction.IsNode() {
				g.violate(domain.ViolationDraftIntoNode, origin.name, pos,
					fmt.Sprintf("draft %q enters %s", draft, g.describe(id)))
				return
			}
		} else {
			junction = g.alloc(KindJunction, pos)
		}

		g.bind(junction, dir.Opposite(), origin.ID, prev)
		prev = junction.ID
	}
}

// bind records that origin is reachable through the port of j facing d and
// that this port leads to closest. It then refreshes the interested sets of
// every node adjacent to j.
func (g *Grid) bind(j *Unit, d domain.Direction, origin, closest UnitID) {
	j.Port(d).add(origin)
	g.connect(j, d, closest)
	g.refresh(j)
}

// refresh re-derives, for every node bound to j, the subset of that node's
// relatives reachable through j, and adds it to the node's facing port.
func (g *Grid) refresh(j *Unit) {
	for _, d := range domain.Directions {
		p := j.Port(d)
		if !p.Bound() {
			continue
		}
		node := g.Unit(p.neighbor)
		if node == nil || !node.IsNode() {
			continue
		}

		back := d.Opposite()
		g.connect(node, back, j.ID)
		np := node.Port(back)
		for _, other := range domain.Directions {
			for id := range j.Port(other).interested {
				if id == node.ID {
					continue
				}
				if node.related(g.Unit(id).name) {
					np.add(id)
				}
			}
		}
	}
}

// connect binds the port of u facing d to target. The first binding wins;
// an attempt to rebind to a different unit is recorded as a violation.
func (g *Grid) connect(u *Unit, d domain.Direction, target UnitID) {
	p := u.Port(d)
	switch p.neighbor {
	case None:
		p.neighbor = target
	case target:
	default:
		g.violate(domain.ViolationRebind, u.name, u.Pos,
			fmt.Sprintf("port %s bound to %s, refusing %s", d, g.describe(p.neighbor), g.describe(target)))
	}
}

func (g *Grid) alloc(kind Kind, pos domain.Position) *Unit {
	u := newUnit(UnitID(len(g.units)+1), kind, pos)
	g.units = append(g.units, u)
	g.cells[pos] = u.ID
	return u
}

func (g *Grid) violate(kind domain.ViolationKind, ability string, pos domain.Position, detail string) {
	v := domain.InvariantViolation{Kind: kind, Ability: ability, Position: pos, Detail: detail}
	g.violations = append(g.violations, v)
	g.logger.Warn("grid invariant violation",
		"kind", string(kind),
		"ability", ability,
		"pos", pos.String(),
		"detail", detail,
	)
}

func (g *Grid) describe(id UnitID) string {
	u := g.Unit(id)
	if u == nil {
		return "nothing"
	}
	if u.IsNode() {
		return fmt.Sprintf("<%s>", u.name)
	}
	return fmt.Sprintf("junction %s", u.Pos)
}

// Unit returns the unit with the given ID, or nil.
func (g *Grid) Unit(id UnitID) *Unit {
	if id <= None || int(id) > len(g.units) {
		return nil
	}
	return g.units[id-1]
}

// At returns the unit occupying pos.
func (g *Grid) At(pos domain.Position) (*Unit, bool) {
	id, ok := g.cells[pos]
	if !ok {
		return nil, false
	}
	return g.Unit(id), true
}

// NodeID returns the ID of the named ability node.
func (g *Grid) NodeID(name string) (UnitID, bool) {
	id, ok := g.names[name]
	return id, ok
}

// Len returns the number of units in the arena.
func (g *Grid) Len() int { return len(g.units) }

// Nodes returns every node in row-major grid order.
func (g *Grid) Nodes() []*Unit { return g.filter(KindNode) }

// Junctions returns every junction in row-major grid order.
func (g *Grid) Junctions() []*Unit { return g.filter(KindJunction) }

func (g *Grid) filter(kind Kind) []*Unit {
	var out []*Unit
	for _, u := range g.units {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.Less(out[j].Pos) })
	return out
}

// Bounds returns the smallest and largest occupied positions.
func (g *Grid) Bounds() (lo, hi domain.Position) {
	first := true
	for pos := range g.cells {
		if first {
			lo, hi, first = pos, pos, false
			continue
		}
		lo.Row, lo.Col = min(lo.Row, pos.Row), min(lo.Col, pos.Col)
		hi.Row, hi.Col = max(hi.Row, pos.Row), max(hi.Col, pos.Col)
	}
	return lo, hi
}

// Family returns every node reachable through any open port of node,
// ascending and without duplicates.
func (g *Grid) Family(node UnitID) []UnitID {
	u := g.Unit(node)
	if u == nil {
		return nil
	}
	seen := make(map[UnitID]struct{})
	var out []UnitID
	for _, d := range u.Gateway() {
		for _, id := range u.Port(d).Interested() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Violations returns every invariant violation recorded while building.
func (g *Grid) Violations() []domain.InvariantViolation {
	return append([]domain.InvariantViolation(nil), g.violations...)
}
