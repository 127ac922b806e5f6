package grid

import (
	"sort"

	"github.com/aretw0/abilitree/pkg/domain"
)

// UnitID addresses a unit inside the grid arena. The zero value means "none".
type UnitID int

// None is the absent unit.
const None UnitID = 0

// Kind distinguishes the two unit variants.
type Kind uint8

const (
	KindNode Kind = iota + 1
	KindJunction
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindJunction:
		return "junction"
	}
	return "unknown"
}

// Port is one of the four directional connection points of a unit.
type Port struct {
	Dir        domain.Direction
	neighbor   UnitID
	interested map[UnitID]struct{}
}

// Neighbor returns the unit this port is bound to, or None.
func (p *Port) Neighbor() UnitID { return p.neighbor }

// Bound reports whether the port has a neighbour.
func (p *Port) Bound() bool { return p.neighbor != None }

// Open reports whether packets may leave through this port: it is bound and
// at least one node is reachable beyond it.
func (p *Port) Open() bool { return p.neighbor != None && len(p.interested) > 0 }

// Interests reports whether node id is reachable beyond this port.
func (p *Port) Interests(id UnitID) bool {
	_, ok := p.interested[id]
	return ok
}

// Interested returns the node IDs reachable beyond this port, ascending.
func (p *Port) Interested() []UnitID {
	ids := make([]UnitID, 0, len(p.interested))
	for id := range p.interested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CoveredBy reports whether every interested node is in set.
func (p *Port) CoveredBy(set map[UnitID]struct{}) bool {
	for id := range p.interested {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func (p *Port) add(id UnitID) bool {
	if _, ok := p.interested[id]; ok {
		return false
	}
	if p.interested == nil {
		p.interested = make(map[UnitID]struct{})
	}
	p.interested[id] = struct{}{}
	return true
}

// Unit is a grid cell occupant: a Node or a Junction.
type Unit struct {
	ID    UnitID
	Kind  Kind
	Pos   domain.Position
	ports [4]Port

	// Node-only fields.
	name   string
	family map[string]struct{}
}

func newUnit(id UnitID, kind Kind, pos domain.Position) *Unit {
	u := &Unit{ID: id, Kind: kind, Pos: pos}
	for _, d := range domain.Directions {
		u.ports[d].Dir = d
	}
	return u
}

// Name returns the ability name of a node, or "" for a junction.
func (u *Unit) Name() string { return u.name }

// IsNode reports whether the unit is an ability node.
func (u *Unit) IsNode() bool { return u.Kind == KindNode }

// Port returns the port facing d.
func (u *Unit) Port(d domain.Direction) *Port { return &u.ports[d] }

// Gateway returns the directions of every open port in N, S, E, W order.
func (u *Unit) Gateway() []domain.Direction {
	out := make([]domain.Direction, 0, len(u.ports))
	for _, d := range domain.Directions {
		if u.ports[d].Open() {
			out = append(out, d)
		}
	}
	return out
}

// Shape returns the gateway spelled as direction letters ("NS", "SEW", ...).
func (u *Unit) Shape() string {
	var b []byte
	for _, d := range u.Gateway() {
		b = append(b, d.String()...)
	}
	return string(b)
}

func (u *Unit) related(name string) bool {
	_, ok := u.family[name]
	return ok
}
