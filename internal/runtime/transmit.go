package runtime

import (
	"github.com/aretw0/abilitree/internal/grid"
	"github.com/aretw0/abilitree/pkg/domain"
)

// send emits pkt from node n through gates. It is one hop of the route.
// With suspend set the fan-out stops at the first positive answer.
func (t *Tree) send(rt *route, n *node, pkt *packet, gates []domain.Direction, suspend bool) bool {
	rt.hops++
	hop := rt.hops
	t.logger.Debug("hop start", "route", rt.id, "hop", hop, "node", n.name(), "task", pkt.task, "gates", len(gates))
	resp := t.relay(rt, n.unit, pkt, gates, suspend)
	t.logger.Debug("hop end", "route", rt.id, "hop", hop, "node", n.name(), "task", pkt.task, "response", resp)
	return resp
}

// relay forwards pkt out of u through each of gates and ORs the answers.
// A gate is skipped when every node beyond it is excluded.
func (t *Tree) relay(rt *route, u *grid.Unit, pkt *packet, gates []domain.Direction, suspend bool) bool {
	var resp bool
	for _, d := range gates {
		port := u.Port(d)
		if !port.Open() || port.CoveredBy(pkt.exclude) {
			continue
		}
		out := pkt
		if len(gates) > 1 {
			out = pkt.clone()
		}
		if u.IsNode() {
			out.router = u.ID
		}
		out.gate, out.hasGate = d.Opposite(), true
		if t.receive(rt, port.Neighbor(), out, suspend) {
			resp = true
			if suspend {
				break
			}
		}
	}
	return resp
}

// receive delivers pkt to unit id. Junctions relay through every open port
// except the one the packet came in on; nodes handle it.
func (t *Tree) receive(rt *route, id grid.UnitID, pkt *packet, suspend bool) bool {
	u := t.grid.Unit(id)
	if u == nil {
		panic(&domain.ProtocolMisuseError{Task: pkt.task, Detail: "packet addressed to a unit outside the grid"})
	}
	if !u.IsNode() {
		gates := u.Gateway()
		out := gates[:0:0]
		for _, d := range gates {
			if !pkt.hasGate || d != pkt.gate {
				out = append(out, d)
			}
		}
		return t.relay(rt, u, pkt, out, suspend)
	}
	if id == pkt.router {
		// Looped back through the junction network.
		if pkt.task.IsQuery() {
			rt.cuts++
		}
		return false
	}
	return t.handle(rt, t.nodes[id], pkt)
}

// handle applies pkt to node n and returns its answer. Only queries can
// answer true.
func (t *Tree) handle(rt *route, n *node, pkt *packet) bool {
	router := t.nodes[pkt.router]
	switch pkt.task {
	case domain.TaskEnable:
		if n.state == domain.Disabled && router != nil && n.def.ImportsFrom(router.name()) {
			t.transition(rt, n, domain.Standby)
		}
		return false

	case domain.TaskStandby, domain.TaskDisable:
		if n.state == domain.Disabled || router == nil || !n.def.ImportsFrom(router.name()) {
			return false
		}
		if t.reachable(rt, n, pkt) {
			return false
		}
		t.transition(rt, n, domain.Disabled)
		t.send(rt, n, newPacket(domain.TaskDisable, n.id, nil), t.exportGates(n), false)
		return false

	case domain.TaskReachable:
		// Only a supplier of the asking node may vouch for it.
		if n.state != domain.Enabled || router == nil || !router.def.ImportsFrom(n.name()) {
			return false
		}
		return t.reachable(rt, n, pkt)
	}

	panic(&domain.ProtocolMisuseError{Task: pkt.task, Node: n.name(), Detail: "unhandled task"})
}

// reachable reports whether n is still supported by an enabled chain of
// imports reaching an ability with no imports.
//
// A query that runs into a node already on the query stack is cut. A false
// answer reached through a cut only holds for the current stack, so it is
// returned but not memoized; true answers and uncut false answers hold for
// the rest of the route.
func (t *Tree) reachable(rt *route, n *node, pkt *packet) bool {
	if len(n.def.Imports) == 0 {
		return true
	}
	if ok, cached := rt.memo[n.name()]; cached {
		t.emitQuery(rt, n, ok, true)
		return ok
	}
	if _, ok := rt.visiting[n.id]; ok {
		rt.cuts++
		return false
	}

	active := t.activeImports(n)
	if len(active) == 0 {
		rt.memo[n.name()] = false
		t.emitQuery(rt, n, false, false)
		return false
	}

	exclude := make(map[grid.UnitID]struct{}, len(pkt.exclude))
	for id := range pkt.exclude {
		exclude[id] = struct{}{}
	}
	for name, ok := range rt.memo {
		if other, known := t.byName[name]; known && !ok {
			exclude[other.id] = struct{}{}
		}
	}
	if router := t.nodes[pkt.router]; router != nil && router.state != domain.Enabled {
		exclude[router.id] = struct{}{}
	}

	gates := t.importGates(n, true)
	cuts := rt.cuts
	rt.visiting[n.id] = struct{}{}
	ok := t.send(rt, n, newPacket(domain.TaskReachable, pkt.source, exclude), gates, true)
	delete(rt.visiting, n.id)

	if ok || rt.cuts == cuts {
		rt.memo[n.name()] = ok
	}
	t.emitQuery(rt, n, ok, false)
	return ok
}

// activeImports returns the enabled abilities n imports from.
func (t *Tree) activeImports(n *node) []*node {
	var out []*node
	for _, name := range n.def.Imports {
		if imp, ok := t.byName[name]; ok && imp.state == domain.Enabled {
			out = append(out, imp)
		}
	}
	return out
}

// importGates returns the open ports of n leading to an import. With
// enabledOnly set, a port must also lead to at least one enabled node.
func (t *Tree) importGates(n *node, enabledOnly bool) []domain.Direction {
	var out []domain.Direction
	for _, d := range n.unit.Gateway() {
		var toImport, toEnabled bool
		for _, id := range n.unit.Port(d).Interested() {
			other := t.nodes[id]
			if other == nil {
				continue
			}
			if n.def.ImportsFrom(other.name()) {
				toImport = true
			}
			if other.state == domain.Enabled {
				toEnabled = true
			}
		}
		if toImport && (toEnabled || !enabledOnly) {
			out = append(out, d)
		}
	}
	return out
}

// exportGates returns the open ports of n leading to an export.
func (t *Tree) exportGates(n *node) []domain.Direction {
	var out []domain.Direction
	for _, d := range n.unit.Gateway() {
		for _, id := range n.unit.Port(d).Interested() {
			if other := t.nodes[id]; other != nil && n.def.ExportsTo(other.name()) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
