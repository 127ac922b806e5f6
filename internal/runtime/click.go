package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/abilitree/pkg/domain"
)

// Click toggles the named ability between Standby and Enabled and runs the
// resulting cascade to completion before returning.
//
// A click whose preconditions do not hold returns an *domain.ActionRejectedError
// and leaves the tree untouched. A click arriving while another is still
// running returns domain.ErrBusy.
func (t *Tree) Click(ctx context.Context, name string) (out *Outcome, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !t.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer t.busy.Store(false)

	n, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAbility, name)
	}

	if err := t.examine(n); err != nil {
		reason, _ := domain.RejectionReason(err)
		t.logger.InfoContext(ctx, "click rejected", "ability", name, "reason", reason)
		t.emitReject(ctx, n, reason)
		return nil, err
	}

	t.nextRoute++
	rt := newRoute(ctx, t.nextRoute)
	task := domain.TaskEnable
	if n.state == domain.Enabled {
		task = domain.TaskStandby
	}

	defer func() {
		if r := recover(); r != nil {
			misuse, ok := r.(*domain.ProtocolMisuseError)
			if !ok {
				panic(r)
			}
			t.logger.ErrorContext(ctx, "route aborted", "route", rt.id, "error", misuse)
			out, err = nil, misuse
		}
	}()

	t.logger.DebugContext(ctx, "route start", "route", rt.id, "ability", name, "task", task)
	t.emitRouteStart(rt, n, task)

	switch task {
	case domain.TaskEnable:
		t.transition(rt, n, domain.Enabled)
		t.send(rt, n, newPacket(domain.TaskEnable, n.id, nil), n.unit.Gateway(), false)
	case domain.TaskStandby:
		t.transition(rt, n, domain.Standby)
		t.send(rt, n, newPacket(domain.TaskStandby, n.id, nil), n.unit.Gateway(), false)
	}

	t.logger.InfoContext(ctx, "route settled", "route", rt.id, "ability", name, "task", task,
		"hops", rt.hops, "transitions", len(rt.transitions), "remaining", t.ledger.Remaining())
	t.emitRouteEnd(rt, n, task)

	return &Outcome{
		RouteID:     rt.id,
		Ability:     name,
		Task:        task,
		Hops:        rt.hops,
		Transitions: rt.transitions,
	}, nil
}

// examine checks the preconditions of a click on n.
// Required, budget and archetype gates only apply when enabling.
func (t *Tree) examine(n *node) error {
	reject := func(reason domain.RejectReason, detail string) error {
		return &domain.ActionRejectedError{Ability: n.name(), Reason: reason, Detail: detail}
	}

	if n.locked() {
		return reject(domain.RejectLocked, "locked by "+strings.Join(n.lockers(), ", "))
	}
	switch n.state {
	case domain.Disabled:
		return reject(domain.RejectDisabled, "not reachable from an enabled ability")
	case domain.Enabled:
		return nil
	}

	if !n.requirementMet {
		return reject(domain.RejectRequired, fmt.Sprintf("requires <%s>", n.def.Required))
	}
	if !t.ledger.CanAfford(n.def.Cost) {
		return reject(domain.RejectBudget, fmt.Sprintf("costs %d, %d left", n.def.Cost, t.ledger.Remaining()))
	}
	if a := n.def.Archetype; a != nil && a.Name != "" {
		if have := t.ledger.ArchetypeCount(a.Name); have < a.Min {
			return reject(domain.RejectArchetype, fmt.Sprintf("needs %d %s abilities, have %d", a.Min, a.Name, have))
		}
	}
	return nil
}

// transition moves n to state to and applies the side effects of entering or
// leaving Enabled.
func (t *Tree) transition(rt *route, n *node, to domain.NodeState) {
	from := n.state
	if from == to {
		return
	}
	n.state = to

	switch {
	case to == domain.Enabled:
		t.activate(n)
	case from == domain.Enabled:
		t.deactivate(n)
	}

	tr := domain.Transition{Ability: n.name(), From: from, To: to}
	rt.transitions = append(rt.transitions, tr)
	t.logger.Debug("transition", "route", rt.id, "ability", n.name(), "from", from, "to", to)
	t.emitTransition(rt, tr)
}

func (t *Tree) activate(n *node) {
	t.ledger.Charge(n.def.Cost)
	if a := n.def.Archetype; a != nil {
		t.ledger.ArchetypeIncrement(a.Name)
	}
	for _, dep := range t.requiredBy[n.name()] {
		dep.requirementMet = true
	}
	for _, name := range n.def.Blocks {
		if other, ok := t.byName[name]; ok {
			other.lockedBy[n.name()] = struct{}{}
		}
	}
}

func (t *Tree) deactivate(n *node) {
	t.ledger.Refund(n.def.Cost)
	if a := n.def.Archetype; a != nil {
		t.ledger.ArchetypeDecrement(a.Name)
	}
	for _, dep := range t.requiredBy[n.name()] {
		dep.requirementMet = false
	}
	for _, name := range n.def.Blocks {
		if other, ok := t.byName[name]; ok {
			delete(other.lockedBy, n.name())
		}
	}
}

// Reset returns every node to its initial state and restores the ledger.
// It returns the transitions it applied.
func (t *Tree) Reset(ctx context.Context) ([]domain.Transition, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !t.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer t.busy.Store(false)

	before := t.Snapshot()
	t.restore()
	changes := domain.Diff(before, t.Snapshot())

	t.logger.InfoContext(ctx, "tree reset", "transitions", len(changes))
	t.emitReset(ctx)
	return changes, nil
}
