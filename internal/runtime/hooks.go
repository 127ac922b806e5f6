package runtime

import (
	"context"
	"time"

	"github.com/aretw0/abilitree/pkg/domain"
)

func (t *Tree) base(typ domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: typ, Class: t.class}
}

func (t *Tree) emitRouteStart(rt *route, n *node, task domain.Task) {
	if t.hooks.OnRouteStart == nil {
		return
	}
	t.hooks.OnRouteStart(rt.ctx, &domain.RouteEvent{
		EventBase: t.base(domain.EventRouteStart),
		RouteID:   rt.id,
		Ability:   n.name(),
		Task:      task,
	})
}

func (t *Tree) emitRouteEnd(rt *route, n *node, task domain.Task) {
	if t.hooks.OnRouteEnd == nil {
		return
	}
	t.hooks.OnRouteEnd(rt.ctx, &domain.RouteEvent{
		EventBase:   t.base(domain.EventRouteEnd),
		RouteID:     rt.id,
		Ability:     n.name(),
		Task:        task,
		Hops:        rt.hops,
		Transitions: len(rt.transitions),
	})
}

func (t *Tree) emitTransition(rt *route, tr domain.Transition) {
	if t.hooks.OnTransition == nil {
		return
	}
	t.hooks.OnTransition(rt.ctx, &domain.TransitionEvent{
		EventBase: t.base(domain.EventTransition),
		RouteID:   rt.id,
		Ability:   tr.Ability,
		From:      tr.From,
		To:        tr.To,
	})
}

func (t *Tree) emitQuery(rt *route, n *node, reachable, cached bool) {
	if t.hooks.OnQuery == nil {
		return
	}
	t.hooks.OnQuery(rt.ctx, &domain.QueryEvent{
		EventBase: t.base(domain.EventQuery),
		RouteID:   rt.id,
		Ability:   n.name(),
		Reachable: reachable,
		Cached:    cached,
	})
}

func (t *Tree) emitReject(ctx context.Context, n *node, reason domain.RejectReason) {
	if t.hooks.OnReject == nil {
		return
	}
	t.hooks.OnReject(ctx, &domain.RejectEvent{
		EventBase: t.base(domain.EventRejected),
		Ability:   n.name(),
		Reason:    reason,
	})
}

func (t *Tree) emitReset(ctx context.Context) {
	if t.hooks.OnReset == nil {
		return
	}
	e := t.base(domain.EventReset)
	t.hooks.OnReset(ctx, &e)
}
