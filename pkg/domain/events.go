package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRouteStart EventType = "route_start"
	EventRouteEnd   EventType = "route_end"
	EventTransition EventType = "transition"
	EventRejected   EventType = "rejected"
	EventQuery      EventType = "query"
	EventReset      EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Class     string    `json:"class"`
}

// RouteEvent marks the start or the end of one user action.
type RouteEvent struct {
	EventBase
	RouteID uint64 `json:"route_id"`
	Ability string `json:"ability"`
	Task    Task   `json:"task"`
	// Hops and Transitions are only set on EventRouteEnd.
	Hops        int `json:"hops,omitempty"`
	Transitions int `json:"transitions,omitempty"`
}

// TransitionEvent reports a single node state change.
type TransitionEvent struct {
	EventBase
	RouteID uint64    `json:"route_id"`
	Ability string    `json:"ability"`
	From    NodeState `json:"from"`
	To      NodeState `json:"to"`
}

// RejectEvent reports a click whose preconditions did not hold.
type RejectEvent struct {
	EventBase
	Ability string       `json:"ability"`
	Reason  RejectReason `json:"reason"`
}

// QueryEvent reports the answer of a reachability query.
type QueryEvent struct {
	EventBase
	RouteID   uint64 `json:"route_id"`
	Ability   string `json:"ability"`
	Reachable bool   `json:"reachable"`
	Cached    bool   `json:"cached"`
}

// LifecycleHooks defines callbacks for engine observability.
// Every hook is optional and is invoked synchronously.
type LifecycleHooks struct {
	OnRouteStart func(context.Context, *RouteEvent)
	OnRouteEnd   func(context.Context, *RouteEvent)
	OnTransition func(context.Context, *TransitionEvent)
	OnReject     func(context.Context, *RejectEvent)
	OnQuery      func(context.Context, *QueryEvent)
	OnReset      func(context.Context, *EventBase)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRouteStart: chain(h.OnRouteStart, other.OnRouteStart),
		OnRouteEnd:   chain(h.OnRouteEnd, other.OnRouteEnd),
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnReject:     chain(h.OnReject, other.OnReject),
		OnQuery:      chain(h.OnQuery, other.OnQuery),
		OnReset:      chain(h.OnReset, other.OnReset),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
