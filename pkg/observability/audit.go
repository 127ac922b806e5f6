package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/abilitree/pkg/domain"
)

// AuditHooks logs every settled route, state change, rejection and reset.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRouteEnd: func(ctx context.Context, e *domain.RouteEvent) {
			logger.InfoContext(ctx, "route_end",
				"class", e.Class,
				"route", e.RouteID,
				"ability", e.Ability,
				"task", e.Task.String(),
				"hops", e.Hops,
				"transitions", e.Transitions,
			)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition",
				"class", e.Class,
				"route", e.RouteID,
				"ability", e.Ability,
				"from", e.From.String(),
				"to", e.To.String(),
			)
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			logger.InfoContext(ctx, "rejected", "class", e.Class, "ability", e.Ability, "reason", string(e.Reason))
		},
		OnReset: func(ctx context.Context, e *domain.EventBase) {
			logger.InfoContext(ctx, "reset", "class", e.Class)
		},
	}
}
