/*
Package observability provides tools for monitoring the abilitree engine.

Both helpers are plain domain.LifecycleHooks, so they compose with each other
and with application hooks through LifecycleHooks.Merge:

  - Collector records Prometheus metrics for clicks, rejections, transitions,
    route hops, reachability queries and resets.
  - AuditHooks writes every route and state change to a slog logger.
*/
package observability
