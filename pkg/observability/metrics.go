package observability

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes engine Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	ClicksTotal      *prometheus.CounterVec
	RejectionsTotal  *prometheus.CounterVec
	TransitionsTotal *prometheus.CounterVec
	QueriesTotal     *prometheus.CounterVec
	ResetsTotal      *prometheus.CounterVec
	RouteHops        *prometheus.HistogramVec
}

// NewCollector registers engine metrics against the provided registerer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.ClicksTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "abilitree_clicks_total",
		Help: "Accepted clicks, by class and the task they started.",
	}, []string{"class", "task"}), "abilitree_clicks_total"); err != nil {
		return nil, err
	}

	if c.RejectionsTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "abilitree_rejections_total",
		Help: "Clicks rejected because a precondition did not hold.",
	}, []string{"class", "reason"}), "abilitree_rejections_total"); err != nil {
		return nil, err
	}

	if c.TransitionsTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "abilitree_transitions_total",
		Help: "Node state changes, by target state.",
	}, []string{"class", "to"}), "abilitree_transitions_total"); err != nil {
		return nil, err
	}

	if c.QueriesTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "abilitree_reachability_queries_total",
		Help: "Reachability answers, split by result and whether the route memo served them.",
	}, []string{"class", "reachable", "cached"}), "abilitree_reachability_queries_total"); err != nil {
		return nil, err
	}

	if c.ResetsTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "abilitree_resets_total",
		Help: "Trees returned to their initial state.",
	}, []string{"class"}), "abilitree_resets_total"); err != nil {
		return nil, err
	}

	if c.RouteHops, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "abilitree_route_hops",
		Help:    "Packet hops needed to settle one click.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"class"}), "abilitree_route_hops"); err != nil {
		return nil, err
	}

	return c, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Hooks returns lifecycle hooks feeding the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	if c == nil {
		return domain.LifecycleHooks{}
	}
	return domain.LifecycleHooks{
		OnRouteStart: func(_ context.Context, e *domain.RouteEvent) {
			c.ClicksTotal.WithLabelValues(e.Class, e.Task.String()).Inc()
		},
		OnRouteEnd: func(_ context.Context, e *domain.RouteEvent) {
			c.RouteHops.WithLabelValues(e.Class).Observe(float64(e.Hops))
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			c.TransitionsTotal.WithLabelValues(e.Class, e.To.String()).Inc()
		},
		OnReject: func(_ context.Context, e *domain.RejectEvent) {
			c.RejectionsTotal.WithLabelValues(e.Class, string(e.Reason)).Inc()
		},
		OnQuery: func(_ context.Context, e *domain.QueryEvent) {
			c.QueriesTotal.WithLabelValues(e.Class, strconv.FormatBool(e.Reachable), strconv.FormatBool(e.Cached)).Inc()
		},
		OnReset: func(_ context.Context, e *domain.EventBase) {
			c.ResetsTotal.WithLabelValues(e.Class).Inc()
		},
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C, name string) (C, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero C
		return zero, err
	}
	return collector, nil
}
