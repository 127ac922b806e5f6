package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/abilitree/internal/grid"
	"github.com/aretw0/abilitree/pkg/domain"
)

// packet is the message exchanged between units during a route.
//
// exclude is shared between clones and must be treated as read-only once the
// packet is in flight; handlers that need a different set build a new packet.
type packet struct {
	task    domain.Task
	source  grid.UnitID
	exclude map[grid.UnitID]struct{}

	// router is the last node the packet passed through. Junctions never
	// overwrite it.
	router grid.UnitID
	// gate is the inbound side at the receiving unit.
	gate    domain.Direction
	hasGate bool
}

func newPacket(task domain.Task, source grid.UnitID, exclude map[grid.UnitID]struct{}) *packet {
	return &packet{task: task, source: source, exclude: exclude}
}

func (p *packet) clone() *packet {
	c := *p
	return &c
}

func (p *packet) excludes(id grid.UnitID) bool {
	_, ok := p.exclude[id]
	return ok
}

// route is the per-action context: created for one click and discarded once
// the cascade settles.
type route struct {
	ctx  context.Context
	id   uint64
	hops int

	// memo caches reachability answers by ability name.
	memo        map[string]bool
	// visiting holds the nodes whose reachability query is on the stack.
	visiting    map[grid.UnitID]struct{}
	// cuts counts queries refused because their node was already visiting.
	cuts        int
	transitions []domain.Transition
}

func newRoute(ctx context.Context, id uint64) *route {
	return &route{
		ctx:      ctx,
		id:       id,
		memo:     make(map[string]bool),
		visiting: make(map[grid.UnitID]struct{}),
	}
}

// Outcome summarizes one settled click.
type Outcome struct {
	RouteID     uint64              `json:"route_id"`
	Ability     string              `json:"ability"`
	Task        domain.Task         `json:"task"`
	Hops        int                 `json:"hops"`
	Transitions []domain.Transition `json:"transitions"`
}

// Changed returns the names of every ability whose state changed, in order.
func (o *Outcome) Changed() []string {
	out := make([]string, 0, len(o.Transitions))
	for _, tr := range o.Transitions {
		out = append(out, tr.Ability)
	}
	return out
}

func (o *Outcome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "route #%d <%s> %s (%d hops)", o.RouteID, o.Ability, o.Task, o.Hops)
	for _, tr := range o.Transitions {
		fmt.Fprintf(&b, "\n  %s: %s -> %s", tr.Ability, tr.From, tr.To)
	}
	return b.String()
}
