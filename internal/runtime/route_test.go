package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/abilitree/internal/grid"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []domain.Ability {
	p := func(r, c int) domain.Position { return domain.Position{Row: r, Col: c} }
	return []domain.Ability{
		{Name: "A", Exports: []string{"B", "C"}, Cost: 1, Position: p(0, 2), Drafts: []string{"SWW", "SEE"}},
		{Name: "B", Imports: []string{"A"}, Exports: []string{"D"}, Cost: 1, Position: p(2, 0), Drafts: []string{"NEE", "SEE"}},
		{Name: "C", Imports: []string{"A"}, Exports: []string{"D"}, Cost: 1, Position: p(2, 4), Drafts: []string{"NWW", "SWW"}},
		{Name: "D", Imports: []string{"B", "C"}, Cost: 1, Position: p(4, 2), Drafts: []string{"NWW", "NEE"}},
	}
}

func TestReachable_MemoizedPerRoute(t *testing.T) {
	var queries []*domain.QueryEvent
	tree, _, err := NewTree("test", square(), ledger.New(10), WithLifecycleHooks(domain.LifecycleHooks{
		OnQuery: func(_ context.Context, e *domain.QueryEvent) { queries = append(queries, e) },
	}))
	require.NoError(t, err)

	for _, name := range []string{"A", "B", "C", "D"} {
		_, err := tree.Click(t.Context(), name)
		require.NoError(t, err)
	}

	d := tree.byName["D"]
	rt := newRoute(t.Context(), 99)
	pkt := newPacket(domain.TaskStandby, d.id, nil)

	first := tree.reachable(rt, d, pkt)
	hops := rt.hops
	second := tree.reachable(rt, d, pkt)

	assert.True(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, hops, rt.hops, "a cached answer sends nothing")
	require.NotEmpty(t, queries)
	last := queries[len(queries)-1]
	assert.True(t, last.Cached)
	assert.Equal(t, "D", last.Ability)
	assert.Empty(t, rt.transitions, "queries never mutate")
}

func TestReachable_CycleGuard(t *testing.T) {
	tree, _, err := NewTree("test", square(), ledger.New(10))
	require.NoError(t, err)
	for _, name := range []string{"A", "B", "D"} {
		_, err := tree.Click(t.Context(), name)
		require.NoError(t, err)
	}

	d := tree.byName["D"]
	rt := newRoute(t.Context(), 1)
	rt.visiting[d.id] = struct{}{}
	assert.False(t, tree.reachable(rt, d, newPacket(domain.TaskReachable, d.id, nil)))
	_, cached := rt.memo["D"]
	assert.False(t, cached, "a cut query is not memoized")
}

func TestHandle_UnknownTaskPanics(t *testing.T) {
	tree, _, err := NewTree("test", square(), ledger.New(10))
	require.NoError(t, err)

	a := tree.byName["A"]
	rt := newRoute(t.Context(), 1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		misuse, ok := r.(*domain.ProtocolMisuseError)
		require.True(t, ok, "panic value %T", r)
		assert.ErrorIs(t, misuse, domain.ErrProtocolMisuse)
		assert.Equal(t, "A", misuse.Node)
	}()
	tree.handle(rt, a, newPacket(domain.Task(42), a.id, nil))
}

func TestRelay_SkipsExcludedPorts(t *testing.T) {
	tree, _, err := NewTree("test", square(), ledger.New(10))
	require.NoError(t, err)

	a := tree.byName["A"]
	b := tree.byName["B"]
	c := tree.byName["C"]

	// Every node beyond A's only port is excluded: nothing leaves A.
	rt := newRoute(t.Context(), 1)
	pkt := newPacket(domain.TaskEnable, a.id, map[grid.UnitID]struct{}{b.id: {}, c.id: {}})
	tree.send(rt, a, pkt, a.unit.Gateway(), false)
	assert.Equal(t, 1, rt.hops)
	assert.Empty(t, rt.transitions)

	rt = newRoute(t.Context(), 2)
	tree.send(rt, a, newPacket(domain.TaskEnable, a.id, map[grid.UnitID]struct{}{b.id: {}}), a.unit.Gateway(), false)
	require.Len(t, rt.transitions, 1)
	assert.Equal(t, "C", rt.transitions[0].Ability)
}

// siblings pairs two rows of abilities. The bottom row imports from the top
// row and its neighbours supply each other:
//
//	R + A + B
//	+ . + . +
//	P + Q + S
//
// P and Q, and Q and S, import from each other.
func siblings() []domain.Ability {
	p := func(r, c int) domain.Position { return domain.Position{Row: r, Col: c} }
	return []domain.Ability{
		{Name: "R", Exports: []string{"A", "P"}, Cost: 1, Position: p(0, 0), Drafts: []string{"E", "S"}},
		{Name: "A", Imports: []string{"R"}, Exports: []string{"B", "Q"}, Cost: 1, Position: p(0, 2), Drafts: []string{"W", "E", "S"}},
		{Name: "B", Imports: []string{"A"}, Exports: []string{"S"}, Cost: 1, Position: p(0, 4), Drafts: []string{"W", "S"}},
		{Name: "P", Imports: []string{"R", "Q"}, Exports: []string{"Q"}, Cost: 1, Position: p(2, 0), Drafts: []string{"N", "E"}},
		{Name: "Q", Imports: []string{"A", "P", "S"}, Exports: []string{"P", "S"}, Cost: 1, Position: p(2, 2), Drafts: []string{"N", "W", "E"}},
		{Name: "S", Imports: []string{"B", "Q"}, Exports: []string{"Q"}, Cost: 1, Position: p(2, 4), Drafts: []string{"N", "W"}},
	}
}

func TestReachable_CutAnswersAreNotMemoized(t *testing.T) {
	tree, violations, err := NewTree("test", siblings(), ledger.New(10))
	require.NoError(t, err)
	require.Empty(t, violations)
	for _, name := range []string{"R", "A", "Q", "P", "S"} {
		_, err := tree.Click(t.Context(), name)
		require.NoError(t, err)
	}

	q := tree.byName["Q"]
	s := tree.byName["S"]

	// Q is asking: S can only answer through Q, so the query is cut.
	rt := newRoute(t.Context(), 1)
	rt.visiting[q.id] = struct{}{}
	pkt := newPacket(domain.TaskReachable, q.id, nil)
	pkt.router = q.id
	assert.False(t, tree.reachable(rt, s, pkt))
	assert.Equal(t, 1, rt.cuts)
	_, cached := rt.memo["S"]
	assert.False(t, cached, "an answer that ran into a cut is not memoized")

	// Asked again once Q is off the stack, S finds its way through Q.
	delete(rt.visiting, q.id)
	assert.True(t, tree.reachable(rt, s, newPacket(domain.TaskStandby, s.id, nil)))
	assert.True(t, rt.memo["S"])
	assert.True(t, rt.memo["Q"])
}

func TestClick_MutualSiblingsKeepSupport(t *testing.T) {
	var falses []string
	tree, _, err := NewTree("test", siblings(), ledger.New(10), WithLifecycleHooks(domain.LifecycleHooks{
		OnQuery: func(_ context.Context, e *domain.QueryEvent) {
			if !e.Reachable {
				falses = append(falses, e.Ability)
			}
		},
	}))
	require.NoError(t, err)
	for _, name := range []string{"R", "A", "Q", "P", "S"} {
		_, err := tree.Click(t.Context(), name)
		require.NoError(t, err)
	}

	out, err := tree.Click(t.Context(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, out.Changed())

	for name, want := range map[string]domain.NodeState{
		"R": domain.Enabled,
		"A": domain.Standby,
		"B": domain.Disabled,
		"P": domain.Enabled,
		"Q": domain.Enabled,
		"S": domain.Enabled,
	} {
		got, err := tree.State(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "<%s>", name)
	}
	assert.Equal(t, 6, tree.Ledger().Remaining())
	assert.Contains(t, falses, "B")
}
