package runtime_test

import (
	"testing"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/ledger"
	"github.com/stretchr/testify/require"
)

func pos(row, col int) domain.Position { return domain.Position{Row: row, Col: col} }

// chain is A -> B -> C stacked vertically, one junction between each pair.
func chain() []domain.Ability {
	return []domain.Ability{
		{Name: "A", Exports: []string{"B"}, Cost: 1, Position: pos(1, 4), Drafts: []string{"S"}},
		{Name: "B", Imports: []string{"A"}, Exports: []string{"C"}, Cost: 1, Position: pos(3, 4), Drafts: []string{"N", "S"}},
		{Name: "C", Imports: []string{"B"}, Cost: 1, Position: pos(5, 4), Drafts: []string{"N"}},
	}
}

// diamond is A -> {B, C} -> D:
//
//	. . A . .
//	+ + + + +
//	B . . . C
//	+ + + + +
//	. . D . .
func diamond() []domain.Ability {
	return []domain.Ability{
		{Name: "A", Exports: []string{"B", "C"}, Cost: 1, Position: pos(0, 2), Drafts: []string{"SWW", "SEE"}},
		{Name: "B", Imports: []string{"A"}, Exports: []string{"D"}, Cost: 1, Position: pos(2, 0), Drafts: []string{"NEE", "SEE"}},
		{Name: "C", Imports: []string{"A"}, Exports: []string{"D"}, Cost: 1, Position: pos(2, 4), Drafts: []string{"NWW", "SWW"}},
		{Name: "D", Imports: []string{"B", "C"}, Cost: 1, Position: pos(4, 2), Drafts: []string{"NWW", "NEE"}},
	}
}

func newTree(t *testing.T, abilities []domain.Ability, budget int, opts ...runtime.Option) *runtime.Tree {
	t.Helper()
	tree, violations, err := runtime.NewTree("test", abilities, ledger.New(budget), opts...)
	require.NoError(t, err)
	require.Empty(t, violations)
	return tree
}

func click(t *testing.T, tree *runtime.Tree, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := tree.Click(t.Context(), name)
		require.NoError(t, err, "click <%s>", name)
	}
}

func states(t *testing.T, tree *runtime.Tree) map[string]domain.NodeState {
	t.Helper()
	out := make(map[string]domain.NodeState)
	for _, n := range tree.Nodes() {
		out[n.Name] = n.State
	}
	return out
}

// spent sums the cost of every enabled node.
func spent(tree *runtime.Tree) int {
	total := 0
	for _, n := range tree.Nodes() {
		if n.State == domain.Enabled {
			total += n.Cost
		}
	}
	return total
}
