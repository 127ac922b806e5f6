package grid

import (
	"testing"

	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_FirstWriterWins(t *testing.T) {
	g := New()
	a := g.PlaceNode(&domain.Ability{Name: "A", Position: domain.Position{Row: 0, Col: 0}})
	b := g.PlaceNode(&domain.Ability{Name: "B", Position: domain.Position{Row: 0, Col: 2}})
	j := g.alloc(KindJunction, domain.Position{Row: 0, Col: 1})

	g.connect(j, domain.West, a)
	g.connect(j, domain.West, a) // same neighbour: silently accepted
	require.Empty(t, g.Violations())

	g.connect(j, domain.West, b)
	require.Len(t, g.Violations(), 1)
	assert.Equal(t, domain.ViolationRebind, g.Violations()[0].Kind)
	assert.Equal(t, a, j.Port(domain.West).Neighbor(), "original binding is kept")
}

func TestRefresh_InterestedGrowsMonotonically(t *testing.T) {
	g := New()
	hub := g.PlaceNode(&domain.Ability{Name: "Hub", Exports: []string{"L", "R"}, Position: domain.Position{Row: 0, Col: 1}})
	l := g.PlaceNode(&domain.Ability{Name: "L", Imports: []string{"Hub"}, Position: domain.Position{Row: 2, Col: 0}})
	r := g.PlaceNode(&domain.Ability{Name: "R", Imports: []string{"Hub"}, Position: domain.Position{Row: 2, Col: 2}})

	g.LayDraft(hub, "S")
	g.LayDraft(l, "NE")
	south := g.Unit(hub).Port(domain.South)
	assert.Equal(t, []UnitID{l}, south.Interested())

	g.LayDraft(r, "NW")
	assert.Equal(t, []UnitID{l, r}, south.Interested())
	assert.Empty(t, g.Violations())
}
