package memory_test

import (
	"testing"

	"github.com/aretw0/abilitree/pkg/adapters/memory"
	"github.com/aretw0/abilitree/pkg/domain"
	contract "github.com/aretw0/abilitree/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() *domain.Catalog {
	return &domain.Catalog{Classes: []domain.Class{
		{
			Name:   "warrior",
			Budget: 45,
			Abilities: []domain.Ability{
				{Name: "Bash", Exports: []string{"Charge"}, Cost: 1, Position: domain.Position{Row: 1, Col: 4}, Drafts: []string{"S"}},
				{Name: "Charge", Imports: []string{"Bash"}, Cost: 1, Position: domain.Position{Row: 3, Col: 4}, Drafts: []string{"N"}},
			},
		},
		{
			Name:      "archer",
			Budget:    10,
			Abilities: []domain.Ability{{Name: "Arrow Storm", Cost: 2}},
		},
	}}
}

func TestInMemoryLoader_Contract(t *testing.T) {
	contract.CatalogLoaderContractTest(t, memory.NewLoader(catalog()), catalog())
}

func TestNewFromClasses(t *testing.T) {
	loader, err := memory.NewFromClasses(catalog().Classes...)
	require.NoError(t, err)
	contract.CatalogLoaderContractTest(t, loader, catalog())

	_, err = memory.NewFromClasses(domain.Class{})
	assert.Error(t, err)

	_, err = memory.NewFromClasses(domain.Class{Name: "a"}, domain.Class{Name: "a"})
	assert.Error(t, err)
}

func TestGetClass_ReturnsCopy(t *testing.T) {
	loader := memory.NewLoader(catalog())

	c, err := loader.GetClass(t.Context(), "warrior")
	require.NoError(t, err)
	c.Abilities[0].Name = "Mutated"

	again, err := loader.GetClass(t.Context(), "warrior")
	require.NoError(t, err)
	assert.Equal(t, "Bash", again.Abilities[0].Name)
}
