package schema_test

import (
	"testing"

	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Success(t *testing.T) {
	class := &domain.Class{
		Name:   "warrior",
		Budget: 45,
		Root:   "Bash",
		Abilities: []domain.Ability{
			{Name: "Bash", Cost: 1},
			{Name: "Charge", Imports: []string{"Bash"}, Cost: 1, Archetype: &domain.Archetype{Name: "Fallen"}},
		},
	}
	assert.NoError(t, schema.Validate(class))
}

func TestValidate_Failures(t *testing.T) {
	class := &domain.Class{
		Name:   "warrior",
		Budget: -1,
		Root:   "Nope",
		Abilities: []domain.Ability{
			{Name: "Bash", Cost: -2},
			{Name: "Bash"},
			{Name: ""},
			{Name: "Loop", Required: "Loop"},
			{Name: "Odd", Archetype: &domain.Archetype{Min: -1}},
		},
	}

	err := schema.Validate(class)
	require.ErrorIs(t, err, schema.ErrInvalidCatalog)

	var keys []string
	for _, e := range schema.ValidationErrors(err) {
		keys = append(keys, e.(*schema.ValidationError).Key)
	}
	assert.ElementsMatch(t, []string{
		"warrior.budget",
		"warrior.Bash.cost",
		"warrior.Bash",
		"warrior.abilities[2]",
		"warrior.Loop.required",
		"warrior.Odd.archetype.name",
		"warrior.Odd.archetype.min",
		"warrior.root",
	}, keys)
}

func TestValidateCatalog(t *testing.T) {
	cat := &domain.Catalog{Classes: []domain.Class{
		{Name: "warrior", Abilities: []domain.Ability{{Name: "Bash"}}},
		{Name: "mage"},
	}}
	err := schema.ValidateCatalog(cat)
	require.ErrorIs(t, err, schema.ErrInvalidCatalog)
	require.Len(t, schema.ValidationErrors(err), 1)
}
