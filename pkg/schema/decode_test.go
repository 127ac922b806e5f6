package schema_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAbility_Aliases(t *testing.T) {
	raw := map[string]any{
		"import":   []any{"Charge"},
		"export":   "Uppercut",
		"block":    []any{"Tougher Skin"},
		"rely":     nil,
		"cost":     json.Number("1"),
		"archetype": map[string]any{
			"name": "Fallen",
			"req":  0.0,
		},
		"display": map[string]any{
			"name": "Vehement",
			"icon": "button_1",
			"row":  int64(7),
			"col":  2,
		},
		"draft": []any{"E", "S"},
	}

	a, err := schema.DecodeAbility("Vehement", raw)
	require.NoError(t, err)

	assert.Equal(t, domain.Ability{
		Name:        "Vehement",
		Imports:     []string{"Charge"},
		Exports:     []string{"Uppercut"},
		Blocks:      []string{"Tougher Skin"},
		Cost:        1,
		Archetype:   &domain.Archetype{Name: "Fallen", Min: 0},
		Position:    domain.Position{Row: 7, Col: 2},
		Drafts:      []string{"E", "S"},
		DisplayName: "Vehement",
		Icon:        "button_1",
	}, a)
}

func TestDecodeAbility_CanonicalKeys(t *testing.T) {
	a, err := schema.DecodeAbility("ignored", map[string]any{
		"name":     "Bash",
		"exports":  []any{"Spear Proficiency I"},
		"cost":     1,
		"position": map[string]any{"row": 1, "col": 4},
		"drafts":   "S",
		"combo":    "RLR",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bash", a.Name)
	assert.Equal(t, domain.Position{Row: 1, Col: 4}, a.Position)
	assert.Equal(t, []string{"S"}, a.Drafts)
	assert.Equal(t, "RLR", a.Combo)
	assert.Nil(t, a.Archetype)
}

func TestDecodeAbility_Errors(t *testing.T) {
	t.Run("Duplicate Alias", func(t *testing.T) {
		_, err := schema.DecodeAbility("Bash", map[string]any{
			"import":  []any{"A"},
			"imports": []any{"B"},
		})
		require.Error(t, err)
		errs := schema.ValidationErrors(err)
		require.Len(t, errs, 1)
		var ve *schema.ValidationError
		require.True(t, errors.As(errs[0], &ve))
		assert.Contains(t, ve.Key, "Bash.import")
	})

	t.Run("Wrong Types", func(t *testing.T) {
		_, err := schema.DecodeAbility("Bash", map[string]any{
			"cost":    "free",
			"display": map[string]any{"row": "top"},
		})
		require.Error(t, err)
		assert.Len(t, schema.ValidationErrors(err), 2)
	})
}

func TestDecodeClass(t *testing.T) {
	t.Run("Structured", func(t *testing.T) {
		class, err := schema.DecodeClass("warrior", map[string]any{
			"budget": 10,
			"root":   "Bash",
			"abilities": map[string]any{
				"Bash":   map[string]any{"cost": 1, "row": 1, "col": 4},
				"Charge": map[string]any{"import": "Bash", "cost": 1, "row": 3, "col": 4},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 10, class.Budget)
		assert.Equal(t, "Bash", class.Root)
		require.Len(t, class.Abilities, 2)
		assert.Equal(t, "Bash", class.Abilities[0].Name)
		assert.Equal(t, []string{"Bash"}, class.Abilities[1].Imports)
	})

	t.Run("Bare Ability Map", func(t *testing.T) {
		class, err := schema.DecodeClass("warrior", map[string]any{
			"Bash": map[string]any{"cost": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBudget, class.Budget)
		assert.Len(t, class.Abilities, 1)
	})

	t.Run("Not An Object", func(t *testing.T) {
		_, err := schema.DecodeClass("warrior", map[string]any{"Bash": "oops"})
		require.Error(t, err)
		errs := schema.ValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "warrior.Bash", errs[0].(*schema.ValidationError).Key)
	})
}

func TestDecodeCatalog_SkipsEmptyClasses(t *testing.T) {
	cat, err := schema.DecodeCatalog("atree", map[string]any{
		"archer":  map[string]any{},
		"warrior": map[string]any{"Bash": map[string]any{"cost": 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "atree", cat.Name)
	require.Len(t, cat.Classes, 1)
	assert.Equal(t, "warrior", cat.Classes[0].Name)

	cat, err = schema.DecodeCatalog("file", map[string]any{
		"name":    "Starter",
		"classes": map[string]any{"warrior": map[string]any{"Bash": map[string]any{}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Starter", cat.Name)
}
