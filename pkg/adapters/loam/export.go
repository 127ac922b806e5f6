package loam

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/loam/pkg/core"
)

// Export writes a catalog into repo using the directory layout Load reads:
// one _class document and one Markdown document per ability.
func Export(ctx context.Context, repo core.Repository, cat *domain.Catalog) error {
	for _, class := range cat.Classes {
		err := repo.Save(ctx, core.Document{
			ID: path.Join(class.Name, classDocument+".md"),
			Metadata: core.Metadata{
				"budget": class.Budget,
				"root":   class.Root,
			},
		})
		if err != nil {
			return fmt.Errorf("export class %q: %w", class.Name, err)
		}

		for _, a := range class.Abilities {
			err := repo.Save(ctx, core.Document{
				ID:       path.Join(class.Name, slug(a.Name)+".md"),
				Content:  a.Description,
				Metadata: abilityMetadata(a),
			})
			if err != nil {
				return fmt.Errorf("export ability %q: %w", a.Name, err)
			}
		}
	}
	return nil
}

func abilityMetadata(a domain.Ability) core.Metadata {
	m := core.Metadata{
		"name": a.Name,
		"cost": a.Cost,
		"row":  a.Position.Row,
		"col":  a.Position.Col,
	}
	lists := map[string][]string{
		"imports": a.Imports,
		"exports": a.Exports,
		"blocks":  a.Blocks,
		"drafts":  a.Drafts,
	}
	for key, values := range lists {
		if len(values) > 0 {
			m[key] = values
		}
	}
	strs := map[string]string{
		"required":     a.Required,
		"display_name": a.DisplayName,
		"combo":        a.Combo,
		"icon":         a.Icon,
	}
	for key, value := range strs {
		if value != "" {
			m[key] = value
		}
	}
	if a.Archetype != nil {
		m["archetype"] = map[string]any{"name": a.Archetype.Name, "min": a.Archetype.Min}
	}
	return m
}

// slug turns an ability name into a file name: "Tougher Skin" -> "tougher-skin".
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
