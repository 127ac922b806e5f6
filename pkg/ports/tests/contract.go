package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/ports"
)

// CatalogLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.CatalogLoader.
// want holds the catalog the adapter was seeded with.
func CatalogLoaderContractTest(t *testing.T, loader ports.CatalogLoader, want *domain.Catalog) {
	t.Helper()
	ctx := context.Background()

	// 1. Test ListClasses
	t.Run("ListClasses", func(t *testing.T) {
		names, err := loader.ListClasses(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing classes: %v", err)
		}
		if len(names) != len(want.Classes) {
			t.Fatalf("expected %d classes, got %d (%v)", len(want.Classes), len(names), names)
		}
		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("classes not sorted: %v", names)
			}
		}
	})

	// 2. Test GetClass (Success)
	t.Run("GetClass_Success", func(t *testing.T) {
		for _, wantClass := range want.Classes {
			got, err := loader.GetClass(ctx, wantClass.Name)
			if err != nil {
				t.Fatalf("unexpected error getting class %s: %v", wantClass.Name, err)
			}
			if got.Budget != wantClass.Budget {
				t.Errorf("budget mismatch for %s: got %d, want %d", wantClass.Name, got.Budget, wantClass.Budget)
			}
			if len(got.Abilities) != len(wantClass.Abilities) {
				t.Fatalf("ability count mismatch for %s: got %d, want %d", wantClass.Name, len(got.Abilities), len(wantClass.Abilities))
			}

			byName := make(map[string]domain.Ability, len(got.Abilities))
			for _, a := range got.Abilities {
				byName[a.Name] = a
			}
			for _, w := range wantClass.Abilities {
				g, ok := byName[w.Name]
				if !ok {
					t.Errorf("ability %s missing from class %s", w.Name, wantClass.Name)
					continue
				}
				if g.Position != w.Position || g.Cost != w.Cost || g.Required != w.Required {
					t.Errorf("ability %s mismatch: got %+v, want %+v", w.Name, g, w)
				}
				if len(g.Imports) != len(w.Imports) || len(g.Exports) != len(w.Exports) || len(g.Drafts) != len(w.Drafts) {
					t.Errorf("ability %s relations mismatch: got %+v, want %+v", w.Name, g, w)
				}
			}
		}
	})

	// 3. Test GetClass (NotFound)
	t.Run("GetClass_NotFound", func(t *testing.T) {
		_, err := loader.GetClass(ctx, "non-existent-class")
		if !errors.Is(err, domain.ErrUnknownClass) {
			t.Errorf("expected ErrUnknownClass, got %v", err)
		}
	})
}
