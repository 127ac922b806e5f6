package dsl

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/ledger"
)

func diamond() *Builder {
	b := New("test")
	c := b.Class("warrior").Budget(10)

	c.Ability("A").At(0, 2).Cost(1)
	c.Ability("B").At(2, 0).Cost(1).Archetype("fury", 0)
	c.Ability("C").At(2, 4).Cost(1).Blocks("B")
	c.Ability("D").At(4, 2).Cost(2).Requires("A").Display("Dragon", "RRL")

	c.Link("A", "B", "SWW").
		Link("A", "C", "SEE").
		Link("B", "D", "SEE").
		Link("C", "D", "SWW")
	return b
}

func TestBuilder_Link(t *testing.T) {
	cat, err := diamond().Catalog()
	if err != nil {
		t.Fatalf("Catalog() failed: %v", err)
	}
	if len(cat.Classes) != 1 {
		t.Fatalf("Expected 1 class, got %d", len(cat.Classes))
	}

	byName := make(map[string]domain.Ability)
	for _, a := range cat.Classes[0].Abilities {
		byName[a.Name] = a
	}

	a := byName["A"]
	if !reflect.DeepEqual(a.Exports, []string{"B", "C"}) {
		t.Errorf("A exports = %v", a.Exports)
	}
	if !reflect.DeepEqual(a.Drafts, []string{"SWW", "SEE"}) {
		t.Errorf("A drafts = %v", a.Drafts)
	}

	d := byName["D"]
	if !reflect.DeepEqual(d.Imports, []string{"B", "C"}) {
		t.Errorf("D imports = %v", d.Imports)
	}
	if !reflect.DeepEqual(d.Drafts, []string{"NWW", "NEE"}) {
		t.Errorf("D drafts = %v, want the reverse walks", d.Drafts)
	}
	if d.Required != "A" || d.Label() != "Dragon" || d.Combo != "RRL" {
		t.Errorf("D metadata = %+v", d)
	}
}

func TestBuilder_BuildsRunnableTree(t *testing.T) {
	loader, err := diamond().Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	class, err := loader.GetClass(context.Background(), "warrior")
	if err != nil {
		t.Fatalf("GetClass() failed: %v", err)
	}
	tree, violations, err := runtime.NewTree(class.Name, class.Abilities, ledger.New(class.Budget))
	if err != nil {
		t.Fatalf("NewTree() failed: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("Expected a clean grid, got %v", violations)
	}

	for _, name := range []string{"A", "B"} {
		if _, err := tree.Click(context.Background(), name); err != nil {
			t.Fatalf("Click(%s) failed: %v", name, err)
		}
	}
	if state, _ := tree.State("D"); state != domain.Standby {
		t.Errorf("Expected D standby after B, got %s", state)
	}
}

func TestBuilder_SameNameReturnsBuilder(t *testing.T) {
	b := New("test")
	c := b.Class("warrior")
	if b.Class("warrior") != c {
		t.Error("Class() should return the existing builder")
	}
	ab := c.Ability("Bash").Imports("X").Imports("X")
	if c.Ability("Bash") != ab {
		t.Error("Ability() should return the existing builder")
	}
	if got := ab.Build().Imports; len(got) != 1 {
		t.Errorf("Imports should be deduplicated, got %v", got)
	}
	if ab.Class() != c {
		t.Error("Class() should lead back to the class builder")
	}
	class, err := c.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if class.Budget != domain.DefaultBudget {
		t.Errorf("Expected default budget, got %d", class.Budget)
	}
}

func TestBuilder_LinkErrors(t *testing.T) {
	b := New("test")
	c := b.Class("warrior")
	c.Ability("A").At(0, 0)
	c.Link("A", "Ghost", "S")
	if _, err := b.Build(); !errors.Is(err, domain.ErrUnknownAbility) {
		t.Errorf("Expected ErrUnknownAbility, got %v", err)
	}

	b = New("test")
	c = b.Class("warrior")
	c.Ability("A").At(0, 0)
	c.Ability("B").At(5, 5)
	c.Link("A", "B", "S")
	if _, err := b.Build(); err == nil {
		t.Error("Expected an error for a draft that does not reach B")
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		from, to domain.Position
		draft    string
		want     string
	}{
		{domain.Position{Row: 1, Col: 4}, domain.Position{Row: 3, Col: 4}, "S", "N"},
		{domain.Position{Row: 0, Col: 2}, domain.Position{Row: 2, Col: 0}, "SWW", "NEE"},
		{domain.Position{Row: 0, Col: 0}, domain.Position{Row: 0, Col: 4}, "EEE", "WWW"},
	}
	for _, tt := range tests {
		got, err := Reverse(tt.from, tt.to, tt.draft)
		if err != nil {
			t.Errorf("Reverse(%q) failed: %v", tt.draft, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Reverse(%q) = %q, want %q", tt.draft, got, tt.want)
		}
	}

	if _, err := Reverse(domain.Position{}, domain.Position{Row: 2}, ""); err == nil {
		t.Error("Expected an error for an empty draft")
	}
	if _, err := Reverse(domain.Position{}, domain.Position{Row: 2}, "X"); err == nil {
		t.Error("Expected an error for an invalid token")
	}
}
