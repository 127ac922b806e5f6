package schema

import (
	"errors"
	"fmt"

	"github.com/aretw0/abilitree/pkg/domain"
)

// ErrInvalidCatalog is matched by every error returned from Validate.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Validate checks the structural soundness of a class: names are present and
// unique, numbers are in range and the explicit root exists.
//
// Wiring problems (bad drafts, unwired relations, dangling names) are not
// reported here. They are invariant violations collected when the tree is
// built, because a tree with them still runs.
func Validate(class *domain.Class) error {
	if class == nil {
		return fmt.Errorf("%w: nil class", ErrInvalidCatalog)
	}

	var errs []error
	fail := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: class.Name + "." + key, Reason: reason, Value: value})
	}

	if class.Name == "" {
		errs = append(errs, &ValidationError{Key: "class", Reason: "name is required"})
	}
	if class.Budget < 0 {
		fail("budget", "must not be negative", class.Budget)
	}
	if len(class.Abilities) == 0 {
		fail("abilities", "at least one ability is required", nil)
	}

	seen := make(map[string]struct{}, len(class.Abilities))
	for i, a := range class.Abilities {
		key := a.Name
		if key == "" {
			key = fmt.Sprintf("abilities[%d]", i)
			fail(key, "name is required", nil)
		} else if _, dup := seen[a.Name]; dup {
			fail(key, "duplicate ability name", nil)
		}
		seen[a.Name] = struct{}{}

		if a.Cost < 0 {
			fail(key+".cost", "must not be negative", a.Cost)
		}
		if a.Archetype != nil {
			if a.Archetype.Name == "" {
				fail(key+".archetype.name", "is required", nil)
			}
			if a.Archetype.Min < 0 {
				fail(key+".archetype.min", "must not be negative", a.Archetype.Min)
			}
		}
		if a.Required == a.Name && a.Name != "" {
			fail(key+".required", "an ability cannot require itself", a.Required)
		}
	}

	if class.Root != "" {
		if _, ok := seen[class.Root]; !ok {
			fail("root", fmt.Sprintf("names unknown ability %q", class.Root), class.Root)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, &AggregateError{Errors: errs})
	}
	return nil
}

// ValidateCatalog validates every class of a catalog.
func ValidateCatalog(cat *domain.Catalog) error {
	var errs []error
	for i := range cat.Classes {
		if err := Validate(&cat.Classes[i]); err != nil {
			errs = append(errs, ValidationErrors(err)...)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, &AggregateError{Errors: errs})
	}
	return nil
}
