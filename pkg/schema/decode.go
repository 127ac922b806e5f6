package schema

import (
	"fmt"
	"sort"

	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// DecodeAbility turns a raw ability document into a domain.Ability.
// name is used when the document does not carry its own name.
func DecodeAbility(name string, raw map[string]any) (domain.Ability, error) {
	var a domain.Ability

	fields, err := Normalize(raw)
	if err != nil {
		return a, prefix(name, err)
	}
	if err := Check(Ability, fields); err != nil {
		return a, prefix(name, err)
	}
	if err := decode(fields, &a); err != nil {
		return a, fmt.Errorf("ability %q: %w", name, err)
	}
	if a.Name == "" {
		a.Name = name
	}
	return a, nil
}

// DecodeClass turns a raw class document into a domain.Class.
//
// Two shapes are accepted: a map with "abilities" plus optional "budget" and
// "root", or a bare map of ability name to ability document.
func DecodeClass(name string, raw map[string]any) (*domain.Class, error) {
	class := &domain.Class{Name: name, Budget: domain.DefaultBudget}

	abilities := raw
	if nested, ok := raw["abilities"]; ok {
		m, ok := nested.(map[string]any)
		if !ok && nested != nil {
			return nil, fmt.Errorf("class %q: abilities: expected object, got %T", name, nested)
		}
		abilities = m
		if err := Check(Class, raw); err != nil {
			return nil, prefix(name, err)
		}
		settings := struct {
			Budget *int   `mapstructure:"budget"`
			Root   string `mapstructure:"root"`
		}{}
		if err := decode(map[string]any{"budget": raw["budget"], "root": raw["root"]}, &settings); err != nil {
			return nil, fmt.Errorf("class %q: %w", name, err)
		}
		if settings.Budget != nil {
			class.Budget = *settings.Budget
		}
		class.Root = settings.Root
	}

	names := make([]string, 0, len(abilities))
	for key := range abilities {
		names = append(names, key)
	}
	sort.Strings(names)

	var errs []error
	for _, key := range names {
		doc, ok := abilities[key].(map[string]any)
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "expected ability object", Value: abilities[key]})
			continue
		}
		a, err := DecodeAbility(key, doc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		class.Abilities = append(class.Abilities, a)
	}
	if len(errs) > 0 {
		return nil, prefix(name, &AggregateError{Errors: errs})
	}
	return class, nil
}

// DecodeCatalog turns a raw catalog into a domain.Catalog. The catalog is
// either {"name": ..., "classes": {...}} or a bare map of class name to class.
// Classes without abilities are skipped.
func DecodeCatalog(name string, raw map[string]any) (*domain.Catalog, error) {
	cat := &domain.Catalog{Name: name}

	classes := raw
	if nested, ok := raw["classes"].(map[string]any); ok {
		classes = nested
		if n, ok := raw["name"].(string); ok && n != "" {
			cat.Name = n
		}
	}

	keys := make([]string, 0, len(classes))
	for key := range classes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		doc, ok := classes[key].(map[string]any)
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "expected class object", Value: classes[key]})
			continue
		}
		class, err := DecodeClass(key, doc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(class.Abilities) == 0 {
			continue
		}
		cat.Classes = append(cat.Classes, *class)
	}
	if len(errs) > 0 {
		return nil, flatten(errs)
	}
	return cat, nil
}
