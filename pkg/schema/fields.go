package schema

import (
	"fmt"
	"sort"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Check validates the fields of data that the schema knows about.
// Absent and null fields are accepted; unknown fields are ignored.
func Check(schema Schema, data map[string]any) error {
	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		if err := schema[key].Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Position is the schema of a grid position.
var Position = Schema{
	"row": Int(),
	"col": Int(),
}

// Archetype is the schema of an archetype reference.
var Archetype = Schema{
	"name": String(),
	"min":  Int(),
}

// Ability is the canonical schema of one ability, after aliases are resolved.
var Ability = Schema{
	"name":         String(),
	"imports":      OneOrMany(String()),
	"exports":      OneOrMany(String()),
	"blocks":       OneOrMany(String()),
	"required":     String(),
	"cost":         Int(),
	"archetype":    Object("archetype", Archetype),
	"position":     Object("position", Position),
	"drafts":       OneOrMany(String()),
	"display_name": String(),
	"combo":        String(),
	"icon":         String(),
	"description":  String(),
}

// Class is the schema of the per-class settings.
var Class = Schema{
	"budget": Int(),
	"root":   String(),
}

// abilityAliases maps accepted spellings to their canonical key.
var abilityAliases = map[string]string{
	"import": "imports",
	"export": "exports",
	"block":  "blocks",
	"rely":   "required",
	"draft":  "drafts",
}

// Normalize resolves the aliases of a raw ability document into canonical
// keys. Null values are dropped. The display block is flattened:
// display.name becomes display_name and display.row/col become position.
func Normalize(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	var errs []error

	set := func(key, from string, value any) {
		if value == nil {
			return
		}
		if _, dup := out[key]; dup {
			errs = append(errs, &ValidationError{Key: from, Reason: fmt.Sprintf("duplicates %q", key), Value: value})
			return
		}
		out[key] = value
	}

	pos := make(map[string]any)
	for key, value := range raw {
		switch key {
		case "display":
			display, ok := value.(map[string]any)
			if !ok {
				if value != nil {
					errs = append(errs, &ValidationError{Key: key, Reason: "expected object", Value: value})
				}
				continue
			}
			for k, v := range display {
				switch k {
				case "name":
					set("display_name", "display.name", v)
				case "row", "col":
					if v != nil {
						pos[k] = v
					}
				default:
					set(k, "display."+k, v)
				}
			}
		case "row", "col":
			if value != nil {
				pos[key] = value
			}
		case "archetype":
			set("archetype", key, normalizeArchetype(value))
		default:
			if canonical, ok := abilityAliases[key]; ok {
				set(canonical, key, value)
				continue
			}
			set(key, key, value)
		}
	}

	if len(pos) > 0 {
		set("position", "display", pos)
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

func normalizeArchetype(value any) any {
	m, ok := value.(map[string]any)
	if !ok {
		return value
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == "req" {
			k = "min"
		}
		out[k] = v
	}
	return out
}
