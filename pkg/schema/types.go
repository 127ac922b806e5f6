package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Type defines the contract for raw catalog field validation.
// Raw values come from YAML, JSON, TOML or Loam frontmatter, so every
// implementation accepts the shapes those decoders produce.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values, including whole floats (JSON) and
// json.Number (Loam strict mode).
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if v == math.Trunc(v) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	case json.Number:
		if _, err := v.Int64(); err != nil {
			return fmt.Errorf("expected int, got %q", v.String())
		}
		return nil
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// OneOrManyType accepts either a single element or a slice of elements.
// Catalogs write `import: Bash` as often as `import: [Bash]`.
type OneOrManyType struct {
	elemType Type
}

func (t *OneOrManyType) Name() string {
	return fmt.Sprintf("%s|[%s]", t.elemType.Name(), t.elemType.Name())
}

func (t *OneOrManyType) Validate(value any) error {
	if t.elemType.Validate(value) == nil {
		return nil
	}
	return (&SliceType{elemType: t.elemType}).Validate(value)
}

// ObjectType validates a nested map against its own schema.
type ObjectType struct {
	name   string
	fields Schema
}

func (t *ObjectType) Name() string { return t.name }

func (t *ObjectType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected %s object, got %T", t.name, value)
	}
	return Check(t.fields, m)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// OneOrMany creates a validator accepting one element or a slice of them.
func OneOrMany(elemType Type) Type {
	return &OneOrManyType{elemType: elemType}
}

// Object creates a validator for a nested map.
func Object(name string, fields Schema) Type {
	return &ObjectType{name: name, fields: fields}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
