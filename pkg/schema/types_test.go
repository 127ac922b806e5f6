package schema

import (
	"encoding/json"
	"testing"
)

func TestIntType(t *testing.T) {
	typ := Int()

	if typ.Name() != "int" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "int")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int64(42), false},
		{uint8(1), false},
		{42.0, false},
		{json.Number("7"), false},
		{json.Number("7.5"), true},
		{3.14, true},
		{"42", true},
		{true, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestOneOrManyType(t *testing.T) {
	typ := OneOrMany(String())

	if typ.Name() != "string|[string]" {
		t.Errorf("Name() = %q", typ.Name())
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"Bash", false},
		{[]any{"Bash", "Charge"}, false},
		{[]string{"N", "S"}, false},
		{[]any{"Bash", 3}, true},
		{3, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestObjectType(t *testing.T) {
	typ := Object("position", Position)

	if err := typ.Validate(map[string]any{"row": 1, "col": 4}); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := typ.Validate(map[string]any{"row": "one"}); err == nil {
		t.Error("Validate() should reject a string row")
	}
	if err := typ.Validate([]any{1, 4}); err == nil {
		t.Error("Validate() should reject a non-object")
	}
}

func TestCheck_IgnoresAbsentAndNull(t *testing.T) {
	err := Check(Ability, map[string]any{
		"name":     "Bash",
		"cost":     nil,
		"unknown":  struct{}{},
		"required": nil,
	})
	if err != nil {
		t.Errorf("Check() error = %v, want nil", err)
	}
}

func TestCheck_CollectsEveryFailure(t *testing.T) {
	err := Check(Ability, map[string]any{
		"name": 12,
		"cost": "one",
	})
	if err == nil {
		t.Fatal("Check() should fail")
	}
	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), err)
	}
	// Keys are checked in sorted order.
	if ve := errs[0].(*ValidationError); ve.Key != "cost" {
		t.Errorf("first key = %q, want cost", ve.Key)
	}
}
