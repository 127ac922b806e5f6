package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseDraft(t *testing.T) {
	tests := []struct {
		draft   string
		want    []Direction
		wantErr bool
	}{
		{draft: "S", want: []Direction{South}},
		{draft: "NNNNE", want: []Direction{North, North, North, North, East}},
		{draft: "wsE", want: []Direction{West, South, East}},
		{draft: "", want: []Direction{}},
		{draft: "NX", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.draft, func(t *testing.T) {
			got, err := ParseDraft(tt.draft)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDraft(%q) expected error", tt.draft)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDraft(%q) unexpected error: %v", tt.draft, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDraft(%q) = %v, want %v", tt.draft, got, tt.want)
			}
		})
	}
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s: opposite is not an involution", d)
		}
		if d.Opposite() == d {
			t.Errorf("%s: opposite equals itself", d)
		}
	}
}

func TestPosition_Step(t *testing.T) {
	p := Position{Row: 3, Col: 4}
	for _, d := range Directions {
		if got := p.Step(d).Step(d.Opposite()); got != p {
			t.Errorf("step %s and back = %v, want %v", d, got, p)
		}
	}
	if got := p.Step(North); got != (Position{Row: 2, Col: 4}) {
		t.Errorf("north step = %v", got)
	}
	if !(Position{Row: 1, Col: 9}).Less(Position{Row: 2, Col: 0}) {
		t.Errorf("row-major order violated")
	}
}

func TestRejectionReason(t *testing.T) {
	err := error(&ActionRejectedError{Ability: "Bash", Reason: RejectBudget})
	if !errors.Is(err, ErrActionRejected) {
		t.Fatalf("expected errors.Is to match ErrActionRejected")
	}
	reason, ok := RejectionReason(err)
	if !ok || reason != RejectBudget {
		t.Errorf("RejectionReason() = %q, %v", reason, ok)
	}
	if _, ok := RejectionReason(ErrBusy); ok {
		t.Errorf("ErrBusy is not a rejection")
	}
}

func TestTask_IsQuery(t *testing.T) {
	if !TaskReachable.IsQuery() {
		t.Errorf("reachable? must be a query")
	}
	for _, task := range []Task{TaskEnable, TaskStandby, TaskDisable} {
		if task.IsQuery() {
			t.Errorf("%s must not be a query", task)
		}
	}
}
