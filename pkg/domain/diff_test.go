package domain

import (
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		before Snapshot
		after  Snapshot
		want   []Transition
	}{
		{
			name:   "Initial Load (Before is Nil)",
			before: nil,
			after:  Snapshot{"Bash": Standby, "Charge": Disabled},
			want:   []Transition{{Ability: "Bash", From: Disabled, To: Standby}},
		},
		{
			name:   "No Changes",
			before: Snapshot{"Bash": Enabled},
			after:  Snapshot{"Bash": Enabled},
			want:   nil,
		},
		{
			name:   "Cascade Sorted By Name",
			before: Snapshot{"C": Standby, "B": Enabled, "A": Enabled},
			after:  Snapshot{"C": Disabled, "B": Disabled, "A": Standby},
			want: []Transition{
				{Ability: "A", From: Enabled, To: Standby},
				{Ability: "B", From: Enabled, To: Disabled},
				{Ability: "C", From: Standby, To: Disabled},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.before, tt.after)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTransition_ChargedRefunded(t *testing.T) {
	on := Transition{Ability: "A", From: Standby, To: Enabled}
	off := Transition{Ability: "A", From: Enabled, To: Disabled}
	idle := Transition{Ability: "A", From: Disabled, To: Standby}

	if !on.Charged() || on.Refunded() {
		t.Errorf("enable transition should only charge: %+v", on)
	}
	if off.Charged() || !off.Refunded() {
		t.Errorf("disable transition should only refund: %+v", off)
	}
	if idle.Charged() || idle.Refunded() {
		t.Errorf("standby transition should be free: %+v", idle)
	}
}
