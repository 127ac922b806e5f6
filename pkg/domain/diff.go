package domain

import "sort"

// Snapshot maps ability names to their states at one instant.
type Snapshot map[string]NodeState

// Diff calculates the transitions that turn before into after.
// Abilities absent from before are treated as Disabled. The result is sorted
// by ability name so that it can be compared and rendered deterministically.
func Diff(before, after Snapshot) []Transition {
	var out []Transition
	for name, to := range after {
		from, ok := before[name]
		if !ok {
			from = Disabled
		}
		if from != to {
			out = append(out, Transition{Ability: name, From: from, To: to})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ability < out[j].Ability })
	return out
}
