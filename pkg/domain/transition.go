package domain

// Transition records one applied state change of an ability.
type Transition struct {
	Ability string    `json:"ability"`
	From    NodeState `json:"from"`
	To      NodeState `json:"to"`
}

// Charged reports whether the transition moved the ability into Enabled.
func (t Transition) Charged() bool {
	return t.To == Enabled && t.From != Enabled
}

// Refunded reports whether the transition moved the ability out of Enabled.
func (t Transition) Refunded() bool {
	return t.From == Enabled && t.To != Enabled
}
