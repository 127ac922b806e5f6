package ports

// Ledger is the resource book mutated by node activation changes: the
// ability-point budget and the per-archetype counters. The engine calls it
// synchronously from inside a click; the ledger's own presentation is the
// consumer's business.
type Ledger interface {
	// Charge spends cost points.
	Charge(cost int)
	// Refund returns cost points.
	Refund(cost int)
	// ArchetypeIncrement counts one more enabled ability of the archetype.
	ArchetypeIncrement(name string)
	// ArchetypeDecrement counts one fewer enabled ability of the archetype.
	ArchetypeDecrement(name string)

	// CanAfford reports whether cost points remain.
	CanAfford(cost int) bool
	// ArchetypeCount returns the number of enabled abilities of the archetype.
	ArchetypeCount(name string) int

	// Remaining returns the unspent points.
	Remaining() int
	// Total returns the full budget.
	Total() int
	// Restore returns the ledger to its full budget and clears every counter.
	Restore()
}
