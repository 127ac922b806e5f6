// Package ledger provides the default in-memory ability-point book.
package ledger

import (
	"sort"

	"github.com/aretw0/abilitree/pkg/ports"
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger tracks the remaining ability points of one class and how many
// enabled abilities each archetype currently counts.
// It is not safe for concurrent use; the engine serialises clicks.
type Ledger struct {
	total      int
	remaining  int
	archetypes map[string]int
}

// New creates a ledger with a full budget.
func New(budget int) *Ledger {
	return &Ledger{
		total:      budget,
		remaining:  budget,
		archetypes: make(map[string]int),
	}
}

func (l *Ledger) Charge(cost int) { l.remaining -= cost }

func (l *Ledger) Refund(cost int) { l.remaining += cost }

func (l *Ledger) ArchetypeIncrement(name string) {
	if name == "" {
		return
	}
	l.archetypes[name]++
}

func (l *Ledger) ArchetypeDecrement(name string) {
	if name == "" || l.archetypes[name] == 0 {
		return
	}
	l.archetypes[name]--
	if l.archetypes[name] == 0 {
		delete(l.archetypes, name)
	}
}

func (l *Ledger) CanAfford(cost int) bool { return l.remaining >= cost }

func (l *Ledger) ArchetypeCount(name string) int { return l.archetypes[name] }

func (l *Ledger) Remaining() int { return l.remaining }

func (l *Ledger) Total() int { return l.total }

// Restore resets the budget and drops every archetype counter.
func (l *Ledger) Restore() {
	l.remaining = l.total
	clear(l.archetypes)
}

// Archetypes returns the archetype names with a non-zero count, sorted.
func (l *Ledger) Archetypes() []string {
	names := make([]string, 0, len(l.archetypes))
	for name := range l.archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
