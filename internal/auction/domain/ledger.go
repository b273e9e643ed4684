package domain

// Ledger is the ordered record of committed decisions and the single source
// of truth every team capacity is derived from. Append-only in normal flow,
// the one extra mutation is ReplaceAt for the correction protocol.
type Ledger struct {
	entries []Assignment
}

// Len returns the number of processed assignments
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Append adds the decision for the next player in queue order
func (l *Ledger) Append(a Assignment) {
	l.entries = append(l.entries, a)
}

// At returns the assignment at index i, ok is false when out of range
func (l *Ledger) At(i int) (Assignment, bool) {
	if i < 0 || i >= len(l.entries) {
		return Assignment{}, false
	}
	return l.entries[i], true
}

// ReplaceAt swaps team and price of the entry at index i. Player identity,
// ledger length and the ordering of every other entry are preserved: you
// correct the decision about a player, never the player itself.
func (l *Ledger) ReplaceAt(i int, team TeamID, price float64) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.entries[i].Team = team
	l.entries[i].Price = price
	return true
}

// ForTeam returns team's assignments in ledger order, the exact input the
// capacity fold expects. TeamUnsold yields the unsold entries, which by
// construction never feed capacity derivation.
func (l *Ledger) ForTeam(team TeamID) []Assignment {
	var out []Assignment
	for _, a := range l.entries {
		if a.Team == team {
			out = append(out, a)
		}
	}
	return out
}

// Entries returns a copy of the whole ledger for read-only views
func (l *Ledger) Entries() []Assignment {
	out := make([]Assignment, len(l.entries))
	copy(out, l.entries)
	return out
}
