package cfg

// Edge represents a block's entire fan-out as two parallel, equal-length
// sequences: Conditions[i] is the label guarding the jump to Targets[i].
// The pairs are interpreted as a multi-way switch evaluated in order.
//
// An empty Edge ("not yet wired") is a transient state during
// construction only — Build requires every non-terminal block to have a
// non-empty Edge before returning.
type Edge struct {
	Conditions []Condition
	Targets    []BlockID
}

// CondTarget pairs a single condition with its jump target, the unit
// Switch is built from.
type CondTarget struct {
	Cond   Condition
	Target BlockID
}

// AlwaysEdge builds the unconditional special case: a single (Always, T) pair.
func AlwaysEdge(target BlockID) Edge {
	return Edge{
		Conditions: []Condition{Always{}},
		Targets:    []BlockID{target},
	}
}

// SwitchEdge builds a multi-way edge, preserving caller order.
func SwitchEdge(pairs ...CondTarget) Edge {
	e := Edge{
		Conditions: make([]Condition, len(pairs)),
		Targets:    make([]BlockID, len(pairs)),
	}
	for i, p := range pairs {
		e.Conditions[i] = p.Cond
		e.Targets[i] = p.Target
	}
	return e
}

// IsWired reports whether this edge has at least one outgoing pair.
func (e Edge) IsWired() bool {
	return len(e.Targets) > 0
}

// Len returns the number of (condition, target) pairs — the fan-out.
func (e Edge) Len() int {
	return len(e.Targets)
}
