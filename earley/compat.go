package earley

import (
	"github.com/yamatteo/parakeet"
	"github.com/yamatteo/parakeet/grammar"
)

// Compatible decides whether two adjacent complete matches (l.End ==
// r.Start) may sit next to each other (§4.2): l's right-context demand
// must be satisfied by r, and, symmetrically, r's left-context demand
// must be satisfied by l. An absent expectation on either side is
// trivially satisfied.
//
// Compatible governs adjacency both between a substitution match's
// children (during feed) and at the final closure against a right
// context match (during settle); it is the single predicate spec.md
// §4.2 calls "central to the whole design".
func Compatible(l, r *CompleteMatch) bool {
	return satisfiesExpectation(rightExpectationOf(l), r) &&
		satisfiesExpectation(leftExpectationOf(r), l)
}

func rightExpectationOf(m *CompleteMatch) *grammar.Expectation {
	if sr, ok := m.Rule.(*grammar.SubstitutionRule); ok {
		return sr.Right
	}
	return nil
}

func leftExpectationOf(m *CompleteMatch) *grammar.Expectation {
	if sr, ok := m.Rule.(*grammar.SubstitutionRule); ok {
		return sr.Left
	}
	return nil
}

// satisfiesExpectation reports whether neighbor (which must be a real,
// present match) satisfies exp. A nil expectation is trivially satisfied
// by any neighbor.
func satisfiesExpectation(exp *grammar.Expectation, neighbor *CompleteMatch) bool {
	if exp == nil {
		return true
	}
	if exp.Polarity == parakeet.Positive {
		return neighbor.Ext() == exp.Ext
	}
	return neighbor.Ext() != exp.Ext
}

// satisfiedByAbsence reports whether exp is satisfied when there is no
// neighbor at all. This spec requires an actual witness for positive
// expectations and treats absence as satisfying negative ones (§4.2,
// and the first Open Question of §9); it is the boundary/no-neighbor
// rule applied by spawn (left side) and settle (right side).
func satisfiedByAbsence(exp *grammar.Expectation) bool {
	if exp == nil {
		return true
	}
	return exp.Polarity != parakeet.Positive
}
