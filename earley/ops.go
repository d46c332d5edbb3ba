package earley

import "github.com/yamatteo/parakeet/grammar"

// Outcome tags the result of Feed or Settle, modeling the variant
// {advanced(Forward), closed(Complete), rejected} suggested by the
// Design Notes of spec.md §9 ("Polymorphic feed/settle").
type Outcome int

const (
	// Rejected means the interaction was not possible; the caller should
	// try other alternatives cheaply rather than treat it as an error.
	Rejected Outcome = iota
	// Advanced means Feed produced a new, further-along ForwardMatch.
	Advanced
	// Closed means Settle produced a new CompleteMatch.
	Closed
)

// Result is the return value of Feed and Settle.
type Result struct {
	Outcome  Outcome
	Forward  *ForwardMatch
	Complete *CompleteMatch
}

var rejected = Result{Outcome: Rejected}

// Feed advances a forward match with a newly completed match (§4.4).
// It requires q to start exactly where f left off, to supply the child
// external name f's rule expects next, and, if f already has a last
// neighbor (a previously fed child, or a left brother at dot 0), that
// the pair (lastNeighbor, q) is compatible (§4.2). It never mutates f;
// on success it returns a new ForwardMatch one dot further along.
func Feed(f *ForwardMatch, q *CompleteMatch) Result {
	if f.done() {
		return rejected
	}
	if q.Start != f.End {
		return rejected
	}
	if q.Ext() != f.Rule.Act[f.Dot] {
		return rejected
	}
	if last := f.lastNeighbor(); last != nil {
		if !Compatible(last, q) {
			return rejected
		}
	}
	children := make([]*CompleteMatch, len(f.ChildrenSoFar)+1)
	copy(children, f.ChildrenSoFar)
	children[len(children)-1] = q
	nf := &ForwardMatch{
		Rule:          f.Rule,
		Start:         f.Start,
		End:           q.End,
		Dot:           f.Dot + 1,
		LeftBrother:   f.LeftBrother,
		ChildrenSoFar: children,
	}
	return Result{Outcome: Advanced, Forward: nf}
}

// Settle closes a completed forward match (dot at the end of its
// action tuple) into a complete match (§4.4). r is the candidate
// right-context match, or nil when the caller has already determined
// that no right-context witness is required or available (no right
// expectation, or a negative expectation satisfied by absence at a
// boundary, §4.2/§9).
//
// Settle requires: the rule's left expectation was already satisfied by
// f.LeftBrother at spawn time (re-checked here defensively); the last
// child and r are compatible; r satisfies the rule's right expectation;
// and, if the rule has a single child, that the unit-rename chain does
// not already contain the rule's own external name (§4.3), otherwise
// the derivation is forbidden outright to bound rename cycles.
func Settle(f *ForwardMatch, r *CompleteMatch) Result {
	if !f.done() {
		return rejected
	}
	rule := f.Rule
	if !satisfiesLeftBrother(rule, f.LeftBrother) {
		return rejected
	}
	if r == nil {
		if !satisfiedByAbsence(rule.Right) {
			return rejected
		}
	} else {
		if rule.Right == nil {
			r = nil // rule records no right context even if one was offered
		} else {
			if !satisfiesExpectation(rule.Right, r) {
				return rejected
			}
			if last := f.lastNeighbor(); last != nil && !Compatible(last, r) {
				return rejected
			}
		}
	}
	depth, chain, forbidden := depthFor(rule.Ext(), f.ChildrenSoFar)
	if forbidden {
		return rejected
	}
	cm := &CompleteMatch{
		Rule:      rule,
		Start:     f.Start,
		End:       f.End,
		Depth:     depth,
		Children:  f.ChildrenSoFar,
		LeftCtx:   f.LeftBrother,
		RightCtx:  r,
		unitChain: chain,
	}
	return Result{Outcome: Closed, Complete: cm}
}

func satisfiesLeftBrother(rule *grammar.SubstitutionRule, brother *CompleteMatch) bool {
	if brother == nil {
		return satisfiedByAbsence(rule.Left)
	}
	return satisfiesExpectation(rule.Left, brother)
}
