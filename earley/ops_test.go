package earley

import (
	"testing"

	"github.com/yamatteo/parakeet/grammar"
)

func TestFeedAdvancesDotAndEnd(t *testing.T) {
	s, _ := grammar.SR("S", []string{"A", "B"}, nil, nil)
	aRule, _ := grammar.TR("A", "a")
	f := &ForwardMatch{Rule: s, Start: 0, End: 0, Dot: 0}
	q := terminalMatch(aRule, 0, 1)
	res := Feed(f, q)
	if res.Outcome != Advanced {
		t.Fatalf("expected Advanced, got %v", res.Outcome)
	}
	if res.Forward.Dot != 1 || res.Forward.End != 1 {
		t.Fatalf("expected dot 1 end 1, got dot %d end %d", res.Forward.Dot, res.Forward.End)
	}
	if f.Dot != 0 {
		t.Fatalf("Feed must not mutate its input forward match")
	}
}

func TestFeedRejectsWrongStart(t *testing.T) {
	s, _ := grammar.SR("S", []string{"A"}, nil, nil)
	aRule, _ := grammar.TR("A", "a")
	f := &ForwardMatch{Rule: s, Start: 0, End: 0, Dot: 0}
	q := terminalMatch(aRule, 1, 2)
	if res := Feed(f, q); res.Outcome != Rejected {
		t.Fatalf("expected Rejected for a non-abutting child, got %v", res.Outcome)
	}
}

func TestFeedRejectsWrongExt(t *testing.T) {
	s, _ := grammar.SR("S", []string{"A"}, nil, nil)
	bRule, _ := grammar.TR("B", "b")
	f := &ForwardMatch{Rule: s, Start: 0, End: 0, Dot: 0}
	q := terminalMatch(bRule, 0, 1)
	if res := Feed(f, q); res.Outcome != Rejected {
		t.Fatalf("expected Rejected when ext does not match act[dot], got %v", res.Outcome)
	}
}

func TestFeedRejectsIncompatibleSiblings(t *testing.T) {
	right := mustEX(t, '!', "B")
	first, _ := grammar.SR("First", []string{"x"}, nil, right)
	s, _ := grammar.SR("S", []string{"First", "B"}, nil, nil)
	bRule, _ := grammar.TR("B", "b")
	firstMatch := &CompleteMatch{Rule: first, Start: 0, End: 1, Depth: 1, unitChain: map[string]struct{}{"First": {}}}
	f := &ForwardMatch{Rule: s, Start: 0, End: 1, Dot: 1, ChildrenSoFar: []*CompleteMatch{firstMatch}}
	q := terminalMatch(bRule, 1, 2)
	if res := Feed(f, q); res.Outcome != Rejected {
		t.Fatalf("expected Rejected: First's negative right expectation !B rejects a B neighbor, got %v", res.Outcome)
	}
}

func TestSettleProducesCompleteMatchWithNoRightExpectation(t *testing.T) {
	s, _ := grammar.SR("S", []string{"A"}, nil, nil)
	aRule, _ := grammar.TR("A", "a")
	child := terminalMatch(aRule, 0, 1)
	f := &ForwardMatch{Rule: s, Start: 0, End: 1, Dot: 1, ChildrenSoFar: []*CompleteMatch{child}}
	res := Settle(f, nil)
	if res.Outcome != Closed {
		t.Fatalf("expected Closed, got %v", res.Outcome)
	}
	if res.Complete.RightCtx != nil {
		t.Fatalf("expected no right context recorded for a rule with no right expectation")
	}
	if res.Complete.Depth != 2 {
		t.Fatalf("expected unit-rename depth 2, got %d", res.Complete.Depth)
	}
}

func TestSettleRejectsUnsatisfiedPositiveRightExpectation(t *testing.T) {
	right := mustEX(t, '&', "C")
	s, _ := grammar.SR("S", []string{"A"}, nil, right)
	aRule, _ := grammar.TR("A", "a")
	child := terminalMatch(aRule, 0, 1)
	f := &ForwardMatch{Rule: s, Start: 0, End: 1, Dot: 1, ChildrenSoFar: []*CompleteMatch{child}}
	if res := Settle(f, nil); res.Outcome != Rejected {
		t.Fatalf("expected Rejected: positive right expectation needs an actual witness, got %v", res.Outcome)
	}
}

func TestSettleForbidsRepeatedUnitRename(t *testing.T) {
	aRule, _ := grammar.TR("A", "a")
	leaf := terminalMatch(aRule, 0, 1)
	b, _ := grammar.SR("B", []string{"A"}, nil, nil)
	fB := &ForwardMatch{Rule: b, Start: 0, End: 1, Dot: 1, ChildrenSoFar: []*CompleteMatch{leaf}}
	bMatch := Settle(fB, nil).Complete

	a2, _ := grammar.SR("A", []string{"B"}, nil, nil)
	fA2 := &ForwardMatch{Rule: a2, Start: 0, End: 1, Dot: 1, ChildrenSoFar: []*CompleteMatch{bMatch}}
	if res := Settle(fA2, nil); res.Outcome != Rejected {
		t.Fatalf("expected Rejected: reapplying ext 'A' already in the unit-rename chain, got %v", res.Outcome)
	}
}
