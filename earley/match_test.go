package earley

import (
	"testing"

	"github.com/yamatteo/parakeet/grammar"
)

func TestTerminalMatchDepthOne(t *testing.T) {
	a, _ := grammar.TR("a", "a")
	m := terminalMatch(a, 0, 1)
	if m.Depth != 1 {
		t.Fatalf("expected depth 1, got %d", m.Depth)
	}
	if !m.inChain("a") {
		t.Fatalf("expected terminal match's own ext in its unit chain")
	}
}

func TestDepthForUnitRenameExtendsChain(t *testing.T) {
	a, _ := grammar.TR("a", "a")
	child := terminalMatch(a, 0, 1)
	depth, chain, forbidden := depthFor("B", []*CompleteMatch{child})
	if forbidden {
		t.Fatalf("first unit rename should not be forbidden")
	}
	if depth != 2 {
		t.Fatalf("expected depth 2, got %d", depth)
	}
	if _, ok := chain["a"]; !ok {
		t.Fatalf("expected chain to retain child's ext")
	}
	if _, ok := chain["B"]; !ok {
		t.Fatalf("expected chain to gain the new ext")
	}
}

func TestDepthForForbidsRepeatedUnitRename(t *testing.T) {
	a, _ := grammar.TR("a", "a")
	leaf := terminalMatch(a, 0, 1)
	_, chain, _ := depthFor("B", []*CompleteMatch{leaf})
	bMatch := &CompleteMatch{Depth: 2, unitChain: chain}
	_, _, forbidden := depthFor("a", []*CompleteMatch{bMatch})
	if !forbidden {
		t.Fatalf("expected reapplying ext already in the chain to be forbidden")
	}
}

func TestDepthForResetsOnBranching(t *testing.T) {
	a, _ := grammar.TR("a", "a")
	left := terminalMatch(a, 0, 1)
	right := terminalMatch(a, 1, 2)
	depth, chain, forbidden := depthFor("S", []*CompleteMatch{left, right})
	if forbidden {
		t.Fatalf("branching derivations are never forbidden")
	}
	if depth != 1 {
		t.Fatalf("expected depth reset to 1 on branching, got %d", depth)
	}
	if len(chain) != 1 {
		t.Fatalf("expected a fresh singleton chain, got %v", chain)
	}
}

func TestForwardMatchDoneAndLastNeighbor(t *testing.T) {
	s, _ := grammar.SR("S", []string{"A", "B"}, nil, nil)
	a, _ := grammar.TR("a", "a")
	child := terminalMatch(a, 0, 1)
	f := &ForwardMatch{Rule: s, Start: 0, End: 1, Dot: 1, ChildrenSoFar: []*CompleteMatch{child}}
	if f.done() {
		t.Fatalf("forward match with dot < len(act) should not be done")
	}
	if f.lastNeighbor() != child {
		t.Fatalf("expected last neighbor to be the last fed child")
	}
	f.Dot = 2
	if !f.done() {
		t.Fatalf("expected forward match with dot == len(act) to be done")
	}
}

func TestCompleteMatchStringFormat(t *testing.T) {
	a, _ := grammar.TR("a", "a")
	m := terminalMatch(a, 0, 1)
	got := m.String()
	want := "((a → /a/))1 [0:1]"
	if got != want {
		t.Fatalf("display contract mismatch: got %q want %q", got, want)
	}
}
