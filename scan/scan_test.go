package scan

import (
	"testing"

	"github.com/yamatteo/parakeet/grammar"
)

func TestRegexScannerMatchesAtPosition(t *testing.T) {
	a, _ := grammar.TR("a", "a")
	b, _ := grammar.TR("b", "b")
	var s RegexScanner
	results := s.Scan("aabb", 1, []*grammar.TerminalRule{a, b})
	if len(results) != 1 || results[0].Rule != a || results[0].Start != 1 || results[0].End != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestRegexScannerRejectsZeroWidth(t *testing.T) {
	empty, _ := grammar.TR("empty", "a*")
	var s RegexScanner
	results := s.Scan("bbb", 0, []*grammar.TerminalRule{empty})
	if len(results) != 0 {
		t.Fatalf("expected zero-width match to be rejected, got %+v", results)
	}
}

func TestRegexScannerNoMatchPastInput(t *testing.T) {
	a, _ := grammar.TR("a", "a")
	var s RegexScanner
	results := s.Scan("aa", 5, []*grammar.TerminalRule{a})
	if len(results) != 0 {
		t.Fatalf("expected no results past input length, got %+v", results)
	}
}

func TestLexmachineScannerMatchesLiteral(t *testing.T) {
	eq, _ := grammar.TR("eq", `==`)
	lm, err := NewLexmachineScanner([]*grammar.TerminalRule{eq})
	if err != nil {
		t.Fatalf("unexpected error compiling DFA: %v", err)
	}
	results := lm.Scan("a==b", 1, []*grammar.TerminalRule{eq})
	if len(results) != 1 || results[0].Rule != eq || results[0].End != 3 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestLexmachineScannerFallsBackForNonLiteral(t *testing.T) {
	num, _ := grammar.TR("num", `[0-9]+`)
	lm, err := NewLexmachineScanner([]*grammar.TerminalRule{num})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	results := lm.Scan("42x", 0, []*grammar.TerminalRule{num})
	if len(results) != 1 || results[0].End != 2 {
		t.Fatalf("expected fallback regexp match '42', got %+v", results)
	}
}
