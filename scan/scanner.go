/*
Package scan adapts terminal rules to the input, applying an opaque
regular-expression engine at every byte offset and returning the match
extents the chart engine turns into seed complete matches (§4.5 of the
design). It follows gorgo's lr/scanner package in providing more than one
backend: a default one (here, backed by the standard library's regexp,
since spec.md treats the regex engine itself as an out-of-scope external
collaborator) and an optional DFA-compiled one for simple grammars
(LexmachineScanner, in lexmachine.go).
*/
package scan

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/yamatteo/parakeet/grammar"
)

func tracer() tracing.Trace {
	return tracing.Select("parakeet.scan")
}

// Result is a single terminal match found at a given input position.
type Result struct {
	Rule  *grammar.TerminalRule
	Start int
	End   int
}

// Scanner applies every rule in rules against input starting exactly at
// pos, returning one Result per rule that matches there. Implementers
// must never return a zero-width match (Start == End): spec.md §3
// invariant 1 requires start < end for every complete match, and §4.5
// asks implementers to reject zero-width terminal matches to preserve it.
type Scanner interface {
	Scan(input string, pos int, rules []*grammar.TerminalRule) []Result
}

// RegexScanner is the default Scanner, applying each rule's compiled,
// position-anchored regular expression directly against input[pos:].
// It is always correct: every terminal rule is tried independently at
// every position, exactly as §4.5 specifies.
type RegexScanner struct{}

var _ Scanner = RegexScanner{}

// Scan implements Scanner.
func (RegexScanner) Scan(input string, pos int, rules []*grammar.TerminalRule) []Result {
	if pos > len(input) {
		return nil
	}
	suffix := input[pos:]
	var results []Result
	for _, r := range rules {
		loc := r.Regexp().FindStringIndex(suffix)
		if loc == nil {
			continue
		}
		// The pattern is anchored at registration time (grammar.TR), so a
		// match always starts at index 0 of suffix.
		if loc[1] == 0 {
			tracer().Debugf("rule %s: rejecting zero-width match at %d", r, pos)
			continue
		}
		results = append(results, Result{Rule: r, Start: pos, End: pos + loc[1]})
	}
	return results
}
