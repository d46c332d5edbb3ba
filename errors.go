package parakeet

import "fmt"

// GrammarError reports a defect in a grammar's rule set detected at
// registration time: an empty action tuple, a duplicate identical rule
// registration, or (logged rather than raised, see tracing in package
// grammar) an external name referenced only in non-first positions of a
// rule that can never fire.
type GrammarError struct {
	Msg string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar error: %s", e.Msg)
}

// ScanError reports a terminal rule whose pattern could not be compiled
// into a usable matcher at registration time.
type ScanError struct {
	Ext     string
	Pattern string
	Cause   error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error: rule %q pattern %q: %v", e.Ext, e.Pattern, e.Cause)
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}

// InternalInvariantError reports a violation of one of the §3 data-model
// invariants, detected only when debug invariant checking is enabled
// (see gconf key "panic-on-parser-invariant-violation" in package
// earley). It is always a bug in the engine, never a consequence of a
// malformed grammar or input.
type InternalInvariantError struct {
	Msg string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Msg)
}

// Note: ParseFailure is not an error type. An empty result slice from
// Parser.Parse is the normal negative outcome of parsing (§7) and is
// reported by returning a nil/empty slice with a nil error, not by a
// sentinel error value.
