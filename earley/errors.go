package earley

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"

	"github.com/yamatteo/parakeet"
	"github.com/yamatteo/parakeet/grammar"
)

// checkInvariants re-validates the §3 data-model invariants for a newly
// constructed complete match, the way gorgo's stuck() gates an
// expensive diagnostic behind a config flag rather than paying for it
// on every insertion. Checking is a no-op unless the embedding
// application has set gconf key "panic-on-parser-invariant-violation".
func checkInvariants(m *CompleteMatch) {
	if !gconf.GetBool("panic-on-parser-invariant-violation") {
		return
	}
	if err := invariantViolation(m); err != nil {
		panic(err)
	}
}

// invariantViolation reports the first §3 invariant m violates, if any.
func invariantViolation(m *CompleteMatch) error {
	if m.Start >= m.End {
		return &parakeet.InternalInvariantError{
			Msg: fmt.Sprintf("match %s: start must be < end", m),
		}
	}
	sr, ok := m.Rule.(*grammar.SubstitutionRule)
	if !ok {
		return nil
	}
	// A positive left expectation needs an actual witness (§3 invariant 3);
	// a negative one may legitimately settle with LeftCtx == nil, since
	// absence satisfies it (ops.go's satisfiesLeftBrother). Either way, a
	// witness that is present must abut Start.
	if sr.Left != nil && sr.Left.Polarity == parakeet.Positive && m.LeftCtx == nil {
		return &parakeet.InternalInvariantError{
			Msg: fmt.Sprintf("match %s: left expectation %s has no witness", m, sr.Left),
		}
	}
	if m.LeftCtx != nil && m.LeftCtx.End != m.Start {
		return &parakeet.InternalInvariantError{
			Msg: fmt.Sprintf("match %s: left context %s does not abut start", m, m.LeftCtx),
		}
	}
	if sr.Right != nil && m.RightCtx != nil && m.RightCtx.Start != m.End {
		return &parakeet.InternalInvariantError{
			Msg: fmt.Sprintf("match %s: right context %s does not abut end", m, m.RightCtx),
		}
	}
	return nil
}
