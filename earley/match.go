/*
Package earley implements the match-graph chart engine: complete and
in-progress ("forward") matches over a grammar.Grammar, the adjacency
compatibility predicate between them, the feed/settle interaction
operations, the indexed chart and its saturation agenda, and the
top-level parser driver. This is the core of the system (see spec.md §2).
*/
package earley

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/yamatteo/parakeet/grammar"
)

func tracer() tracing.Trace {
	return tracing.Select("parakeet.earley")
}

// CompleteMatch is a proof that input[Start:End] matches Rule. Terminal
// matches have no Children; substitution matches carry the concrete
// child tuple that produced them, plus the left/right context matches
// that witnessed closure, if the rule had such expectations (§3).
//
// A CompleteMatch is immutable once constructed and may be shared as a
// child, left context, or right context of many other matches, the
// DAG shape described in spec.md §9.
type CompleteMatch struct {
	Rule      grammar.Rule
	Start     int
	End       int
	Depth     int
	Children  []*CompleteMatch
	LeftCtx   *CompleteMatch
	RightCtx  *CompleteMatch
	unitChain map[string]struct{} // external names reached by unit renames ending here (§4.3)
}

// Ext returns the match's external name (its rule's external name).
func (m *CompleteMatch) Ext() string {
	return m.Rule.Ext()
}

// terminalMatch constructs the complete match a scan produces directly
// (§4.5): depth 1, a singleton unit-rename chain of its own external
// name.
func terminalMatch(rule *grammar.TerminalRule, start, end int) *CompleteMatch {
	return &CompleteMatch{
		Rule:      rule,
		Start:     start,
		End:       end,
		Depth:     1,
		unitChain: map[string]struct{}{rule.Ext(): {}},
	}
}

// inChain reports whether ext already appears in m's unit-rename chain
// (§4.3): reapplying a unit rule whose external name is already in the
// chain is forbidden, since it would re-derive the same span forever.
func (m *CompleteMatch) inChain(ext string) bool {
	_, ok := m.unitChain[ext]
	return ok
}

// depthFor computes the Depth and unit-rename chain a substitution
// match should carry, given its rule and its (already-settled) children.
// A single-child (unit rename) derivation extends the child's chain by
// one, and is forbidden outright if doing so would repeat an external
// name already in that chain. Branching derivations (two or more
// children) reset the chain, per the Open Question in spec.md §9 (this
// spec adopts "reset unconditionally", not max(child.depth)+1).
func depthFor(ext string, children []*CompleteMatch) (depth int, chain map[string]struct{}, forbidden bool) {
	if len(children) == 1 {
		child := children[0]
		if child.inChain(ext) {
			return 0, nil, true
		}
		chain = make(map[string]struct{}, len(child.unitChain)+1)
		for k := range child.unitChain {
			chain[k] = struct{}{}
		}
		chain[ext] = struct{}{}
		return child.Depth + 1, chain, false
	}
	return 1, map[string]struct{}{ext: {}}, false
}

// ForwardMatch is an in-progress derivation of a substitution rule: the
// children matched so far, and the position (Dot) of the next expected
// child in the rule's action tuple.
type ForwardMatch struct {
	Rule          *grammar.SubstitutionRule
	Start         int
	End           int
	Dot           int
	LeftBrother   *CompleteMatch
	ChildrenSoFar []*CompleteMatch
}

// done reports whether every expected child has been fed (§3 invariant
// 2): settling turns such a forward match into a complete match.
func (f *ForwardMatch) done() bool {
	return f.Dot >= len(f.Rule.Act)
}

// lastNeighbor returns the match adjacency must be checked against for
// the next child fed into f: the last child fed so far, or, if none
// has been fed yet, the left brother, if any.
func (f *ForwardMatch) lastNeighbor() *CompleteMatch {
	if n := len(f.ChildrenSoFar); n > 0 {
		return f.ChildrenSoFar[n-1]
	}
	return f.LeftBrother
}

// --- Display contract (spec.md §6) ------------------------------------

func (m *CompleteMatch) String() string {
	var b bytes.Buffer
	if m.LeftCtx != nil {
		fmt.Fprintf(&b, "*%s%d ", m.LeftCtx.Ext(), m.LeftCtx.Depth)
	}
	if tr, ok := m.Rule.(*grammar.TerminalRule); ok {
		fmt.Fprintf(&b, "((%s → /%s/))%d", tr.Ext(), tr.Pattern, m.Depth)
	} else {
		sr := m.Rule.(*grammar.SubstitutionRule)
		fmt.Fprintf(&b, "((%s → %s))%d", sr.Ext(), joinExts(sr.Act), m.Depth)
	}
	if m.RightCtx != nil {
		fmt.Fprintf(&b, " *%s%d", m.RightCtx.Ext(), m.RightCtx.Depth)
	}
	fmt.Fprintf(&b, " [%d:%d]", m.Start, m.End)
	return b.String()
}

func (f *ForwardMatch) String() string {
	var b bytes.Buffer
	if f.LeftBrother != nil {
		fmt.Fprintf(&b, "*%s%d ", f.LeftBrother.Ext(), f.LeftBrother.Depth)
	}
	done := joinExts(f.Rule.Act[:f.Dot])
	remaining := joinExts(f.Rule.Act[f.Dot:])
	fmt.Fprintf(&b, "(%s → %s • %s)", f.Rule.Ext(), done, remaining)
	if f.Rule.Right != nil {
		fmt.Fprintf(&b, " %s", f.Rule.Right)
	}
	fmt.Fprintf(&b, " [%d:%d]", f.Start, f.End)
	return b.String()
}

func joinExts(exts []string) string {
	var b bytes.Buffer
	for i, e := range exts {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(e)
	}
	return b.String()
}
