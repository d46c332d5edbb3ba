package earley

import (
	"github.com/yamatteo/parakeet/grammar"
	"github.com/yamatteo/parakeet/scan"
)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithScanner overrides the default scan.RegexScanner.
func WithScanner(s scan.Scanner) Option {
	return func(p *Parser) { p.scanner = s }
}

// Parser drives a single grammar over any number of inputs (§4.7). A
// Parser is immutable and safe to reuse across parses; each Parse call
// builds and discards its own Chart.
type Parser struct {
	g       *grammar.Grammar
	scanner scan.Scanner
}

// NewParser builds a Parser for an already-closed grammar.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g, scanner: scan.RegexScanner{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewParserFromRules is a convenience constructor building the grammar
// and the parser in one step.
func NewParserFromRules(rules ...grammar.Rule) (*Parser, error) {
	g, err := grammar.New(rules...)
	if err != nil {
		return nil, err
	}
	return NewParser(g), nil
}

// Parse runs the engine to saturation over input and returns every
// complete match spanning the whole input (§4.7). If expect is
// non-empty, the result is restricted to matches whose external name
// equals expect. An empty result is a normal negative outcome (a
// ParseFailure, §7), not an error.
func (p *Parser) Parse(input string, expect string) ([]*CompleteMatch, error) {
	c := NewChart(p.g)

	for pos := 0; pos <= len(input); pos++ {
		for _, r := range p.scanner.Scan(input, pos, p.g.Terminals()) {
			if r.End == r.Start {
				continue // zero-width terminal matches violate invariant 1 (§4.5)
			}
			c.InsertComplete(terminalMatch(r.Rule, r.Start, r.End))
		}
	}

	p.saturate(c)

	var out []*CompleteMatch
	for _, m := range c.completesStartingAt(0) {
		if m.End != len(input) {
			continue
		}
		if expect != "" && m.Ext() != expect {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// saturate drains the agenda, performing every spawn/feed/settle action
// each popped match enables, until no more work remains (§4.6).
func (p *Parser) saturate(c *Chart) {
	work := 0
	for !c.agenda.Empty() {
		v, _ := c.agenda.Dequeue()
		item := v.(agendaItem)
		work++
		if item.complete != nil {
			p.processComplete(c, item.complete)
		} else {
			p.processForward(c, item.forward)
		}
	}
	if work == 0 {
		tracer().Debugf("parser: saturation did no work (empty input or empty terminal set)")
	}
}

// processComplete reacts to a newly inserted complete match x (§4.4):
// it spawns new forward matches for rules awaiting x's external name,
// feeds x into forward matches already awaiting exactly that external
// name at that position, and offers x as a right-context candidate to
// forward matches pending settle at x's start.
func (p *Parser) processComplete(c *Chart, x *CompleteMatch) {
	p.spawn(c, x)

	// Both loops below use the cursor protocol rather than Each. Forward
	// matches inserted while walking are keyed at x.End, which is always
	// past x.Start, so neither walked slot gains members during its own
	// walk; were one to, the cursor protocol would still visit them.
	k := key(x.Ext(), x.Start)
	if s, ok := c.awaitingNext[k]; ok {
		s.IterateOnce()
		for s.Next() {
			f := s.Item().(*ForwardMatch)
			if res := Feed(f, x); res.Outcome == Advanced {
				c.InsertForward(res.Forward)
			}
		}
	}

	if s, ok := c.pendingSettle[x.Start]; ok {
		s.IterateOnce()
		for s.Next() {
			f := s.Item().(*ForwardMatch)
			if res := Settle(f, x); res.Outcome == Closed {
				c.InsertComplete(res.Complete)
			}
		}
	}
}

// spawn instantiates, for every substitution rule awaiting x's external
// name as its first child, one forward match per admissible left
// brother (§4.4 "Spawn"), then immediately feeds x into each.
func (p *Parser) spawn(c *Chart, x *CompleteMatch) {
	for _, r := range p.g.ByFirstExt(x.Ext()) {
		for _, brother := range p.leftBrotherCandidates(c, r, x.Start) {
			f := &ForwardMatch{Rule: r, Start: x.Start, End: x.Start, Dot: 0, LeftBrother: brother}
			if res := Feed(f, x); res.Outcome == Advanced {
				c.InsertForward(res.Forward)
			}
		}
	}
}

// leftBrotherCandidates enumerates the left-brother matches a forward
// match spawned for rule r at position pos may legitimately start with
// (§4.4 "Spawn"): the single nil brother when r has no left expectation;
// every complete match ending at pos whose ext matches for a positive
// expectation; every complete match ending at pos whose ext differs,
// plus the no-brother case, for a negative expectation.
func (p *Parser) leftBrotherCandidates(c *Chart, r *grammar.SubstitutionRule, pos int) []*CompleteMatch {
	if r.Left == nil {
		return []*CompleteMatch{nil}
	}
	var out []*CompleteMatch
	for _, l := range c.completesEndingAt(pos) {
		if satisfiesExpectation(r.Left, l) {
			out = append(out, l)
		}
	}
	if satisfiedByAbsence(r.Left) {
		out = append(out, nil)
	}
	return out
}

// processForward reacts to a newly inserted forward match f: once it is
// done (every child fed), it is offered an immediate settle against "no
// right context" (covering rules with no right expectation, or a
// negative expectation satisfied by absence, §4.2/§9), and against every
// complete match already in the chart starting at f.End. It is also
// already registered in the chart's pendingSettle index (by
// InsertForward) so that complete matches inserted later will be
// offered to it too, from processComplete.
func (p *Parser) processForward(c *Chart, f *ForwardMatch) {
	if !f.done() {
		return
	}
	// Settle(f, nil) is tried unconditionally, even at interior positions
	// where a real right neighbor exists: absence satisfies a negative
	// right expectation everywhere, not only at the outermost boundary,
	// per the adopted reading of the §9 Open Question. This is safe
	// because a rule with a negative right expectation also rejects any
	// actual incompatible neighbor via the Compatible check below, so no
	// spanning result is ever produced from a sibling that should have
	// blocked it.
	if res := Settle(f, nil); res.Outcome == Closed {
		c.InsertComplete(res.Complete)
	}
	for _, r := range c.completesStartingAt(f.End) {
		if res := Settle(f, r); res.Outcome == Closed {
			c.InsertComplete(res.Complete)
		}
	}
}
