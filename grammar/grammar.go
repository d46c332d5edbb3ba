/*
Package grammar models the rules a parakeet parser consumes: terminal
rules (an external name plus a regular-expression pattern, compiled via
package scan) and substitution rules (an external name, an ordered tuple
of expected child external names, and optional left/right context
expectations).

A Grammar assigns every registered rule a unique, opaque RuleName and
builds the index the chart engine needs to spawn new forward matches in
constant time: by_first_ext, keyed by a rule's first awaited external
name (§4.1 of the design).
*/
package grammar

import (
	"fmt"
	"regexp"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"

	"github.com/yamatteo/parakeet"
)

func tracer() tracing.Trace {
	return tracing.Select("parakeet.grammar")
}

// RuleName is an opaque identifier assigned by a Grammar at registration
// time. It is unique per rule within one Grammar and is used as the
// rule's identity for deduplication and display.
type RuleName int

// Expectation is a polarity-tagged requirement on a neighbor's external
// name. An absent expectation (a nil *Expectation) is trivially satisfied.
type Expectation struct {
	Polarity parakeet.Polarity
	Ext      string
}

// EX constructs an Expectation. polarity must be '&' (positive) or '!'
// (negative); any other value is a GrammarError, since it can only arise
// from programmer error at grammar-construction time.
func EX(polarity byte, ext string) (Expectation, error) {
	switch polarity {
	case '&':
		return Expectation{Polarity: parakeet.Positive, Ext: ext}, nil
	case '!':
		return Expectation{Polarity: parakeet.Negative, Ext: ext}, nil
	default:
		return Expectation{}, &parakeet.GrammarError{
			Msg: fmt.Sprintf("expectation polarity must be '&' or '!', got %q", polarity),
		}
	}
}

func (e Expectation) String() string {
	return fmt.Sprintf("%s%s", e.Polarity, e.Ext)
}

// Rule is the tagged-variant interface shared by TerminalRule and
// SubstitutionRule. It maps the dynamically-typed distinction the source
// notebook makes between terminal and substitution productions onto a Go
// interface with two implementations (see Design Notes in spec.md §9).
type Rule interface {
	Ext() string
	RuleName() RuleName
	setRuleName(RuleName)
	String() string
}

// TerminalRule pairs an external name with a compiled regular expression.
// TerminalRules carry no context expectations.
type TerminalRule struct {
	name    RuleName
	ext     string
	Pattern string
	re      *regexp.Regexp
}

// TR constructs and compiles a TerminalRule. A pattern that does not
// compile is a ScanError (§7) rather than a GrammarError, since the
// defect lies in the regular expression, not the grammar's shape. The
// pattern is anchored internally so the scanner can test it against an
// input suffix without the match drifting past position zero of that
// suffix (the regex engine itself remains an opaque collaborator, per
// spec.md §1).
func TR(ext, pattern string) (*TerminalRule, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, &parakeet.ScanError{Ext: ext, Pattern: pattern, Cause: err}
	}
	return &TerminalRule{ext: ext, Pattern: pattern, re: re}, nil
}

// Ext returns the rule's external name.
func (t *TerminalRule) Ext() string { return t.ext }

// RuleName returns the rule's assigned name (valid after registration).
func (t *TerminalRule) RuleName() RuleName { return t.name }

func (t *TerminalRule) setRuleName(n RuleName) { t.name = n }

// Regexp exposes the compiled pattern for package scan.
func (t *TerminalRule) Regexp() *regexp.Regexp { return t.re }

func (t *TerminalRule) String() string {
	return fmt.Sprintf("(%s → /%s/)", t.ext, t.Pattern)
}

// SubstitutionRule pairs an external name with an ordered action tuple
// of expected child external names, plus optional left/right context
// expectations.
type SubstitutionRule struct {
	name  RuleName
	ext   string
	Act   []string
	Left  *Expectation
	Right *Expectation
}

// SR constructs a SubstitutionRule. The action tuple must be non-empty
// (§3 invariant 1 forbids zero-width substitution spans); an empty tuple
// is a GrammarError. left/right may be nil for "no expectation".
func SR(ext string, action []string, left, right *Expectation) (*SubstitutionRule, error) {
	if len(action) == 0 {
		return nil, &parakeet.GrammarError{Msg: fmt.Sprintf("rule %q: action tuple must not be empty", ext)}
	}
	act := make([]string, len(action))
	copy(act, action)
	return &SubstitutionRule{ext: ext, Act: act, Left: left, Right: right}, nil
}

// Ext returns the rule's external name.
func (s *SubstitutionRule) Ext() string { return s.ext }

// RuleName returns the rule's assigned name (valid after registration).
func (s *SubstitutionRule) RuleName() RuleName { return s.name }

func (s *SubstitutionRule) setRuleName(n RuleName) { s.name = n }

func (s *SubstitutionRule) String() string {
	left := ""
	if s.Left != nil {
		left = s.Left.String() + " "
	}
	right := ""
	if s.Right != nil {
		right = " " + s.Right.String()
	}
	act := ""
	for i, a := range s.Act {
		if i > 0 {
			act += " "
		}
		act += a
	}
	return fmt.Sprintf("%s(%s → %s)%s", left, s.ext, act, right)
}

// Grammar is an immutable-after-Close set of rules, together with the
// index the chart engine uses to spawn new forward matches: ByFirstExt.
type Grammar struct {
	rules      []Rule
	terminals  []*TerminalRule
	byFirstExt map[string][]*SubstitutionRule
	extOrder   []string
	extIndex   map[string]int
	seen       map[string]struct{}
	closed     bool
}

// New builds a Grammar from a list of rules, registering each in order.
// Registration is closed immediately: no further rules may be added.
// Use NewBuilder for incremental registration followed by an explicit
// Close call.
func New(rules ...Rule) (*Grammar, error) {
	g := newGrammar()
	for _, r := range rules {
		if err := g.Register(r); err != nil {
			return nil, err
		}
	}
	if err := g.Close(); err != nil {
		return nil, err
	}
	return g, nil
}

func newGrammar() *Grammar {
	return &Grammar{
		byFirstExt: make(map[string][]*SubstitutionRule),
		extIndex:   make(map[string]int),
		seen:       make(map[string]struct{}),
	}
}

// NewBuilder returns an empty, open Grammar for incremental registration.
func NewBuilder() *Grammar {
	return newGrammar()
}

// dedupKey hashes a rule's structural identity, the way gorgo's
// earley.go hashes Earley items for its backlink map.
func dedupKey(r Rule) (string, error) {
	switch rr := r.(type) {
	case *TerminalRule:
		return structhash.Hash(struct {
			Kind    string
			Ext     string
			Pattern string
		}{"terminal", rr.ext, rr.Pattern}, 1)
	case *SubstitutionRule:
		var left, right string
		if rr.Left != nil {
			left = rr.Left.String()
		}
		if rr.Right != nil {
			right = rr.Right.String()
		}
		return structhash.Hash(struct {
			Kind        string
			Ext         string
			Act         []string
			Left, Right string
		}{"substitution", rr.ext, rr.Act, left, right}, 1)
	default:
		return "", &parakeet.GrammarError{Msg: fmt.Sprintf("unknown rule type %T", r)}
	}
}

// Register adds a rule to the grammar, assigning it a unique RuleName.
// Registering the structurally identical rule twice is a GrammarError
// (§7 "duplicate identical rule registration"); registering the same
// external name under distinct rules is fine and expected (§3: "Multiple
// rules may share an external name").
func (g *Grammar) Register(r Rule) error {
	if g.closed {
		return &parakeet.GrammarError{Msg: "grammar is closed, cannot register further rules"}
	}
	key, err := dedupKey(r)
	if err != nil {
		return err
	}
	if _, dup := g.seen[key]; dup {
		return &parakeet.GrammarError{Msg: fmt.Sprintf("duplicate rule registration: %s", r)}
	}
	g.seen[key] = struct{}{}
	r.setRuleName(RuleName(len(g.rules)))
	g.rules = append(g.rules, r)
	g.registerExt(r.Ext())
	switch rr := r.(type) {
	case *TerminalRule:
		g.terminals = append(g.terminals, rr)
	case *SubstitutionRule:
		if len(rr.Act) > 0 {
			g.byFirstExt[rr.Act[0]] = append(g.byFirstExt[rr.Act[0]], rr)
		}
		for _, a := range rr.Act {
			g.registerExt(a)
		}
		if rr.Left != nil {
			g.registerExt(rr.Left.Ext)
		}
		if rr.Right != nil {
			g.registerExt(rr.Right.Ext)
		}
	}
	return nil
}

func (g *Grammar) registerExt(ext string) {
	if _, ok := g.extIndex[ext]; ok {
		return
	}
	g.extIndex[ext] = len(g.extOrder)
	g.extOrder = append(g.extOrder, ext)
}

// Close locks the grammar against further registration and validates it.
// A substitution rule referencing, in a non-first action position, an
// external name no rule ever produces is not fatal, such a rule simply
// never fires, but is logged at Info level,
// matching gorgo's posture of warning rather than rejecting a grammar
// for reachability defects. External names used in context expectations
// are not checked.
func (g *Grammar) Close() error {
	if g.closed {
		return nil
	}
	produced := make(map[string]struct{}, len(g.rules))
	for _, r := range g.rules {
		produced[r.Ext()] = struct{}{}
	}
	for _, r := range g.rules {
		sr, ok := r.(*SubstitutionRule)
		if !ok {
			continue
		}
		for i, a := range sr.Act {
			if i == 0 {
				continue // first-position reachability is what ByFirstExt indexes; always fine to be absent initially
			}
			if _, ok := produced[a]; !ok {
				tracer().Infof("rule %s: external name %q in non-first action position is never produced by any rule", sr, a)
			}
		}
	}
	g.closed = true
	return nil
}

// Terminals returns every registered terminal rule, in registration order.
func (g *Grammar) Terminals() []*TerminalRule {
	return g.terminals
}

// ByFirstExt returns every substitution rule whose first awaited external
// name equals ext, in registration order.
func (g *Grammar) ByFirstExt(ext string) []*SubstitutionRule {
	return g.byFirstExt[ext]
}

// NumExts returns the number of distinct external names known to the
// grammar (used to bound unit-rename depth, §4.3).
func (g *Grammar) NumExts() int {
	return len(g.extOrder)
}

// Rules returns every registered rule, in registration order.
func (g *Grammar) Rules() []Rule {
	return g.rules
}
