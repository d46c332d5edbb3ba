package scan

import (
	"regexp"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/yamatteo/parakeet/grammar"
)

// LexmachineScanner is an alternate Scanner backend, compiling every
// terminal rule whose pattern is a plain literal (no regex metacharacters)
// into a single DFA via github.com/timtadh/lexmachine, the way gorgo's
// lr/scanner/lexmach package adapts lexmachine as a second scanner
// backend alongside its default text/scanner-based one.
//
// Limitation: lexmachine's DFA resolves overlapping matches to a single
// longest token, so LexmachineScanner is faithful to §4.5 ("every
// terminal rule is applied" at every position) only for grammars where no
// two *literal* terminal rules can match different-length prefixes at the
// same position. Rules with non-literal patterns are always scanned
// correctly, independently, via the regexp fallback. Grammars that need
// every literal alternative considered at a position should use
// RegexScanner instead.
type LexmachineScanner struct {
	lexer    *lexmachine.Lexer
	byTokID  map[int]*grammar.TerminalRule
	literal  map[*grammar.TerminalRule]bool
	fallback RegexScanner
}

var _ Scanner = (*LexmachineScanner)(nil)

// NewLexmachineScanner compiles a DFA covering every literal-patterned
// rule in rules. It is safe to call with no literal rules at all, in
// which case Scan behaves identically to RegexScanner.
func NewLexmachineScanner(rules []*grammar.TerminalRule) (*LexmachineScanner, error) {
	lm := &LexmachineScanner{
		lexer:   lexmachine.NewLexer(),
		byTokID: make(map[int]*grammar.TerminalRule),
		literal: make(map[*grammar.TerminalRule]bool),
	}
	id := 0
	for _, r := range rules {
		if !isLiteralPattern(r.Pattern) {
			continue
		}
		tokID := id
		lm.byTokID[tokID] = r
		lm.literal[r] = true
		lm.lexer.Add([]byte(regexp.QuoteMeta(r.Pattern)), func(_ *lexmachine.Scanner, _ *machines.Match) (interface{}, error) {
			return tokID, nil
		})
		id++
	}
	if id > 0 {
		if err := lm.lexer.Compile(); err != nil {
			tracer().Errorf("lexmachine DFA compile failed: %v", err)
			return nil, err
		}
	}
	return lm, nil
}

func isLiteralPattern(pattern string) bool {
	return regexp.QuoteMeta(pattern) == pattern && pattern != ""
}

// Scan implements Scanner.
func (lm *LexmachineScanner) Scan(input string, pos int, rules []*grammar.TerminalRule) []Result {
	var nonLiteral []*grammar.TerminalRule
	for _, r := range rules {
		if !lm.literal[r] {
			nonLiteral = append(nonLiteral, r)
		}
	}
	var results []Result
	if len(lm.byTokID) > 0 && pos <= len(input) {
		if res, ok := lm.scanOne(input, pos); ok {
			results = append(results, res)
		}
	}
	results = append(results, lm.fallback.Scan(input, pos, nonLiteral)...)
	return results
}

func (lm *LexmachineScanner) scanOne(input string, pos int) (Result, bool) {
	s, err := lm.lexer.Scanner([]byte(input[pos:]))
	if err != nil {
		tracer().Errorf("lexmachine scanner construction failed: %v", err)
		return Result{}, false
	}
	tok, err, eof := s.Next()
	if err != nil {
		// An UnconsumedInput error means no literal starts at pos; skipping
		// past it would report a later token as if it started here.
		tracer().Debugf("lexmachine scan error at %d: %v", pos, err)
		return Result{}, false
	}
	if eof {
		return Result{}, false
	}
	lt, ok := tok.(*lexmachine.Token)
	if !ok {
		return Result{}, false
	}
	tokID, _ := lt.Value.(int)
	rule, ok := lm.byTokID[tokID]
	if !ok {
		return Result{}, false
	}
	end := pos + lt.EndColumn
	if end <= pos {
		return Result{}, false
	}
	return Result{Rule: rule, Start: pos, End: end}, true
}
