package earley

import (
	"fmt"
	"io"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/yamatteo/parakeet/grammar"
	"github.com/yamatteo/parakeet/iteratable"
)

// agendaItem wraps the two kinds of match the agenda can carry, modeling
// the tagged variant the Design Notes of spec.md §9 describe for the
// complete/forward distinction.
type agendaItem struct {
	complete *CompleteMatch
	forward  *ForwardMatch
}

// Chart is the indexed, deduplicated set of matches produced while
// parsing a single input (§4.6). It owns the saturation agenda. A Chart
// is not safe for concurrent use, and is discarded after one parse;
// spec.md §5 notes the engine is not incremental.
type Chart struct {
	g *grammar.Grammar

	completeSeen map[string]*CompleteMatch
	forwardSeen  map[string]*ForwardMatch

	completeByStart map[int]*linkedhashset.Set // all complete matches with Start == pos
	completeByEnd   map[int]*linkedhashset.Set // all complete matches with End == pos

	// awaitingNext and pendingSettle back the forward-match indexes (§4.6).
	// Both grow during saturation as InsertForward files new forward
	// matches. They are walked with iteratable.Set's cursor protocol (see
	// package iteratable): IterateOnce+Next also visits members Added
	// during the same walk, which Each, like ranging over a plain slice,
	// does not.
	awaitingNext  map[string]*iteratable.Set // key(expectedExt, end) -> *ForwardMatch, dot < len(act)
	pendingSettle map[int]*iteratable.Set    // end -> *ForwardMatch, dot == len(act), not yet settled

	agenda *linkedlistqueue.Queue
}

// NewChart creates an empty chart for grammar g.
func NewChart(g *grammar.Grammar) *Chart {
	return &Chart{
		g:               g,
		completeSeen:    make(map[string]*CompleteMatch),
		forwardSeen:     make(map[string]*ForwardMatch),
		completeByStart: make(map[int]*linkedhashset.Set),
		completeByEnd:   make(map[int]*linkedhashset.Set),
		awaitingNext:    make(map[string]*iteratable.Set),
		pendingSettle:   make(map[int]*iteratable.Set),
		agenda:          linkedlistqueue.New(),
	}
}

func key(ext string, pos int) string {
	return fmt.Sprintf("%s@%d", ext, pos)
}

func setAt(m map[int]*linkedhashset.Set, pos int) *linkedhashset.Set {
	s, ok := m[pos]
	if !ok {
		s = linkedhashset.New()
		m[pos] = s
	}
	return s
}

func iterSetAt(m map[int]*iteratable.Set, pos int) *iteratable.Set {
	s, ok := m[pos]
	if !ok {
		s = iteratable.NewSet(0)
		m[pos] = s
	}
	return s
}

func iterSetAtKey(m map[string]*iteratable.Set, k string) *iteratable.Set {
	s, ok := m[k]
	if !ok {
		s = iteratable.NewSet(0)
		m[k] = s
	}
	return s
}

// completeDedupKey hashes a complete match's structural identity (§4.6):
// rule, span, left/right context witnesses, children, and depth. Two
// complete matches with the same key are the same match.
func completeDedupKey(m *CompleteMatch) string {
	childKeys := make([]string, len(m.Children))
	for i, c := range m.Children {
		childKeys[i] = completeDedupKey(c)
	}
	var leftKey, rightKey string
	if m.LeftCtx != nil {
		leftKey = completeDedupKey(m.LeftCtx)
	}
	if m.RightCtx != nil {
		rightKey = completeDedupKey(m.RightCtx)
	}
	h, err := structhash.Hash(struct {
		Rule        grammar.RuleName
		Start, End  int
		Left, Right string
		Children    []string
		Depth       int
	}{m.Rule.RuleName(), m.Start, m.End, leftKey, rightKey, childKeys, m.Depth}, 1)
	if err != nil {
		panic(err) // structhash only fails on unhashable types; our struct is never such
	}
	return h
}

// forwardDedupKey hashes a forward match's structural identity (§4.6).
func forwardDedupKey(f *ForwardMatch) string {
	childKeys := make([]string, len(f.ChildrenSoFar))
	for i, c := range f.ChildrenSoFar {
		childKeys[i] = completeDedupKey(c)
	}
	var leftKey string
	if f.LeftBrother != nil {
		leftKey = completeDedupKey(f.LeftBrother)
	}
	h, err := structhash.Hash(struct {
		Rule       grammar.RuleName
		Start, End int
		Dot        int
		Left       string
		Children   []string
	}{f.Rule.RuleName(), f.Start, f.End, f.Dot, leftKey, childKeys}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// InsertComplete adds m to the chart if it is not a duplicate (§4.6
// property 7: "insertion is idempotent"), enqueuing it onto the
// saturation agenda. Returns the canonical match (m itself if newly
// inserted, or the previously-seen equal match).
func (c *Chart) InsertComplete(m *CompleteMatch) *CompleteMatch {
	checkInvariants(m)
	k := completeDedupKey(m)
	if existing, ok := c.completeSeen[k]; ok {
		return existing
	}
	c.completeSeen[k] = m
	setAt(c.completeByStart, m.Start).Add(m)
	setAt(c.completeByEnd, m.End).Add(m)
	c.agenda.Enqueue(agendaItem{complete: m})
	tracer().Debugf("chart: inserted complete %s", m)
	return m
}

// InsertForward adds f to the chart if it is not a duplicate, enqueuing
// it onto the saturation agenda.
func (c *Chart) InsertForward(f *ForwardMatch) *ForwardMatch {
	k := forwardDedupKey(f)
	if existing, ok := c.forwardSeen[k]; ok {
		return existing
	}
	c.forwardSeen[k] = f
	if f.done() {
		iterSetAt(c.pendingSettle, f.End).Add(f)
	} else {
		iterSetAtKey(c.awaitingNext, key(f.Rule.Act[f.Dot], f.End)).Add(f)
	}
	c.agenda.Enqueue(agendaItem{forward: f})
	tracer().Debugf("chart: inserted forward %s", f)
	return f
}

// completesStartingAt returns every complete match currently in the chart
// whose Start equals pos.
func (c *Chart) completesStartingAt(pos int) []*CompleteMatch {
	s, ok := c.completeByStart[pos]
	if !ok {
		return nil
	}
	return asCompletes(s.Values())
}

// completesEndingAt returns every complete match currently in the chart
// whose End equals pos.
func (c *Chart) completesEndingAt(pos int) []*CompleteMatch {
	s, ok := c.completeByEnd[pos]
	if !ok {
		return nil
	}
	return asCompletes(s.Values())
}

func asCompletes(vs []interface{}) []*CompleteMatch {
	out := make([]*CompleteMatch, len(vs))
	for i, v := range vs {
		out[i] = v.(*CompleteMatch)
	}
	return out
}

// AllComplete returns every complete match currently in the chart,
// spanning every position, in no particular order. Parse does not use it;
// it harvests its result from the matches starting at position 0.
func (c *Chart) AllComplete() []*CompleteMatch {
	out := make([]*CompleteMatch, 0, len(c.completeSeen))
	for _, m := range c.completeSeen {
		out = append(out, m)
	}
	return out
}

// Dump writes a human-readable listing of every complete match in the
// chart, grouped by start position, to w. It mirrors gorgo's
// lr/earley/debug.go dumpState/itemSetString helpers, which format an
// Earley state set for inspection rather than for the parser's own use.
func (c *Chart) Dump(w io.Writer) {
	positions := make([]int, 0, len(c.completeByStart))
	for pos := range c.completeByStart {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	for _, pos := range positions {
		fmt.Fprintf(w, "--- complete matches starting at %d ---\n", pos)
		for _, m := range c.completesStartingAt(pos) {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
}
