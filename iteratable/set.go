package iteratable

import (
	"bytes"
	"fmt"
)

// Set is a destructive, insertion-ordered set of arbitrary comparable
// values. Every mutating operation (Add, Remove, Subset, Union) changes
// the receiver in place; Copy and Difference are the only two that
// return an independent set.
//
// Iteration follows a cursor protocol rather than Go's range, because
// chart-saturation loops routinely append new items to a set while a
// single pass over it is still in progress (new matches discovered while
// examining earlier ones must still be visited this pass):
//
//	S.IterateOnce()
//	for S.Next() {
//	    item := S.Item()
//	    ...
//	}
type Set struct {
	index  map[interface{}]struct{}
	order  []interface{}
	cursor int
}

// NewSet creates an empty set, pre-sizing its backing storage to
// sizeHint.
func NewSet(sizeHint int) *Set {
	return &Set{
		index: make(map[interface{}]struct{}, sizeHint),
		order: make([]interface{}, 0, sizeHint),
	}
}

// Add inserts item if not already present. Returns the receiver, so Adds
// may be chained.
func (s *Set) Add(item interface{}) *Set {
	if _, ok := s.index[item]; ok {
		return s
	}
	s.index[item] = struct{}{}
	s.order = append(s.order, item)
	return s
}

// Remove deletes item from the set, if present.
func (s *Set) Remove(item interface{}) {
	if _, ok := s.index[item]; !ok {
		return
	}
	delete(s.index, item)
	for i, v := range s.order {
		if v == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			if s.cursor > i {
				s.cursor--
			}
			break
		}
	}
}

// Contains reports whether item is a member.
func (s *Set) Contains(item interface{}) bool {
	_, ok := s.index[item]
	return ok
}

// Size returns the number of members.
func (s *Set) Size() int {
	return len(s.order)
}

// Empty reports whether the set has no members.
func (s *Set) Empty() bool {
	return len(s.order) == 0
}

// Copy returns an independent set with the same members, in the same
// order. The copy is not destructive to the receiver.
func (s *Set) Copy() *Set {
	c := NewSet(len(s.order))
	for _, v := range s.order {
		c.Add(v)
	}
	return c
}

// Union adds every member of other to the receiver, in other's order,
// and returns the receiver.
func (s *Set) Union(other *Set) *Set {
	if other == nil {
		return s
	}
	for _, v := range other.order {
		s.Add(v)
	}
	return s
}

// Difference returns a new set holding every member of the receiver not
// present in other. Neither operand is mutated.
func (s *Set) Difference(other *Set) *Set {
	d := NewSet(len(s.order))
	for _, v := range s.order {
		if other == nil || !other.Contains(v) {
			d.Add(v)
		}
	}
	return d
}

// Subset filters the receiver in place, keeping only members for which
// pred returns true, and returns the receiver.
func (s *Set) Subset(pred func(interface{}) bool) *Set {
	kept := s.order[:0:0]
	for _, v := range s.order {
		if pred(v) {
			kept = append(kept, v)
		} else {
			delete(s.index, v)
		}
	}
	s.order = kept
	s.cursor = -1
	return s
}

// Each calls f once per member, in insertion order.
func (s *Set) Each(f func(interface{})) {
	for _, v := range s.order {
		f(v)
	}
}

// Values returns a snapshot slice of the members, in insertion order.
func (s *Set) Values() []interface{} {
	out := make([]interface{}, len(s.order))
	copy(out, s.order)
	return out
}

// First returns an arbitrary (the earliest-inserted) member, or nil if
// the set is empty.
func (s *Set) First() interface{} {
	if len(s.order) == 0 {
		return nil
	}
	return s.order[0]
}

// IterateOnce (re)starts a single cursor-based pass over the set. See
// the Set doc comment for why this is not plain range iteration.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next advances the cursor and reports whether another item is
// available via Item.
func (s *Set) Next() bool {
	s.cursor++
	return s.cursor < len(s.order)
}

// Item returns the member the cursor currently points at. Call only
// after Next reported true.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.order) {
		return nil
	}
	return s.order[s.cursor]
}

func (s *Set) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, v := range s.order {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteString("}")
	return b.String()
}
