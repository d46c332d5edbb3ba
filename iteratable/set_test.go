package iteratable

import "testing"

func TestAddContainsRemove(t *testing.T) {
	s := NewSet(0)
	s.Add("a").Add("b")
	if !s.Contains("a") || !s.Contains("b") {
		t.Fatalf("expected both members present")
	}
	s.Remove("a")
	if s.Contains("a") {
		t.Fatalf("expected 'a' removed")
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1, got %d", s.Size())
	}
}

func TestIterationSeesAppendsDuringPass(t *testing.T) {
	s := NewSet(0)
	s.Add(1)
	seen := []int{}
	s.IterateOnce()
	for s.Next() {
		v := s.Item().(int)
		seen = append(seen, v)
		if v < 3 {
			s.Add(v + 1)
		}
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("expected a single pass to observe appends made during it, got %v", seen)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := NewSet(0)
	s.Add("x")
	c := s.Copy()
	c.Add("y")
	if s.Contains("y") {
		t.Fatalf("copy should not affect the original set")
	}
}

func TestUnionAndDifference(t *testing.T) {
	a := NewSet(0)
	a.Add(1).Add(2)
	b := NewSet(0)
	b.Add(2).Add(3)
	diff := a.Difference(b)
	if diff.Size() != 1 || !diff.Contains(1) {
		t.Fatalf("expected difference {1}, got %v", diff.Values())
	}
	a.Union(b)
	if a.Size() != 3 {
		t.Fatalf("expected union of size 3, got %d", a.Size())
	}
}

func TestSubsetFiltersInPlace(t *testing.T) {
	s := NewSet(0)
	s.Add(1).Add(2).Add(3).Add(4)
	s.Subset(func(v interface{}) bool { return v.(int)%2 == 0 })
	if s.Size() != 2 || !s.Contains(2) || !s.Contains(4) {
		t.Fatalf("expected {2,4}, got %v", s.Values())
	}
}
