package willow

import "github.com/zephyrtronium/contains"

// visitedSet tracks handles already seen during a single tree walk, so a
// malformed, cyclic parent/child graph cannot turn the walk into an
// infinite loop.
type visitedSet struct {
	set contains.Set
}

func newVisitedSet() *visitedSet {
	return &visitedSet{}
}

// add records h as visited and reports whether it was newly added (false
// if h had already been seen).
func (v *visitedSet) add(h Handle) bool {
	return v.set.Add(uintptr(h))
}
