package willow

import "sort"

// Ptr addresses a single cell within a Heap. It is stable for the
// lifetime of the slot it names: At(ptr) returns the same cell until that
// ptr is freed.
type Ptr int

// Heap is a growable vector of value cells, addressed by Ptr, with a
// free-list for reuse and a bump-allocated tail. It backs one Object's
// private storage. The free-list is kept sorted in descending order so
// its last element is always the lowest free index.
type Heap struct {
	cells []Value
	live  []bool
	free  []Ptr
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{}
}

// Malloc returns an unused slot: the lowest free index, popped from the
// end of the descending free-list in O(1), before growing the
// bump-allocated tail.
func (h *Heap) Malloc() Ptr {
	if n := len(h.free); n > 0 {
		p := h.free[n-1]
		h.free = h.free[:n-1]
		h.live[p] = true
		h.cells[p] = Value{}
		return p
	}
	p := Ptr(len(h.cells))
	h.cells = append(h.cells, Value{})
	h.live = append(h.live, true)
	return p
}

// Free marks ptr unused. If ptr is the current tail, the tail shrinks
// immediately (and continues shrinking over any now-free slots beneath it);
// otherwise the slot is inserted into the descending free-list for reuse
// by a later Malloc.
func (h *Heap) Free(ptr Ptr) {
	if !h.validIndex(ptr) || !h.live[ptr] {
		panic(newFault(FaultBadPointer, "Heap", "free", "free of invalid or already-freed pointer"))
	}
	h.live[ptr] = false
	if int(ptr) == len(h.cells)-1 {
		h.cells = h.cells[:ptr]
		h.live = h.live[:ptr]
		for len(h.live) > 0 && !h.live[len(h.live)-1] {
			tail := Ptr(len(h.live) - 1)
			h.cells = h.cells[:tail]
			h.live = h.live[:tail]
			h.free = removePtr(h.free, tail)
		}
		return
	}
	i := sort.Search(len(h.free), func(i int) bool { return h.free[i] < ptr })
	h.free = append(h.free, 0)
	copy(h.free[i+1:], h.free[i:])
	h.free[i] = ptr
}

// At returns a borrowed pointer to the cell at ptr. The returned pointer is
// only stable until that ptr is freed; native methods must not retain it
// across a nested program call, because the nested call may grow the heap.
func (h *Heap) At(ptr Ptr) *Value {
	if !h.validIndex(ptr) || !h.live[ptr] {
		panic(newFault(FaultBadPointer, "Heap", "at", "dereference of invalid or freed pointer"))
	}
	return &h.cells[ptr]
}

// Size reports the logical count of live slots.
func (h *Heap) Size() int {
	n := 0
	for _, ok := range h.live {
		if ok {
			n++
		}
	}
	return n
}

// Destroy releases every allocated cell. The heap is empty and reusable
// afterward.
func (h *Heap) Destroy() {
	h.cells = nil
	h.live = nil
	h.free = nil
}

func (h *Heap) validIndex(ptr Ptr) bool {
	return ptr >= 0 && int(ptr) < len(h.cells)
}

func removePtr(s []Ptr, p Ptr) []Ptr {
	for i, v := range s {
		if v == p {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
