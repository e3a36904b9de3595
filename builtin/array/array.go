// Package array implements the Array built-in object: a resizable array
// backed entirely by an object's private heap, with no native Go slice or
// user-data struct of its own.
package array

import "willow"

// TypeName is the object-name these methods are registered under.
const TypeName = "Array"

// lengthPtr is the heap slot holding the array's length; element i lives
// at heap slot i+1, so the heap's own bump-allocation tail does all the
// append bookkeeping.
const lengthPtr willow.Ptr = 0

// maxGrowSpan bounds how far a single set call may extend the array, to
// catch a runaway index rather than silently allocating gigabytes.
const maxGrowSpan = 1024

func elementPtr(i int) willow.Ptr { return willow.Ptr(i + 1) }

func length(o *willow.Object) int {
	return int(o.Heap().At(lengthPtr).GetNumber())
}

func setLength(o *willow.Object, n int) {
	o.Heap().At(lengthPtr).SetNumber(float64(n))
}

// Register installs the Array methods into pool.
func Register(pool *willow.ProgramPool) {
	pool.Put(TypeName, "__constructor", willow.NewNativeProgram(0, construct))
	pool.Put(TypeName, "__destructor", willow.NewNativeProgram(0, destroy))
	pool.Put(TypeName, "get", willow.NewNativeProgram(1, get))
	pool.Put(TypeName, "set", willow.NewNativeProgram(2, set))
	pool.Put(TypeName, "length", willow.NewNativeProgram(0, length0))
	pool.Put(TypeName, "push", willow.NewNativeProgram(1, push))
	pool.Put(TypeName, "pop", willow.NewNativeProgram(0, pop))
	pool.Put(TypeName, "shift", willow.NewNativeProgram(0, shift))
	pool.Put(TypeName, "unshift", willow.NewNativeProgram(1, unshift))
	pool.Put(TypeName, "reverse", willow.NewNativeProgram(0, reverse))
	pool.Put(TypeName, "indexOf", willow.NewNativeProgram(1, indexOf))
	pool.Put(TypeName, "sort", willow.NewNativeProgram(0, sortArray))
}

// construct installs the length slot at heap address 0 and sets it to
// zero.
func construct(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	ptr := owner.Heap().Malloc()
	if ptr != lengthPtr {
		panic("array: constructor did not receive a fresh heap")
	}
	owner.Heap().At(lengthPtr).SetNumber(0)
	return nil
}

// destroy is a no-op: the heap is freed implicitly when the owning object
// is destroyed.
func destroy(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	return nil
}

// get returns element i, 0-based, failing fatally on out-of-range.
func get(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	i := int(params[0].GetNumber())
	l := length(owner)
	if i < 0 || i >= l {
		panic(willowIndexFault(owner, "get", i, l))
	}
	v := owner.Heap().At(elementPtr(i)).Clone()
	return &v
}

// set writes element i. An in-range write overwrites the cell; an index at
// or beyond the current length grows the array with null cells up to i,
// bounded by maxGrowSpan to catch a runaway index. It returns v.
func set(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	i := int(params[0].GetNumber())
	v := params[1]
	l := length(owner)
	if i < 0 {
		panic(willowIndexFault(owner, "set", i, l))
	}
	if i >= l {
		if i-l >= maxGrowSpan {
			panic(willow.NewIndexTooFarFault(owner.Name(), "set", i, l))
		}
		h := owner.Heap()
		for idx := l; idx <= i; idx++ {
			ptr := h.Malloc()
			h.At(ptr).SetNull()
		}
		setLength(owner, i+1)
	}
	willow.Copy(owner.Heap().At(elementPtr(i)), v)
	return &v
}

func length0(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	v := willow.NewNumber(float64(length(owner)))
	return &v
}

// push appends v in O(1): the heap's bump allocator makes this a single
// Malloc plus a length bump.
func push(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	h := owner.Heap()
	l := length(owner)
	ptr := h.Malloc()
	willow.Copy(h.At(ptr), params[0])
	setLength(owner, l+1)
	v := params[0]
	return &v
}

// pop removes and returns the last element in O(1); on an empty array it
// returns Null.
func pop(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	l := length(owner)
	if l == 0 {
		v := willow.NewNull()
		return &v
	}
	h := owner.Heap()
	last := elementPtr(l - 1)
	v := h.At(last).Clone()
	h.Free(last)
	setLength(owner, l-1)
	return &v
}

// shift removes and returns the first element, shifting the rest down by
// one (O(n)); on an empty array it returns Null.
func shift(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	l := length(owner)
	if l == 0 {
		v := willow.NewNull()
		return &v
	}
	h := owner.Heap()
	first := h.At(elementPtr(0)).Clone()
	for i := 1; i < l; i++ {
		willow.Copy(h.At(elementPtr(i-1)), *h.At(elementPtr(i)))
	}
	h.Free(elementPtr(l - 1))
	setLength(owner, l-1)
	return &first
}

// unshift prepends v, shifting the rest up by one (O(n)).
func unshift(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	l := length(owner)
	h := owner.Heap()
	h.Malloc() // grow the tail by one slot
	for i := l; i > 0; i-- {
		willow.Copy(h.At(elementPtr(i)), *h.At(elementPtr(i-1)))
	}
	willow.Copy(h.At(elementPtr(0)), params[0])
	setLength(owner, l+1)
	v := params[0]
	return &v
}

// reverse reverses the array in place, O(n).
func reverse(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	h := owner.Heap()
	l := length(owner)
	for i, j := 0, l-1; i < j; i, j = i+1, j-1 {
		willow.Swap(h.At(elementPtr(i)), h.At(elementPtr(j)))
	}
	return nil
}

// indexOf returns the first index i where compare(array[i], v) == 0, or
// -1 if v is not present.
func indexOf(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	h := owner.Heap()
	l := length(owner)
	for i := 0; i < l; i++ {
		if willow.Compare(*h.At(elementPtr(i)), params[0]) == 0 {
			v := willow.NewNumber(float64(i))
			return &v
		}
	}
	v := willow.NewNumber(-1)
	return &v
}

// sortArray sorts the array in place with a quicksort using a
// median-of-three pivot (first, middle, last). It is not stable.
func sortArray(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	h := owner.Heap()
	l := length(owner)
	quicksort(h, 0, l-1)
	return nil
}

func quicksort(h *willow.Heap, lo, hi int) {
	for lo < hi {
		if hi-lo < 12 {
			insertionSort(h, lo, hi)
			return
		}
		p := partition(h, lo, hi)
		if p-lo < hi-p {
			quicksort(h, lo, p-1)
			lo = p + 1
		} else {
			quicksort(h, p+1, hi)
			hi = p - 1
		}
	}
}

func insertionSort(h *willow.Heap, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		for j := i; j > lo && willow.Compare(*h.At(elementPtr(j)), *h.At(elementPtr(j-1))) < 0; j-- {
			willow.Swap(h.At(elementPtr(j)), h.At(elementPtr(j-1)))
		}
	}
}

// partition picks a median-of-three pivot (first, middle, last), moves it
// out of the way, and partitions [lo, hi] around it in place, returning
// its final index.
func partition(h *willow.Heap, lo, hi int) int {
	mid := lo + (hi-lo)/2
	medianOfThree(h, lo, mid, hi)
	// After medianOfThree, the median of the three sits at mid; swap it to
	// hi-1 to use as the pivot and keep hi itself as a sentinel.
	willow.Swap(h.At(elementPtr(mid)), h.At(elementPtr(hi-1)))
	pivot := h.At(elementPtr(hi - 1)).Clone()

	i := lo
	for j := lo; j < hi-1; j++ {
		if willow.Compare(*h.At(elementPtr(j)), pivot) < 0 {
			willow.Swap(h.At(elementPtr(i)), h.At(elementPtr(j)))
			i++
		}
	}
	willow.Swap(h.At(elementPtr(i)), h.At(elementPtr(hi-1)))
	return i
}

// medianOfThree orders h[a], h[b], h[c] so that h[b] holds their median.
func medianOfThree(h *willow.Heap, a, b, c int) {
	if willow.Compare(*h.At(elementPtr(a)), *h.At(elementPtr(b))) > 0 {
		willow.Swap(h.At(elementPtr(a)), h.At(elementPtr(b)))
	}
	if willow.Compare(*h.At(elementPtr(b)), *h.At(elementPtr(c))) > 0 {
		willow.Swap(h.At(elementPtr(b)), h.At(elementPtr(c)))
	}
	if willow.Compare(*h.At(elementPtr(a)), *h.At(elementPtr(b))) > 0 {
		willow.Swap(h.At(elementPtr(a)), h.At(elementPtr(b)))
	}
}

func willowIndexFault(owner *willow.Object, method string, i, length int) error {
	return willow.NewIndexFault(owner.Name(), method, i, length)
}
