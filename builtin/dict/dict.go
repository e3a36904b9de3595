// Package dict implements the Dictionary built-in object: a string-keyed
// map with deterministic insertion-order iteration, backed by the
// object's private heap for its values.
package dict

import "willow"

// TypeName is the object-name these methods are registered under.
const TypeName = "Dictionary"

// index is the object's user data: an insertion-ordered key list plus a
// key -> heap-pointer map. Values live in the heap, so they obey the same
// ownership rules as everything else in the runtime; the index itself is
// plain Go bookkeeping.
type index struct {
	order []string
	slots map[string]willow.Ptr
}

func newIndex() *index {
	return &index{slots: make(map[string]willow.Ptr)}
}

func indexOf(o *willow.Object) *index {
	idx, _ := o.UserData().(*index)
	return idx
}

// Register installs the Dictionary methods into pool.
func Register(pool *willow.ProgramPool) {
	pool.Put(TypeName, "__constructor", willow.NewNativeProgram(0, construct))
	pool.Put(TypeName, "__destructor", willow.NewNativeProgram(0, destroy))
	pool.Put(TypeName, "get", willow.NewNativeProgram(1, get))
	pool.Put(TypeName, "set", willow.NewNativeProgram(2, set))
	pool.Put(TypeName, "has", willow.NewNativeProgram(1, has))
	pool.Put(TypeName, "delete", willow.NewNativeProgram(1, deleteKey))
	pool.Put(TypeName, "count", willow.NewNativeProgram(0, count))
	pool.Put(TypeName, "keys", willow.NewNativeProgram(0, keys))
}

// construct installs an empty index as the object's user data, unless the
// embedder already supplied one via NewUserData at spawn time.
func construct(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	if indexOf(owner) == nil {
		owner.SetUserData(newIndex())
	}
	return nil
}

// destroy is a no-op: the heap cells backing every value are freed
// implicitly when the owning object is destroyed.
func destroy(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	return nil
}

// get returns the value stored under key k, or Null if k is absent. A
// missing key is a recoverable outcome, never a Fault.
func get(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	idx := indexOf(owner)
	if idx == nil {
		v := willow.NewNull()
		return &v
	}
	k := params[0].GetString()
	ptr, ok := idx.slots[k]
	if !ok {
		v := willow.NewNull()
		return &v
	}
	v := owner.Heap().At(ptr).Clone()
	return &v
}

// set stores v under key k, overwriting any existing value in place, and
// returns v. A new key is appended to the insertion-order list.
func set(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	idx := indexOf(owner)
	k := params[0].GetString()
	v := params[1]
	if ptr, ok := idx.slots[k]; ok {
		willow.Copy(owner.Heap().At(ptr), v)
		return &v
	}
	ptr := owner.Heap().Malloc()
	willow.Copy(owner.Heap().At(ptr), v)
	idx.slots[k] = ptr
	idx.order = append(idx.order, k)
	return &v
}

// has reports whether key k is present.
func has(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	idx := indexOf(owner)
	k := params[0].GetString()
	_, ok := idx.slots[k]
	v := willow.NewBoolean(ok)
	return &v
}

// deleteKey removes key k, freeing its heap cell. It is a no-op if k is
// absent.
func deleteKey(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	idx := indexOf(owner)
	k := params[0].GetString()
	ptr, ok := idx.slots[k]
	if !ok {
		return nil
	}
	owner.Heap().Free(ptr)
	delete(idx.slots, k)
	for i, existing := range idx.order {
		if existing == k {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
	return nil
}

// count reports the number of entries currently stored.
func count(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, _ int) *willow.Value {
	idx := indexOf(owner)
	v := willow.NewNumber(float64(len(idx.order)))
	return &v
}

// keys reports how many keys there are to iterate. Native methods return
// a single cell rather than a sequence, so full insertion-order iteration
// is exposed through ForEach for embedders working in Go directly.
func keys(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
	idx := indexOf(owner)
	v := willow.NewNumber(float64(len(idx.order)))
	return &v
}

// ForEach walks every entry in insertion order, yielding the key and a
// borrowed pointer to its value cell. It exists for embedders that spawn
// a Dictionary object directly and want idiomatic Go iteration rather than
// going through the native get/set calls one key at a time.
func ForEach(owner *willow.Object, fn func(key string, value *willow.Value)) {
	idx := indexOf(owner)
	if idx == nil {
		return
	}
	for _, k := range idx.order {
		fn(k, owner.Heap().At(idx.slots[k]))
	}
}

// NewUserData returns the user-data value to pass to Manager.Spawn (or
// VM.SpawnObject) when spawning a Dictionary: an empty index, ready for
// __constructor to find in place via UserData.
func NewUserData() interface{} {
	return newIndex()
}
