package willow

import "sort"

// Stats is a read-only snapshot of the manager's bookkeeping: live count,
// the handle high-water mark, and how many sweeps have run.
type Stats struct {
	LiveObjects     int
	HandleHighWater Handle
	SweepCount      int
}

// Manager is the authoritative registry of live objects: it owns the
// handle allocator, spawns and destroys objects, and drives the tree
// walk. Handles are allocated monotonically and never reused within one
// session.
type Manager struct {
	objects map[Handle]*Object
	next    Handle
	root    Handle
	sweeps  int
}

// NewManager returns an empty manager. The root is created lazily, the
// first time Spawn is called with a NullHandle parent.
func NewManager() *Manager {
	return &Manager{
		objects: make(map[Handle]*Object),
		next:    1, // 0 is reserved for NullHandle
	}
}

// Get returns the live object for handle, or nil if it does not exist.
func (m *Manager) Get(handle Handle) *Object { return m.get(handle) }

func (m *Manager) get(handle Handle) *Object { return m.objects[handle] }

// Exists reports whether handle names a live object.
func (m *Manager) Exists(handle Handle) bool {
	_, ok := m.objects[handle]
	return ok
}

// Root returns the handle of the tree's root, or NullHandle if none has
// been spawned yet.
func (m *Manager) Root() Handle { return m.root }

// Spawn allocates a handle, constructs the object record with an empty
// heap, runs __constructor (if bound) with no parameters, then runs
// onInit. If onInit returns false, the object is destroyed immediately and
// NullHandle is returned. The first NullHandle-parent spawn becomes the
// tree's root.
func (m *Manager) Spawn(renv *RuntimeEnv, typeName string, parent Handle, userData interface{}, onInit func(*Object) bool, onRelease func(*Object)) Handle {
	handle := m.next
	m.next++

	obj := &Object{
		typeName:  typeName,
		handle:    handle,
		parent:    parent,
		heap:      NewHeap(),
		state:     mainState,
		userData:  userData,
		onInit:    onInit,
		onRelease: onRelease,
		manager:   m,
	}
	m.objects[handle] = obj

	if parent == NullHandle {
		if m.root == NullHandle {
			m.root = handle
		}
	} else if p := m.get(parent); p != nil {
		p.AddChild(handle)
	}

	obj.CallMethod(renv, "__constructor", nil)

	if onInit != nil && !onInit(obj) {
		m.Destroy(renv, handle)
		return NullHandle
	}
	return handle
}

// SpawnChild is a convenience binding of Spawn to an explicit parent.
func (m *Manager) SpawnChild(renv *RuntimeEnv, typeName string, parent Handle, userData interface{}, onInit func(*Object) bool, onRelease func(*Object)) Handle {
	return m.Spawn(renv, typeName, parent, userData, onInit, onRelease)
}

// Destroy runs onRelease and __destructor, detaches the object from its
// parent, and destroys its heap and record. An object with children
// recursively destroys them first, in reverse insertion order.
func (m *Manager) Destroy(renv *RuntimeEnv, handle Handle) {
	obj := m.get(handle)
	if obj == nil {
		return
	}
	for i := len(obj.children) - 1; i >= 0; i-- {
		m.Destroy(renv, obj.children[i])
	}
	if obj.onRelease != nil {
		obj.onRelease(obj)
	}
	obj.CallMethod(renv, "__destructor", nil)
	if p := m.get(obj.parent); p != nil {
		p.RemoveChild(handle)
	}
	obj.heap.Destroy()
	delete(m.objects, handle)
	if m.root == handle {
		m.root = NullHandle
	}
}

// Sweep removes every object whose killed flag is set. Destroying a killed
// object cascades to its children (Destroy's own contract), so the
// parent-child relation remains a forest after every sweep: a child
// destroyed as part of its parent's cascade is simply skipped when Sweep
// reaches its own, now-stale handle.
func (m *Manager) Sweep(renv *RuntimeEnv) {
	m.sweeps++
	killed := make([]Handle, 0)
	for h, obj := range m.objects {
		if obj.killed {
			killed = append(killed, h)
		}
	}
	sort.Slice(killed, func(i, j int) bool { return killed[i] < killed[j] })
	for _, h := range killed {
		m.Destroy(renv, h)
	}
}

// Traverse walks the live tree from the root in pre-order. It is a no-op
// if no root has been spawned.
func (m *Manager) Traverse(visitor Visitor) {
	if root := m.get(m.root); root != nil {
		root.TraverseTree(visitor)
	}
}

// Stats reports a read-only snapshot of the manager's counters.
func (m *Manager) Stats() Stats {
	return Stats{
		LiveObjects:     len(m.objects),
		HandleHighWater: m.next - 1,
		SweepCount:      m.sweeps,
	}
}
