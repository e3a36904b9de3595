package willow

// Handle is a stable 32-bit-wide identifier for a live object, the only
// long-lived reference to it outside the Manager. Zero is the reserved
// null handle.
type Handle uint32

// NullHandle is the reserved handle value meaning "no object."
const NullHandle Handle = 0

// mainState is the state every new object starts in.
const mainState = "main"

// Object is a live instance owned by a Manager: a type name, a stable
// handle, a position in the tree, a private heap, and the bookkeeping its
// state machine and lifecycle need.
type Object struct {
	typeName string
	handle   Handle
	parent   Handle
	children []Handle

	heap  *Heap
	state string

	userData  interface{}
	onInit    func(*Object) bool
	onRelease func(*Object)

	killed bool

	manager *Manager
}

// Handle returns the object's stable handle.
func (o *Object) Handle() Handle { return o.handle }

// Name returns the object's type name.
func (o *Object) Name() string { return o.typeName }

// Parent returns the handle of the object's parent, or NullHandle at the
// root.
func (o *Object) Parent() Handle { return o.parent }

// Children returns the object's child handles in insertion order. The
// returned slice is a copy; mutating it does not affect the object.
func (o *Object) Children() []Handle {
	return append([]Handle(nil), o.children...)
}

// Heap returns the object's private heap.
func (o *Object) Heap() *Heap { return o.heap }

// Manager returns the manager that owns this object.
func (o *Object) Manager() *Manager { return o.manager }

// UserData returns the opaque pointer the embedder attached at spawn time.
func (o *Object) UserData() interface{} { return o.userData }

// SetUserData replaces the object's attached data. A builtin's
// __constructor uses this to lazily install its own bookkeeping when the
// embedder spawned it without supplying any.
func (o *Object) SetUserData(data interface{}) { o.userData = data }

// State returns the object's current state name.
func (o *Object) State() string { return o.state }

// SetState switches which program runs on the object's next tick. An
// invalid (unregistered) state name is tolerated: it simply produces no
// program on the next lookup.
func (o *Object) SetState(name string) { o.state = name }

// IsKilled reports whether the object has been marked for destruction.
func (o *Object) IsKilled() bool { return o.killed }

// Kill marks the object for deletion. It is idempotent and takes effect at
// the manager's next Sweep; it does not abort any call already in
// progress into this object.
func (o *Object) Kill() { o.killed = true }

// AddChild appends a child handle to the object's child list.
func (o *Object) AddChild(h Handle) {
	o.children = append(o.children, h)
}

// RemoveChild deletes h from the object's child list, if present.
func (o *Object) RemoveChild(h Handle) {
	for i, c := range o.children {
		if c == h {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// CallMethod dispatches to the program bound to (o.Name(), method) via the
// pool, pushing args as a new frame and popping it afterward. A method
// that is not found returns Null silently: absence is a legitimate
// outcome, since states may be unimplemented for some types.
func (o *Object) CallMethod(renv *RuntimeEnv, method string, args []Value) Value {
	program, ok := renv.Pool.Get(o.typeName, method)
	if !ok {
		return NewNull()
	}
	return invokeProgram(renv, o, program, args)
}

// Update runs the program bound to "state:<current state>" under the
// object's type name. If none is registered, this is a no-op.
func (o *Object) Update(renv *RuntimeEnv) {
	o.CallMethod(renv, "state:"+o.state, nil)
}

// Visitor is called once per object during TraverseTree, pre-order.
type Visitor func(o *Object)

// TraverseTree walks the subtree rooted at o in pre-order, visiting
// children in insertion order. Each node's child list is snapshotted
// before the visitor runs, and any object whose handle was allocated after
// the walk began is skipped, so a child spawned mid-tick (under any node)
// is deferred to the next tick rather than joining the walk already in
// progress. A killed
// object is still visited for the remainder of the tick it was killed in:
// Kill only sets a flag, and only Manager.Sweep, run at tick end, removes
// it from the tree, so this walk does not filter on the killed flag at
// all. A set of visited handles guards against a malformed, cyclic
// parent/child graph ever causing an infinite walk.
func (o *Object) TraverseTree(visitor Visitor) {
	o.traverse(visitor, newVisitedSet(), o.manager.next)
}

func (o *Object) traverse(visitor Visitor, visited *visitedSet, cutoff Handle) {
	if !visited.add(o.handle) {
		return
	}
	snapshot := append([]Handle(nil), o.children...)
	visitor(o)
	for _, h := range snapshot {
		if h >= cutoff {
			continue
		}
		if child := o.manager.get(h); child != nil {
			child.traverse(visitor, visited, cutoff)
		}
	}
}

// invokeProgram runs program with a fresh frame and a cloned runtime
// environment scoped to owner: push a frame, push args, dispatch, pop the
// frame. Arguments sit at non-negative frame-relative indexes for the
// callee.
func invokeProgram(renv *RuntimeEnv, owner *Object, program *Program, args []Value) Value {
	child := renv.clone(owner)
	renv.Stack.PushFrame()
	for _, a := range args {
		renv.Stack.Push(a)
	}
	result, err := program.Invoke(child, owner, args)
	renv.Stack.PopFrame()
	if err != nil {
		panic(err)
	}
	return result
}
