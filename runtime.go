package willow

// temporaryCount is the fixed size of the per-activation scratch-cell bank.
const temporaryCount = 4

// RuntimeEnv is the transient bundle threaded through an executing
// program: the owning object, the call stack, the owner's heap, the
// program pool, and the object manager, plus a bank of scratch cells
// private to the current activation.
//
// The shared fields (Stack, Pool, Manager, Executor) are long-lived
// pointers common to every activation in one tick; Owner, Heap, and the
// temporaries change on every nested call, via Clone.
type RuntimeEnv struct {
	Owner   *Object
	Stack   *Stack
	Heap    *Heap
	Pool    *ProgramPool
	Manager *Manager

	// Executor runs bytecode programs; it is supplied by the (out-of-scope)
	// compiler/interpreter collaborator. A nil Executor is fine as long as
	// only native programs are ever invoked.
	Executor BytecodeExecutor

	temporaries [temporaryCount]Value
}

// NewRuntimeEnv builds the initial bundle for one tick or top-level call.
func NewRuntimeEnv(owner *Object, stack *Stack, pool *ProgramPool, manager *Manager) *RuntimeEnv {
	return &RuntimeEnv{
		Owner:   owner,
		Stack:   stack,
		Heap:    owner.Heap(),
		Pool:    pool,
		Manager: manager,
	}
}

// clone shares every long-lived reference (stack, pool, manager, executor)
// with the parent environment but scopes Owner/Heap to owner and gives the
// nested call a fresh, independent temporary bank.
func (r *RuntimeEnv) clone(owner *Object) *RuntimeEnv {
	return &RuntimeEnv{
		Owner:    owner,
		Stack:    r.Stack,
		Heap:     owner.Heap(),
		Pool:     r.Pool,
		Manager:  r.Manager,
		Executor: r.Executor,
	}
}

// Clone is the exported form of clone, for compiler/interpreter
// collaborators that need to build a nested activation themselves (for
// example to run a bytecode call instruction).
func (r *RuntimeEnv) Clone(owner *Object) *RuntimeEnv { return r.clone(owner) }

// Temp returns a borrowed pointer to one of the fixed scratch cells
// reserved for the currently-executing program. index must be within
// [0, temporaryCount).
func (r *RuntimeEnv) Temp(index int) *Value {
	if index < 0 || index >= temporaryCount {
		panic(newFault(FaultIndexOutOfRange, r.Owner.Name(), "<temp>", "temporary cell index out of range"))
	}
	return &r.temporaries[index]
}

// Destroy clears the temporary bank. It never touches the shared
// subsystems: those are owned by the VM, not by any one RuntimeEnv.
func (r *RuntimeEnv) Destroy() {
	r.temporaries = [temporaryCount]Value{}
}
