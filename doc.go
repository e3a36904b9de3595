/*
Package willow implements the runtime core of a small scripting language
designed to be embedded inside interactive applications and games. It
executes compiled programs attached to objects arranged in a living tree;
each tick the tree is traversed and every object advances its state
machine by running its current state's program. Scripts manipulate
numbers, strings, booleans, opaque object handles, and a compact typed
Value cell shared across every subsystem.

This package covers the execution substrate: the Value cell and its
conversions, the per-object Heap of value cells, the call Stack used to
pass parameters and local frames between programs, the ProgramPool that
maps (object-name, method-name) pairs to executable Programs with
cross-object fallback, the Manager that owns every live Object, allocates
stable Handles, and walks the tree, and the RuntimeEnv that bundles these
resources for one executing program.

The surface-syntax compiler, bytecode opcode decoder, lexer, and text I/O
are external collaborators; this package only owns the call convention
and the BytecodeExecutor interface they plug into. The builtin/array and
builtin/dict subpackages are canonical exemplars showing how a native
object wires into the pool and heap.

Embedding

Use NewVM to create a VM, Bind native methods onto it, then Launch to
spawn the root object. Call Update once per tick to advance every live
object's state machine and sweep anything killed during that tick.

	vm := willow.NewVM()
	vm.Bind("Counter", "state:main", 0, func(renv *willow.RuntimeEnv, owner *willow.Object, params []willow.Value, count int) *willow.Value {
		return nil
	})
	root := vm.Launch()
	vm.SpawnObject(root, "Counter", nil, nil, nil)
	for vm.Update() {
	}
*/
package willow
