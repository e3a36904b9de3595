package willow

import (
	"github.com/google/uuid"
)

// applicationTypeName is the type name the root object is spawned under.
const applicationTypeName = "Application"

// VM bundles the resources one embedding host needs: the object manager,
// the program pool, and the top-level stack used to drive ticks.
type VM struct {
	// SessionID identifies this VM instance in diagnostics, so a host
	// embedding several VMs can correlate Fault reports with the session
	// that raised them.
	SessionID uuid.UUID

	Pool    *ProgramPool
	Objects *Manager

	Executor BytecodeExecutor

	stack *Stack
}

// NewVM prepares an empty VM with no root object yet.
func NewVM() *VM {
	return &VM{
		SessionID: uuid.New(),
		Pool:      NewProgramPool(),
		Objects:   NewManager(),
		stack:     NewStack(),
	}
}

// Destroy releases the VM's subsystems. The VM value itself is reset
// rather than freed; a host done with it lets it go out of scope.
func (vm *VM) Destroy() {
	vm.Objects = NewManager()
	vm.Pool = NewProgramPool()
	vm.stack = NewStack()
}

// renv builds the top-level runtime environment for one call into owner,
// sharing this VM's stack, pool, manager, and executor. A nil owner (no
// object to scope to, e.g. sweeping with no root left) gets an empty
// throwaway heap: Owner/Heap are overwritten by RuntimeEnv.clone on every
// nested call anyway, so nothing downstream observes this placeholder.
func (vm *VM) renv(owner *Object) *RuntimeEnv {
	if owner == nil {
		owner = &Object{typeName: applicationTypeName, heap: NewHeap(), manager: vm.Objects}
	}
	r := NewRuntimeEnv(owner, vm.stack, vm.Pool, vm.Objects)
	r.Executor = vm.Executor
	return r
}

// Launch spawns the root object, named "Application". Calling Launch on
// an already-launched VM returns the existing root handle.
func (vm *VM) Launch() Handle {
	root := vm.Objects.Root()
	if root != NullHandle {
		return root
	}
	return vm.Objects.Spawn(vm.renv(nil), applicationTypeName, NullHandle, nil, nil, nil)
}

// IsActive reports whether the root object still exists.
func (vm *VM) IsActive() bool {
	return vm.Objects.Root() != NullHandle
}

// Update runs one tick: a pre-order walk of the live tree, each object's
// Update dispatching "state:<current state>" under its type name,
// followed by the end-of-tick sweep. It reports whether the VM is still
// active afterward.
func (vm *VM) Update() bool {
	root := vm.Objects.Get(vm.Objects.Root())
	if root != nil {
		root.TraverseTree(func(o *Object) {
			o.Update(vm.renv(o))
		})
	}
	vm.Objects.Sweep(vm.renv(root))
	return vm.IsActive()
}

// Kill marks the root object for destruction; the VM becomes inactive at
// the next sweep.
func (vm *VM) Kill() {
	if root := vm.Objects.Get(vm.Objects.Root()); root != nil {
		root.Kill()
	}
}

// SpawnObject spawns a new object of type name under parent.
func (vm *VM) SpawnObject(parent Handle, name string, userData interface{}, onInit func(*Object) bool, onRelease func(*Object)) Handle {
	owner := vm.Objects.Get(parent)
	if owner == nil {
		owner = &Object{typeName: name, heap: NewHeap(), manager: vm.Objects}
	}
	return vm.Objects.Spawn(vm.renv(owner), name, parent, userData, onInit, onRelease)
}

// Bind registers a native program under (objectName, methodName) with the
// given arity.
func (vm *VM) Bind(objectName, methodName string, arity int, fn NativeFn) {
	vm.Pool.Put(objectName, methodName, NewNativeProgram(arity, fn))
}

// Root returns the root object, or nil if the VM has not been launched.
func (vm *VM) Root() *Object {
	return vm.Objects.Get(vm.Objects.Root())
}
