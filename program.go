package willow

// NativeFn is the signature of a native program: the runtime environment
// for this activation, the owning object, the parameter cells, and their
// count, producing a result cell or nothing (nil is coerced to Null by
// the caller). The environment comes first so native code can reach the
// manager, the pool, and the stack — a native method may spawn and
// destroy other objects or dispatch further calls, not just touch its
// owner's heap.
type NativeFn func(renv *RuntimeEnv, owner *Object, params []Value, count int) *Value

// BytecodeExecutor runs a compiled opcode vector against a runtime
// environment. The compiler/interpreter collaborator supplies the
// executor; this package only owns the call convention around it.
type BytecodeExecutor interface {
	Execute(renv *RuntimeEnv, chunk *Chunk, args []Value) (Value, error)
}

// Chunk is a compiled opcode vector plus its local constant pool, as
// produced by the (out-of-scope) compiler.
type Chunk struct {
	Opcodes   []byte
	Constants []Value
}

// Program is a callable registered in a ProgramPool under an
// (object-name, method-name) key: either bytecode interpreted by an
// injected BytecodeExecutor, or a native Go function.
type Program struct {
	Arity int

	native   NativeFn
	chunk    *Chunk
	executor BytecodeExecutor
}

// NewNativeProgram wraps a Go function as a Program with the given declared
// arity.
func NewNativeProgram(arity int, fn NativeFn) *Program {
	return &Program{Arity: arity, native: fn}
}

// NewBytecodeProgram wraps a compiled chunk as a Program. The executor
// that runs the chunk's opcodes is resolved at invocation time, from the
// runtime environment passed to Invoke.
func NewBytecodeProgram(arity int, chunk *Chunk) *Program {
	return &Program{Arity: arity, chunk: chunk}
}

// IsNative reports whether this program is a native function rather than a
// bytecode chunk.
func (p *Program) IsNative() bool { return p.native != nil }

// Invoke runs the program. The caller has already pushed a frame and
// exactly Arity cells onto renv.Stack; Invoke dispatches, returns the
// produced cell (Null if the native function or executor produced none),
// and leaves popping that frame to the caller.
func (p *Program) Invoke(renv *RuntimeEnv, owner *Object, args []Value) (Value, error) {
	if p.native != nil {
		result := p.native(renv, owner, args, len(args))
		if result == nil {
			return NewNull(), nil
		}
		return *result, nil
	}
	if renv.Executor == nil {
		panic(newFault(FaultUnknownOpcode, owner.Name(), "<bytecode>", "no bytecode executor installed on this runtime environment"))
	}
	return renv.Executor.Execute(renv, p.chunk, args)
}
