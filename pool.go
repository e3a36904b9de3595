package willow

import "sort"

const baseObjectName = "Object"

// poolEntry pairs a program with the exact (object, method) strings that
// produced its signature, so a hash collision between two distinct pairs
// can be detected and reported instead of silently overwriting one
// program with another.
type poolEntry struct {
	object, method string
	program        *Program
}

// ProgramPool maps (object-name, method-name) pairs to Programs, with a
// fallback lookup under the universal base name "Object" on miss.
type ProgramPool struct {
	entries map[signature]*poolEntry
	byType  map[string][]string // object name -> method names, insertion order
}

// NewProgramPool returns an empty pool.
func NewProgramPool() *ProgramPool {
	return &ProgramPool{
		entries: make(map[signature]*poolEntry),
		byType:  make(map[string][]string),
	}
}

// Put registers program under the exact (object, method) pair. It panics
// with a fatal duplicate-definition Fault if that exact pair is already
// registered, and with a signature-collision Fault if a distinct pair
// hashes to the same signature.
func (p *ProgramPool) Put(object, method string, program *Program) {
	sig := sign(object, method)
	if existing, ok := p.entries[sig]; ok {
		if existing.object == object && existing.method == method {
			panic(newFault(FaultDuplicateProgram, object, method, "method already registered"))
		}
		panic(newFault(FaultSignatureCollision, object, method,
			"signature collides with "+existing.object+"."+existing.method))
	}
	p.entries[sig] = &poolEntry{object: object, method: method, program: program}
	p.byType[object] = append(p.byType[object], method)
}

// Get looks up (object, method), retrying under the base name "Object" on
// miss. It returns (nil, false) if neither is found.
func (p *ProgramPool) Get(object, method string) (*Program, bool) {
	if e, ok := p.entries[sign(object, method)]; ok {
		return e.program, true
	}
	if object != baseObjectName {
		if e, ok := p.entries[sign(baseObjectName, method)]; ok {
			return e.program, true
		}
	}
	return nil, false
}

// ShallowCheck looks up (object, method) under the exact name only, with no
// base-name fallback.
func (p *ProgramPool) ShallowCheck(object, method string) (*Program, bool) {
	e, ok := p.entries[sign(object, method)]
	if !ok {
		return nil, false
	}
	return e.program, true
}

// Replace destroys any prior program registered under the exact pair and
// installs the new one. Unlike Put, this never panics on an existing
// entry.
func (p *ProgramPool) Replace(object, method string, program *Program) {
	sig := sign(object, method)
	if _, ok := p.entries[sig]; !ok {
		p.byType[object] = append(p.byType[object], method)
	}
	p.entries[sig] = &poolEntry{object: object, method: method, program: program}
}

// Delete removes the exact (object, method) entry, if any.
func (p *ProgramPool) Delete(object, method string) {
	sig := sign(object, method)
	if _, ok := p.entries[sig]; !ok {
		return
	}
	delete(p.entries, sig)
	methods := p.byType[object]
	for i, m := range methods {
		if m == method {
			p.byType[object] = append(methods[:i], methods[i+1:]...)
			break
		}
	}
}

// Purge removes every method registered under object.
func (p *ProgramPool) Purge(object string) {
	for _, method := range append([]string(nil), p.byType[object]...) {
		delete(p.entries, sign(object, method))
	}
	delete(p.byType, object)
}

// IsCompiled reports whether object has at least one method registered
// under its exact name.
func (p *ProgramPool) IsCompiled(object string) bool {
	return len(p.byType[object]) > 0
}

// ForEach iterates the method names registered under object's exact name,
// not including any inherited from the "Object" fallback, in insertion
// order.
func (p *ProgramPool) ForEach(object string, fn func(method string, program *Program)) {
	for _, method := range p.byType[object] {
		if e, ok := p.entries[sign(object, method)]; ok {
			fn(method, e.program)
		}
	}
}

// MethodNames returns a sorted copy of the method names registered under
// object's exact name, for introspection where a deterministic ordering
// matters more than insertion order.
func (p *ProgramPool) MethodNames(object string) []string {
	methods := append([]string(nil), p.byType[object]...)
	sort.Strings(methods)
	return methods
}

// TypeNames returns every object-name that has at least one registered
// method, sorted, for introspection.
func (p *ProgramPool) TypeNames() []string {
	names := make([]string, 0, len(p.byType))
	for name := range p.byType {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
