package willow

import "gopkg.in/yaml.v2"

// ObjectSnapshot is a point-in-time, read-only view of one object in the
// tree, for the introspection dump below.
type ObjectSnapshot struct {
	Handle   Handle   `yaml:"handle"`
	Type     string   `yaml:"type"`
	State    string   `yaml:"state"`
	Parent   Handle   `yaml:"parent,omitempty"`
	Children []Handle `yaml:"children,omitempty"`
	Killed   bool     `yaml:"killed,omitempty"`
	HeapSize int      `yaml:"heapSize"`
}

// PoolSnapshot is a point-in-time view of one object-type's bound methods.
type PoolSnapshot struct {
	Type    string   `yaml:"type"`
	Methods []string `yaml:"methods"`
}

// Snapshot is the full structure VM.Dump marshals. A host can diff two
// dumps across ticks for debugging.
type Snapshot struct {
	Session string           `yaml:"session"`
	Stats   Stats            `yaml:"stats"`
	Objects []ObjectSnapshot `yaml:"objects"`
	Pool    []PoolSnapshot   `yaml:"pool"`
}

// Dump renders the VM's current object tree and program pool as YAML, for
// diagnostics and tests that want a readable snapshot rather than walking
// the live structures by hand.
func (vm *VM) Dump() ([]byte, error) {
	snap := Snapshot{
		Session: vm.SessionID.String(),
		Stats:   vm.Objects.Stats(),
	}
	vm.Objects.Traverse(func(o *Object) {
		snap.Objects = append(snap.Objects, ObjectSnapshot{
			Handle:   o.Handle(),
			Type:     o.Name(),
			State:    o.State(),
			Parent:   o.Parent(),
			Children: o.Children(),
			Killed:   o.IsKilled(),
			HeapSize: o.Heap().Size(),
		})
	})
	for _, t := range vm.Pool.TypeNames() {
		snap.Pool = append(snap.Pool, PoolSnapshot{Type: t, Methods: vm.Pool.MethodNames(t)})
	}
	return yaml.Marshal(snap)
}
