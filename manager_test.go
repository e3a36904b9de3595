package willow

import "testing"

// newTestManager returns a manager with a root object of type "Root"
// already spawned, plus a renv scoped to it for driving further calls.
func newTestManager(t *testing.T) (*Manager, *RuntimeEnv, Handle) {
	t.Helper()
	m := NewManager()
	pool := NewProgramPool()
	stack := NewStack()
	root := m.get(m.Spawn(&RuntimeEnv{Stack: stack, Pool: pool, Manager: m, Heap: NewHeap()}, "Root", NullHandle, nil, nil, nil))
	renv := NewRuntimeEnv(root, stack, pool, m)
	return m, renv, root.Handle()
}

func TestManagerSpawnBuildsTree(t *testing.T) {
	m, renv, root := newTestManager(t)
	a := m.Spawn(renv, "Child", root, nil, nil, nil)
	b := m.Spawn(renv, "Child", root, nil, nil, nil)

	children := m.get(root).Children()
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("Children() = %v, want [%v %v]", children, a, b)
	}
}

func TestManagerSpawnOnInitFailureDestroys(t *testing.T) {
	m, renv, root := newTestManager(t)
	h := m.Spawn(renv, "Child", root, nil, func(o *Object) bool { return false }, nil)
	if h != NullHandle {
		t.Fatalf("Spawn with a failing onInit should return NullHandle, got %v", h)
	}
	if len(m.get(root).Children()) != 0 {
		t.Fatal("a destroyed child should not remain in its parent's child list")
	}
}

func TestManagerTraverseOrderingAndKillSemantics(t *testing.T) {
	// root
	//  |- A
	//  |   \- C
	//  \- B
	m, renv, root := newTestManager(t)
	a := m.Spawn(renv, "Node", root, nil, nil, nil)
	b := m.Spawn(renv, "Node", root, nil, nil, nil)
	c := m.Spawn(renv, "Node", a, nil, nil, nil)

	var tickT []Handle
	m.get(root).TraverseTree(func(o *Object) {
		tickT = append(tickT, o.Handle())
		if o.Handle() == a {
			m.get(c).Kill()
		}
	})
	want := []Handle{root, a, c, b}
	if len(tickT) != len(want) {
		t.Fatalf("tick T visited %v, want %v", tickT, want)
	}
	for i := range want {
		if tickT[i] != want[i] {
			t.Fatalf("tick T visited %v, want %v", tickT, want)
		}
	}

	m.Sweep(renv)
	if m.Exists(c) {
		t.Fatal("C should be gone after the sweep following its kill")
	}

	var tickT1 []Handle
	m.get(root).TraverseTree(func(o *Object) {
		tickT1 = append(tickT1, o.Handle())
	})
	want2 := []Handle{root, a, b}
	if len(tickT1) != len(want2) {
		t.Fatalf("tick T+1 visited %v, want %v", tickT1, want2)
	}
	for i := range want2 {
		if tickT1[i] != want2[i] {
			t.Fatalf("tick T+1 visited %v, want %v", tickT1, want2)
		}
	}
	if len(m.get(a).Children()) != 0 {
		t.Fatal("A should have no children after C is swept")
	}
}

func TestManagerDestroyCascadesToChildren(t *testing.T) {
	m, renv, root := newTestManager(t)
	a := m.Spawn(renv, "Node", root, nil, nil, nil)
	c := m.Spawn(renv, "Node", a, nil, nil, nil)

	m.Destroy(renv, a)
	if m.Exists(a) || m.Exists(c) {
		t.Fatal("destroying a parent should destroy its children too")
	}
}

func TestManagerStats(t *testing.T) {
	m, renv, root := newTestManager(t)
	m.Spawn(renv, "Node", root, nil, nil, nil)
	stats := m.Stats()
	if stats.LiveObjects != 2 {
		t.Fatalf("LiveObjects = %d, want 2", stats.LiveObjects)
	}
	if stats.HandleHighWater < 2 {
		t.Fatalf("HandleHighWater = %d, want >= 2", stats.HandleHighWater)
	}
}
