package dict

import (
	"testing"

	"willow"
)

func newDictObject(t *testing.T) (*willow.Object, *willow.RuntimeEnv) {
	t.Helper()
	pool := willow.NewProgramPool()
	Register(pool)
	m := willow.NewManager()
	stack := willow.NewStack()
	renv := &willow.RuntimeEnv{Stack: stack, Pool: pool, Manager: m, Heap: willow.NewHeap()}
	h := m.Spawn(renv, TypeName, willow.NullHandle, NewUserData(), nil, nil)
	o := m.Get(h)
	return o, willow.NewRuntimeEnv(o, stack, pool, m)
}

func call(o *willow.Object, renv *willow.RuntimeEnv, method string, args ...willow.Value) willow.Value {
	return o.CallMethod(renv, method, args)
}

func TestDictSetGet(t *testing.T) {
	o, renv := newDictObject(t)
	call(o, renv, "set", willow.NewString("name"), willow.NewString("willow"))
	got := call(o, renv, "get", willow.NewString("name"))
	if got.GetString() != "willow" {
		t.Fatalf("get(name) = %q, want willow", got.GetString())
	}
}

func TestDictGetMissingIsNull(t *testing.T) {
	o, renv := newDictObject(t)
	got := call(o, renv, "get", willow.NewString("absent"))
	if got.Kind() != willow.KindNull {
		t.Fatalf("get(absent) = %v, want Null", got)
	}
}

func TestDictHasAndDelete(t *testing.T) {
	o, renv := newDictObject(t)
	call(o, renv, "set", willow.NewString("k"), willow.NewNumber(1))
	if !call(o, renv, "has", willow.NewString("k")).GetBoolean() {
		t.Fatal("has(k) should be true after set")
	}
	call(o, renv, "delete", willow.NewString("k"))
	if call(o, renv, "has", willow.NewString("k")).GetBoolean() {
		t.Fatal("has(k) should be false after delete")
	}
}

func TestDictCountAndInsertionOrder(t *testing.T) {
	o, renv := newDictObject(t)
	call(o, renv, "set", willow.NewString("b"), willow.NewNumber(2))
	call(o, renv, "set", willow.NewString("a"), willow.NewNumber(1))
	call(o, renv, "set", willow.NewString("c"), willow.NewNumber(3))

	if n := call(o, renv, "count").GetNumber(); n != 3 {
		t.Fatalf("count() = %v, want 3", n)
	}

	var order []string
	ForEach(o, func(key string, value *willow.Value) {
		order = append(order, key)
	})
	want := []string{"b", "a", "c"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("ForEach order = %v, want %v", order, want)
		}
	}
}

func TestDictSetOverwritesInPlace(t *testing.T) {
	o, renv := newDictObject(t)
	call(o, renv, "set", willow.NewString("k"), willow.NewNumber(1))
	call(o, renv, "set", willow.NewString("k"), willow.NewNumber(2))
	if n := call(o, renv, "count").GetNumber(); n != 1 {
		t.Fatalf("count() = %v after overwriting an existing key, want 1", n)
	}
	if got := call(o, renv, "get", willow.NewString("k")).GetNumber(); got != 2 {
		t.Fatalf("get(k) = %v, want 2", got)
	}
}
