package array

import (
	"testing"

	"willow"
)

func newArrayObject(t *testing.T) (*willow.Object, *willow.RuntimeEnv) {
	t.Helper()
	pool := willow.NewProgramPool()
	Register(pool)
	m := willow.NewManager()
	stack := willow.NewStack()
	renv := &willow.RuntimeEnv{Stack: stack, Pool: pool, Manager: m, Heap: willow.NewHeap()}
	h := m.Spawn(renv, TypeName, willow.NullHandle, nil, nil, nil)
	o := m.Get(h)
	return o, willow.NewRuntimeEnv(o, stack, pool, m)
}

func call(o *willow.Object, renv *willow.RuntimeEnv, method string, args ...willow.Value) willow.Value {
	return o.CallMethod(renv, method, args)
}

func TestArrayPushPopLength(t *testing.T) {
	o, renv := newArrayObject(t)
	call(o, renv, "push", willow.NewNumber(1))
	call(o, renv, "push", willow.NewNumber(2))
	call(o, renv, "push", willow.NewNumber(3))

	if n := call(o, renv, "length").GetNumber(); n != 3 {
		t.Fatalf("length() = %v, want 3", n)
	}
	if v := call(o, renv, "pop").GetNumber(); v != 3 {
		t.Fatalf("pop() = %v, want 3", v)
	}
	if n := call(o, renv, "length").GetNumber(); n != 2 {
		t.Fatalf("length() = %v after pop, want 2", n)
	}
}

func TestArrayPopOnEmptyIsNull(t *testing.T) {
	o, renv := newArrayObject(t)
	v := call(o, renv, "pop")
	if v.Kind() != willow.KindNull {
		t.Fatalf("pop() on empty array = %v, want Null", v)
	}
}

func TestArrayGetSet(t *testing.T) {
	o, renv := newArrayObject(t)
	call(o, renv, "push", willow.NewNumber(10))
	call(o, renv, "set", willow.NewNumber(0), willow.NewNumber(99))
	if got := call(o, renv, "get", willow.NewNumber(0)).GetNumber(); got != 99 {
		t.Fatalf("get(0) = %v, want 99", got)
	}
}

func TestArraySetGrowsWithNulls(t *testing.T) {
	o, renv := newArrayObject(t)
	call(o, renv, "set", willow.NewNumber(3), willow.NewNumber(7))
	if n := call(o, renv, "length").GetNumber(); n != 4 {
		t.Fatalf("length() = %v, want 4", n)
	}
	for i := 0; i < 3; i++ {
		if got := call(o, renv, "get", willow.NewNumber(float64(i))); got.Kind() != willow.KindNull {
			t.Fatalf("get(%d) = %v, want Null", i, got)
		}
	}
	if got := call(o, renv, "get", willow.NewNumber(3)).GetNumber(); got != 7 {
		t.Fatalf("get(3) = %v, want 7", got)
	}
}

func TestArrayGetOutOfRangePanics(t *testing.T) {
	o, renv := newArrayObject(t)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("get() past the array length should panic")
		}
	}()
	call(o, renv, "get", willow.NewNumber(0))
}

func TestArrayShiftUnshift(t *testing.T) {
	o, renv := newArrayObject(t)
	call(o, renv, "push", willow.NewNumber(1))
	call(o, renv, "push", willow.NewNumber(2))
	call(o, renv, "unshift", willow.NewNumber(0))

	if got := call(o, renv, "get", willow.NewNumber(0)).GetNumber(); got != 0 {
		t.Fatalf("get(0) after unshift = %v, want 0", got)
	}
	if got := call(o, renv, "shift").GetNumber(); got != 0 {
		t.Fatalf("shift() = %v, want 0", got)
	}
	if got := call(o, renv, "get", willow.NewNumber(0)).GetNumber(); got != 1 {
		t.Fatalf("get(0) after shift = %v, want 1", got)
	}
}

func TestArrayReverse(t *testing.T) {
	o, renv := newArrayObject(t)
	for i := 1; i <= 3; i++ {
		call(o, renv, "push", willow.NewNumber(float64(i)))
	}
	call(o, renv, "reverse")
	want := []float64{3, 2, 1}
	for i, w := range want {
		if got := call(o, renv, "get", willow.NewNumber(float64(i))).GetNumber(); got != w {
			t.Fatalf("get(%d) after reverse = %v, want %v", i, got, w)
		}
	}
}

func TestArrayIndexOf(t *testing.T) {
	o, renv := newArrayObject(t)
	for _, n := range []float64{5, 6, 7} {
		call(o, renv, "push", willow.NewNumber(n))
	}
	if got := call(o, renv, "indexOf", willow.NewNumber(6)).GetNumber(); got != 1 {
		t.Fatalf("indexOf(6) = %v, want 1", got)
	}
	if got := call(o, renv, "indexOf", willow.NewNumber(42)).GetNumber(); got != -1 {
		t.Fatalf("indexOf(42) = %v, want -1", got)
	}
}

func TestArraySort(t *testing.T) {
	o, renv := newArrayObject(t)
	input := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	for _, n := range input {
		call(o, renv, "push", willow.NewNumber(n))
	}
	call(o, renv, "sort")

	want := []float64{1, 1, 2, 3, 3, 4, 5, 5, 6, 9}
	for i, w := range want {
		if got := call(o, renv, "get", willow.NewNumber(float64(i))).GetNumber(); got != w {
			t.Fatalf("get(%d) after sort = %v, want %v (full want %v)", i, got, w, want)
		}
	}
}
