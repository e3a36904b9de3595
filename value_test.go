package willow

import "testing"

func TestValueCoercion(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		num  float64
		str  string
		bol  bool
	}{
		{"null", NewNull(), 0, "null", false},
		{"number", NewNumber(42), 42, "42", true},
		{"zero", NewNumber(0), 0, "0", false},
		{"boolTrue", NewBoolean(true), 1, "true", true},
		{"boolFalse", NewBoolean(false), 0, "false", false},
		{"string", NewString("7"), 7, "7", true},
		{"emptyString", NewString(""), nan, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.GetNumber(); got != c.num && !(got != got && c.num != c.num) {
				t.Errorf("GetNumber() = %v, want %v", got, c.num)
			}
			if got := c.v.GetString(); got != c.str {
				t.Errorf("GetString() = %q, want %q", got, c.str)
			}
			if got := c.v.GetBoolean(); got != c.bol {
				t.Errorf("GetBoolean() = %v, want %v", got, c.bol)
			}
		})
	}
}

func TestValueUnparsableStringIsNaN(t *testing.T) {
	v := NewString("not a number")
	n := v.GetNumber()
	if n == n {
		t.Fatalf("GetNumber() = %v, want NaN", n)
	}
}

func TestValueCompareSameKind(t *testing.T) {
	if Compare(NewNumber(1), NewNumber(2)) >= 0 {
		t.Error("1 should compare less than 2")
	}
	if Compare(NewString("a"), NewString("b")) >= 0 {
		t.Error(`"a" should compare less than "b"`)
	}
	if Compare(NewNull(), NewNull()) != 0 {
		t.Error("null should compare equal to null")
	}
}

func TestValueCompareCrossKind(t *testing.T) {
	if Compare(NewString("10"), NewNumber(10)) != 0 {
		t.Error(`"10" should compare equal to 10`)
	}
	if Compare(NewString("abc"), NewNumber(1)) == 0 {
		t.Error(`"abc" should not compare equal to 1 (falls back to string compare)`)
	}
}

func TestValueCopyIsIndependent(t *testing.T) {
	src := NewString("hello")
	var dst Value
	Copy(&dst, src)
	dst.SetString("changed")
	if src.GetString() != "hello" {
		t.Errorf("Copy aliased src: src is now %q", src.GetString())
	}
}

func TestValueSwap(t *testing.T) {
	a := NewNumber(1)
	b := NewNumber(2)
	Swap(&a, &b)
	if a.GetNumber() != 2 || b.GetNumber() != 1 {
		t.Errorf("Swap did not exchange payloads: a=%v b=%v", a.GetNumber(), b.GetNumber())
	}
}

func TestValueHandleRoundTrip(t *testing.T) {
	v := NewHandle(Handle(5))
	if v.GetHandle() != Handle(5) {
		t.Errorf("GetHandle() = %v, want 5", v.GetHandle())
	}
	if NewNull().GetHandle() != NullHandle {
		t.Error("GetHandle() on a non-handle cell should yield NullHandle")
	}
}
