package willow

import (
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Kind tags the payload a Value currently holds.
type Kind uint8

const (
	// KindNull is the default, empty variant.
	KindNull Kind = iota
	KindNumber
	KindBoolean
	KindString
	KindHandle
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Value is the tagged cell shared by every subsystem in the runtime: the
// heap, the stack, program constants, and native call arguments are all
// slices of Value. Exactly one of the payload fields is meaningful at a
// time, selected by Kind.
type Value struct {
	kind Kind
	num  float64
	str  string
	h    Handle
}

// NewNull returns a null-kind Value. The zero Value is already null, so this
// exists mainly for readability at call sites.
func NewNull() Value { return Value{} }

// NewNumber wraps a float64.
func NewNumber(n float64) Value { return Value{kind: KindNumber, num: n} }

// NewBoolean wraps a bool.
func NewBoolean(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.num = 1
	}
	return v
}

// NewString wraps a string. Go strings are immutable value types, so every
// cell owns its bytes without an explicit deep copy. The input is normalized
// to NFC so that canonically equivalent script strings compare equal.
func NewString(s string) Value {
	return Value{kind: KindString, str: norm.NFC.String(s)}
}

// NewHandle wraps an object handle. Handles are non-owning references, so
// copying a handle-kind cell is a plain integer copy.
func NewHandle(h Handle) Value { return Value{kind: KindHandle, h: h} }

// Kind reports the cell's current variant.
func (v Value) Kind() Kind { return v.kind }

// SetNull overwrites the cell in place.
func (v *Value) SetNull() { *v = Value{} }

// SetNumber overwrites the cell in place.
func (v *Value) SetNumber(n float64) { *v = NewNumber(n) }

// SetBoolean overwrites the cell in place.
func (v *Value) SetBoolean(b bool) { *v = NewBoolean(b) }

// SetString overwrites the cell in place.
func (v *Value) SetString(s string) { *v = NewString(s) }

// SetHandle overwrites the cell in place.
func (v *Value) SetHandle(h Handle) { *v = NewHandle(h) }

// GetNumber coerces the cell to a number. A string payload is parsed; an
// unparseable string yields NaN rather than an error, per the recoverable
// tier of the error taxonomy (type-coercion-failure never aborts).
func (v Value) GetNumber() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBoolean:
		return v.num
	case KindString:
		n, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return nan
		}
		return n
	default:
		return 0
	}
}

var nan = func() float64 {
	var zero float64
	return zero / zero
}()

// GetString coerces the cell to a string. Numbers are formatted with the
// minimum digits that round-trip exactly ('g' with -1 precision).
func (v Value) GetString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBoolean:
		if v.num != 0 {
			return "true"
		}
		return "false"
	case KindHandle:
		return fmt.Sprintf("Object<%d>", v.h)
	default:
		return "null"
	}
}

// GetBoolean coerces the cell to a bool. Every kind but false/0/null/""
// coerces true.
func (v Value) GetBoolean() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindNumber, KindBoolean:
		return v.num != 0
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// GetHandle returns the wrapped handle, or NullHandle if the cell is not a
// handle-kind cell.
func (v Value) GetHandle() Handle {
	if v.kind == KindHandle {
		return v.h
	}
	return NullHandle
}

// Clone deep-copies the cell. For the present representation (Go value
// types throughout) this is identical to an ordinary assignment, but it is
// kept as an explicit operation because it is part of the cell's contract
// and callers should not rely on Value being trivially copyable forever.
func (v Value) Clone() Value { return v }

// Copy releases dst's prior payload (a no-op under Go's GC) and deep-copies
// src into dst.
func Copy(dst *Value, src Value) { *dst = src.Clone() }

// Swap exchanges the payloads of a and b without any allocation.
func Swap(a, b *Value) { *a, *b = *b, *a }

// Compare orders two cells. Same-kind comparisons use natural ordering
// (numeric, lexicographic, false<true, handle-integer); cross-kind
// comparisons coerce toward number first, then fall back to string. It
// returns -1, 0, or 1 and never fails: a string that does not parse as a
// number forces the string fallback rather than comparing as NaN.
func Compare(a, b Value) int {
	if a.kind == b.kind {
		switch a.kind {
		case KindNull:
			return 0
		case KindNumber:
			return compareFloat(a.num, b.num)
		case KindBoolean:
			return compareFloat(a.num, b.num)
		case KindString:
			return compareString(a.str, b.str)
		case KindHandle:
			return compareUint(uint32(a.h), uint32(b.h))
		}
	}
	// Cross-kind: prefer numeric comparison unless either side is a string
	// that does not parse, in which case fall back to string comparison.
	an, aok := numericOK(a)
	bn, bok := numericOK(b)
	if aok && bok {
		return compareFloat(an, bn)
	}
	return compareString(a.GetString(), b.GetString())
}

func numericOK(v Value) (float64, bool) {
	switch v.kind {
	case KindNumber, KindBoolean:
		return v.num, true
	case KindString:
		n, err := strconv.ParseFloat(v.str, 64)
		return n, err == nil
	case KindNull:
		return 0, true
	default:
		return 0, false
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
