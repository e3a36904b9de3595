package willow

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/variadico/lctime"
)

// FaultKind names a fatal program-integrity error. Every FaultKind aborts
// the current tick and the VM; there is no recoverable Fault. Recoverable
// conditions never produce a Go error at all: they are encoded directly
// into the returned Value, usually as Null.
type FaultKind string

const (
	FaultBadPointer         FaultKind = "bad-pointer"
	FaultStackUnderflow     FaultKind = "stack-underflow"
	FaultDuplicateProgram   FaultKind = "duplicate-definition"
	FaultIndexOutOfRange    FaultKind = "index-out-of-range"
	FaultIndexTooFar        FaultKind = "index-too-far"
	FaultUnknownOpcode      FaultKind = "unknown-opcode"
	FaultAllocationFailure  FaultKind = "allocation-failure"
	FaultSignatureCollision FaultKind = "signature-collision"
)

// Fault is a fatal program-integrity error that aborts the current tick
// and the VM rather than being encoded as a sentinel Value. A Fault names
// the object type, the method, a one-line human message, and the
// wall-clock time it was raised, rendered with a locale-aware strftime.
type Fault struct {
	Kind    FaultKind
	Object  string
	Method  string
	Message string
	When    string
	cause   error
}

func newFault(kind FaultKind, object, method, message string) *Fault {
	return &Fault{
		Kind:    kind,
		Object:  object,
		Method:  method,
		Message: message,
		When:    lctime.Strftime("%Y-%m-%d %H:%M:%S", time.Now()),
		cause:   errors.WithStack(fmt.Errorf("%s", message)),
	}
}

// Error renders the one-line diagnostic: object type name, method name,
// and a human message. No backtrace of bytecode positions is included,
// since opcode decoding lives in the compiler collaborator; the wrapped
// github.com/pkg/errors stack trace is still available through Unwrap for
// a host that wants it.
func (f *Fault) Error() string {
	return fmt.Sprintf("[%s] %s.%s: %s (%s)", f.Kind, f.Object, f.Method, f.Message, f.When)
}

// Unwrap exposes the captured stack trace to errors.As/errors.Is callers.
func (f *Fault) Unwrap() error { return f.cause }

// IsFatal reports whether err is (or wraps) a *Fault. Every Fault is fatal
// by construction; this helper exists so callers can branch on "did the VM
// just abort" without a type assertion.
func IsFatal(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}

// NewIndexFault builds a FaultIndexOutOfRange for a builtin object
// reaching past its own bounds.
func NewIndexFault(object, method string, index, length int) *Fault {
	return newFault(FaultIndexOutOfRange, object, method,
		fmt.Sprintf("index %d out of range for length %d", index, length))
}

// NewIndexTooFarFault builds a FaultIndexTooFar for a set call that would
// grow an Array past the single-call growth bound.
func NewIndexTooFarFault(object, method string, index, length int) *Fault {
	return newFault(FaultIndexTooFar, object, method,
		fmt.Sprintf("index %d is too far past length %d to grow in one call", index, length))
}
