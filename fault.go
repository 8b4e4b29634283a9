package railz

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors reported inside Faulted outcomes.
var (
	ErrNilInput          = errors.New("pipeline input must not be empty")
	ErrInitReusedInput   = errors.New("init function must create a new instance")
	ErrBothChannelsEmpty = errors.New("empty value and supplement are not allowed")
	ErrEmptySupplement   = errors.New("empty supplement is not allowed")
	ErrNoBranchMatched   = errors.New("EndIffStrong requires at least one matching branch")
	ErrWrongVariant      = errors.New("outcome variant does not carry this field")
)

// Stage names the part of a combinator that faulted.
type Stage string

// Stages at which a Fault can be raised.
const (
	StageInput      Stage = "input"
	StageFactory    Stage = "factory"
	StageLogic      Stage = "logic"
	StagePredicate  Stage = "predicate"
	StageBranch     Stage = "branch"
	StageValidation Stage = "validation"
	StageHook       Stage = "hook"
	StageWrap       Stage = "wrap"
)

// Fault is the error carried by a Faulted outcome. It records which
// combinator failed, at which stage, and whether the failure was a
// recovered panic rather than a returned error.
type Fault struct {
	Err      error
	Op       string
	Stage    Stage
	Panicked bool
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Panicked {
		return fmt.Sprintf("%s (%s) panicked: %v", f.Op, f.Stage, f.Err)
	}
	return fmt.Sprintf("%s (%s) failed: %v", f.Op, f.Stage, f.Err)
}

// Unwrap returns the underlying error.
func (f *Fault) Unwrap() error {
	return f.Err
}

// Cause returns the underlying error for github.com/pkg/errors.Cause.
func (f *Fault) Cause() error {
	return f.Err
}

func newFault(op string, stage Stage, err error) *Fault {
	return &Fault{Op: op, Stage: stage, Err: err}
}

// panicError turns a recovered value into an error with a stack trace.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.WithStack(err)
	}
	return errors.Errorf("%v", r)
}

// guard runs fn inside a fault boundary. Returned errors and panics both
// come back as a *Fault; an error that already is a *Fault is kept as is.
func guard(op string, stage Stage, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Fault{Op: op, Stage: stage, Err: panicError(r), Panicked: true}
		}
	}()
	if e := fn(); e != nil {
		var f *Fault
		if errors.As(e, &f) {
			return e
		}
		return newFault(op, stage, e)
	}
	return nil
}

// VariantError is raised as a panic when an Outcome accessor is used on a
// variant that does not carry the requested field.
type VariantError struct {
	Field string
	Kind  Kind
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("%s is not available on a %s outcome", e.Field, e.Kind)
}

// Unwrap returns ErrWrongVariant.
func (*VariantError) Unwrap() error {
	return ErrWrongVariant
}
