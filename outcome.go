package railz

import (
	"fmt"
)

// Kind identifies which variant an Outcome holds.
type Kind uint8

// Outcome variants. The zero Kind belongs to an unset Outcome.
const (
	KindUnknown Kind = iota
	KindSuccess
	KindAbsent
	KindFaulted
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAbsent:
		return "absent"
	case KindFaulted:
		return "faulted"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Outcome is the result of running a Segment. Exactly one variant is active:
//
//   - Success carries the value/supplement pair.
//   - Absent reports a legitimately missing value.
//   - Faulted carries the error that stopped the pipeline.
//   - Invalid carries the offending pair and the violation message.
//
// Every variant also carries the Branch it was produced under. Absent,
// Faulted and Invalid are terminal: later steps pass them through untouched.
type Outcome[V, S any] struct {
	val    Option[V]
	sup    Option[S]
	err    error
	msg    string
	branch Branch
	kind   Kind
}

// Success builds a Success outcome without any emptiness checks. Use Wrap
// for values produced by caller logic.
func Success[V, S any](v V, s S, b Branch) Outcome[V, S] {
	return Outcome[V, S]{kind: KindSuccess, val: Some(v), sup: Some(s), branch: b}
}

// Absent builds an Absent outcome.
func Absent[V, S any](b Branch) Outcome[V, S] {
	return Outcome[V, S]{kind: KindAbsent, branch: b}
}

// Faulted builds a Faulted outcome.
func Faulted[V, S any](err error, b Branch) Outcome[V, S] {
	return Outcome[V, S]{kind: KindFaulted, err: err, branch: b}
}

// Invalid builds an Invalid outcome holding whatever part of the pair is known.
func Invalid[V, S any](v Option[V], s Option[S], msg string, b Branch) Outcome[V, S] {
	return Outcome[V, S]{kind: KindInvalid, val: v, sup: s, msg: msg, branch: b}
}

// Wrap turns a produced pair into an Outcome:
//
//   - both channels empty: Faulted with ErrBothChannelsEmpty
//   - supplement empty: Faulted with ErrEmptySupplement
//   - value empty: Absent
//   - otherwise: Success
func Wrap[V, S any](v V, s S, b Branch) Outcome[V, S] {
	valEmpty, supEmpty := isEmpty(v), isEmpty(s)
	switch {
	case valEmpty && supEmpty:
		return Faulted[V, S](newFault("Wrap", StageWrap, ErrBothChannelsEmpty), b)
	case supEmpty:
		return Faulted[V, S](newFault("Wrap", StageWrap, ErrEmptySupplement), b)
	case valEmpty:
		return Absent[V, S](b)
	default:
		return Success(v, s, b)
	}
}

// Kind returns the active variant.
func (o Outcome[V, S]) Kind() Kind { return o.kind }

// IsSuccess reports whether o is a Success.
func (o Outcome[V, S]) IsSuccess() bool { return o.kind == KindSuccess }

// IsAbsent reports whether o is Absent.
func (o Outcome[V, S]) IsAbsent() bool { return o.kind == KindAbsent }

// IsFaulted reports whether o is Faulted.
func (o Outcome[V, S]) IsFaulted() bool { return o.kind == KindFaulted }

// IsInvalid reports whether o is Invalid.
func (o Outcome[V, S]) IsInvalid() bool { return o.kind == KindInvalid }

// Terminal reports whether later steps must pass o through without running.
func (o Outcome[V, S]) Terminal() bool { return o.kind != KindSuccess }

// Branch returns the branch context the outcome was produced under.
func (o Outcome[V, S]) Branch() Branch { return o.branch }

// Val returns the primary value. It panics with a *VariantError unless o is
// a Success, or an Invalid that still holds its value.
func (o Outcome[V, S]) Val() V {
	if v, ok := o.val.Get(); ok && (o.kind == KindSuccess || o.kind == KindInvalid) {
		return v
	}
	panic(&VariantError{Field: "Val", Kind: o.kind})
}

// Supplement returns the supplement. It panics with a *VariantError unless
// o is a Success, or an Invalid that still holds its supplement.
func (o Outcome[V, S]) Supplement() S {
	if s, ok := o.sup.Get(); ok && (o.kind == KindSuccess || o.kind == KindInvalid) {
		return s
	}
	panic(&VariantError{Field: "Supplement", Kind: o.kind})
}

// Pair returns both channels of a Success. It panics on any other variant.
func (o Outcome[V, S]) Pair() Pair[V, S] {
	if o.kind != KindSuccess {
		panic(&VariantError{Field: "Pair", Kind: o.kind})
	}
	return Pair[V, S]{Val: o.val.OrZero(), Supplement: o.sup.OrZero()}
}

// Err returns the fault of a Faulted outcome. It panics on any other variant.
func (o Outcome[V, S]) Err() error {
	if o.kind != KindFaulted {
		panic(&VariantError{Field: "Err", Kind: o.kind})
	}
	return o.err
}

// ValidationMessage returns the violation of an Invalid outcome. It panics
// on any other variant.
func (o Outcome[V, S]) ValidationMessage() string {
	if o.kind != KindInvalid {
		panic(&VariantError{Field: "ValidationMessage", Kind: o.kind})
	}
	return o.msg
}

// LookupVal returns the value held by o, if any, regardless of variant.
func (o Outcome[V, S]) LookupVal() (V, bool) { return o.val.Get() }

// LookupSupplement returns the supplement held by o, if any, regardless of variant.
func (o Outcome[V, S]) LookupSupplement() (S, bool) { return o.sup.Get() }

func (o Outcome[V, S]) String() string {
	switch o.kind {
	case KindSuccess:
		return fmt.Sprintf("success(%v, %v)", o.val, o.sup)
	case KindFaulted:
		return fmt.Sprintf("faulted(%v)", o.err)
	case KindInvalid:
		return fmt.Sprintf("invalid(%q)", o.msg)
	default:
		return o.kind.String()
	}
}

// withBranch returns a copy of o under b.
func (o Outcome[V, S]) withBranch(b Branch) Outcome[V, S] {
	o.branch = b
	return o
}

// rewrap carries a terminal outcome into new channel types. Channels whose
// dynamic value fits the new type are kept; the rest become None.
func rewrap[V, S, W, T any](o Outcome[V, S]) Outcome[W, T] {
	return Outcome[W, T]{
		kind:   o.kind,
		val:    convertOption[V, W](o.val),
		sup:    convertOption[S, T](o.sup),
		err:    o.err,
		msg:    o.msg,
		branch: o.branch,
	}
}

// Cases lists one handler per Outcome variant for Match.
type Cases[V, S, R any] struct {
	Success func(Pair[V, S]) R
	Absent  func() R
	Faulted func(error) R
	Invalid func(msg string, val Option[V], sup Option[S]) R
}

// Match calls the handler for the active variant of o and returns its result.
// Every handler must be set; a missing one panics with a *VariantError.
func Match[V, S, R any](o Outcome[V, S], c Cases[V, S, R]) R {
	if c.Success == nil || c.Absent == nil || c.Faulted == nil || c.Invalid == nil {
		panic(&VariantError{Field: "Match cases", Kind: o.kind})
	}
	switch o.kind {
	case KindSuccess:
		return c.Success(o.Pair())
	case KindAbsent:
		return c.Absent()
	case KindFaulted:
		return c.Faulted(o.err)
	case KindInvalid:
		return c.Invalid(o.msg, o.val, o.sup)
	default:
		panic(&VariantError{Field: "Match", Kind: o.kind})
	}
}
