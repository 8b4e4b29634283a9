package railz

import (
	"fmt"
	"reflect"
)

// Pair holds the two channels threaded through every pipeline: the primary
// value and its supplement.
type Pair[V, S any] struct {
	Val        V
	Supplement S
}

// PairOf builds a Pair.
func PairOf[V, S any](v V, s S) Pair[V, S] {
	return Pair[V, S]{Val: v, Supplement: s}
}

func (p Pair[V, S]) String() string {
	return fmt.Sprintf("(%v, %v)", p.Val, p.Supplement)
}

// Unit is the supplement used by pipelines that carry nothing besides their value.
type Unit struct{}

// Option marks a channel value as present or missing. Outcomes use it where
// a channel has no meaningful value, such as after a terminal outcome is
// carried into a step with different channel types.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns the missing marker for T.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// OrZero returns the value, or the zero value of T when missing.
func (o Option[T]) OrZero() T {
	return o.value
}

func (o Option[T]) String() string {
	if !o.ok {
		return "none"
	}
	return fmt.Sprintf("%v", o.value)
}

// convertOption carries a value into a differently typed Option when the
// dynamic value already satisfies the new type.
func convertOption[A, B any](o Option[A]) Option[B] {
	v, ok := o.Get()
	if !ok {
		return None[B]()
	}
	if b, ok := any(v).(B); ok {
		return Some(b)
	}
	return None[B]()
}

// isEmpty reports whether v carries no value: a nil interface, or a nil
// pointer, map, slice, channel or func. Zero structs and scalars are values.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// sameInstance reports whether a and b refer to the same underlying object.
// Reference kinds compare by address. Comparable values (strings, numbers,
// arrays, structs) compare by value, so an equal copy counts as the same.
// Zero-size values never match.
func sameInstance(a, b any) (same bool) {
	if isEmpty(a) || isEmpty(b) {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ra.Kind() {
	case reflect.Ptr:
		// Pointers to zero-size values may share an address without being related.
		if ta.Elem().Size() == 0 {
			return false
		}
		return ra.Pointer() == rb.Pointer()
	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		if ra.Cap() == 0 || rb.Cap() == 0 {
			return false
		}
		return ra.Pointer() == rb.Pointer()
	case reflect.Func:
		return false
	default:
		if !ta.Comparable() || ta.Size() == 0 {
			return false
		}
		// Interface fields may still hold uncomparable values.
		defer func() {
			if recover() != nil {
				same = false
			}
		}()
		return a == b
	}
}
