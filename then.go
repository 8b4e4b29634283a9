package railz

// The Then family. Each step runs its function only on a continuing outcome
// outside a skipped branch. Returned errors and panics end the pipeline as
// Faulted; afterwards both channels are checked for Invariant violations and
// handed to the pipeline's hooks.

// MapValue replaces the value with the result of fn.
func (seg Segment[I, V, S]) MapValue(fn func(V) (V, error)) Segment[I, V, S] {
	return step("MapValue", seg, func(v V, s S) (V, S, error) {
		nv, err := fn(v)
		return nv, s, err
	})
}

// MapSupplement replaces the supplement with the result of fn.
func (seg Segment[I, V, S]) MapSupplement(fn func(S) (S, error)) Segment[I, V, S] {
	return step("MapSupplement", seg, func(v V, s S) (V, S, error) {
		ns, err := fn(s)
		return v, ns, err
	})
}

// MapPair replaces both channels with the results of fn.
func (seg Segment[I, V, S]) MapPair(fn func(V, S) (V, S, error)) Segment[I, V, S] {
	return step("MapPair", seg, fn)
}

// MapValueFrom replaces the value using both channels.
func (seg Segment[I, V, S]) MapValueFrom(fn func(V, S) (V, error)) Segment[I, V, S] {
	return step("MapValueFrom", seg, func(v V, s S) (V, S, error) {
		nv, err := fn(v, s)
		return nv, s, err
	})
}

// MapSupplementFrom replaces the supplement using both channels.
func (seg Segment[I, V, S]) MapSupplementFrom(fn func(V, S) (S, error)) Segment[I, V, S] {
	return step("MapSupplementFrom", seg, func(v V, s S) (V, S, error) {
		ns, err := fn(v, s)
		return v, ns, err
	})
}

// TapValue calls fn for its side effects on the value.
func (seg Segment[I, V, S]) TapValue(fn func(V) error) Segment[I, V, S] {
	return step("TapValue", seg, func(v V, s S) (V, S, error) {
		return v, s, fn(v)
	})
}

// TapSupplement calls fn for its side effects on the supplement.
func (seg Segment[I, V, S]) TapSupplement(fn func(S) error) Segment[I, V, S] {
	return step("TapSupplement", seg, func(v V, s S) (V, S, error) {
		return v, s, fn(s)
	})
}

// TapPair calls fn for its side effects on both channels.
func (seg Segment[I, V, S]) TapPair(fn func(V, S) error) Segment[I, V, S] {
	return step("TapPair", seg, func(v V, s S) (V, S, error) {
		return v, s, fn(v, s)
	})
}
