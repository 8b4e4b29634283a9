package railz

// Segment is a built pipeline stage: a function from an input to an Outcome.
// Segments are stateless values; every combinator returns a new Segment that
// wraps the one it was called on.
type Segment[I, V, S any] func(I) Outcome[V, S]

// Run invokes the segment. A panic that escapes every inner fault boundary
// still comes back as a Faulted outcome.
func (seg Segment[I, V, S]) Run(in I) (out Outcome[V, S]) {
	defer func() {
		if r := recover(); r != nil {
			out = Faulted[V, S](&Fault{Op: "Run", Stage: StageLogic, Err: panicError(r), Panicked: true}, Branch{})
		}
	}()
	return seg(in)
}

// step is the machinery shared by the same-type steps. Terminal outcomes and
// skipped branches pass through; otherwise logic runs inside a fault
// boundary and its result is settled.
func step[I, V, S any](op string, src Segment[I, V, S], logic func(V, S) (V, S, error)) Segment[I, V, S] {
	return func(in I) Outcome[V, S] {
		o := src(in)
		if o.Terminal() || o.branch.Skipping() {
			return o
		}
		v, s := o.val.OrZero(), o.sup.OrZero()
		var nv V
		var ns S
		err := guard(op, StageLogic, func() (err error) {
			nv, ns, err = logic(v, s)
			return err
		})
		if err != nil {
			return Faulted[V, S](err, o.branch)
		}
		return settle(op, nv, ns, o.branch)
	}
}

// settle validates and post-processes a freshly produced pair, then wraps it.
func settle[V, S any](op string, v V, s S, b Branch) Outcome[V, S] {
	msg, invalid, err := checkInvariants(op, v, s)
	if err != nil {
		return Faulted[V, S](err, b)
	}
	if invalid {
		return Invalid(Some(v), Some(s), msg, b)
	}
	if err := runHooks(op, b.hooks, v, s); err != nil {
		return Faulted[V, S](err, b)
	}
	return Wrap(v, s, b)
}
