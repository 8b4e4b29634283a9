package railz

// Type-changing steps. Terminal outcomes are carried into the new channel
// types. A pair inside a skipped branch cannot pass through a step that
// changes its type, so these steps run regardless of the branch condition
// and keep that condition on their result.

// TransformValue changes the value channel to a new type.
func TransformValue[I, V, S, W any](seg Segment[I, V, S], fn func(V) (W, error)) Segment[I, W, S] {
	return transformStep("TransformValue", seg, func(v V, s S) (W, S, error) {
		w, err := fn(v)
		return w, s, err
	})
}

// TransformSupplement changes the supplement channel to a new type.
func TransformSupplement[I, V, S, T any](seg Segment[I, V, S], fn func(S) (T, error)) Segment[I, V, T] {
	return transformStep("TransformSupplement", seg, func(v V, s S) (V, T, error) {
		t, err := fn(s)
		return v, t, err
	})
}

// TransformPair changes both channels to new types.
func TransformPair[I, V, S, W, T any](seg Segment[I, V, S], fn func(V, S) (W, T, error)) Segment[I, W, T] {
	return transformStep("TransformPair", seg, fn)
}

// Swap exchanges the value and the supplement.
func Swap[I, V, S any](seg Segment[I, V, S]) Segment[I, S, V] {
	return transformStep("Swap", seg, func(v V, s S) (S, V, error) {
		return s, v, nil
	})
}

// TransformWith pivots the pipeline onto a new pair. convert builds the new
// value from the current pair, reinit runs on that value to produce the new
// supplement, and settle, when non-nil, reconciles the old pair with the
// new one before the step completes.
//
//	pay := railz.InitWith[*Price](newCustomer).TapSupplement(fundAccount)
//	receipt := railz.TransformWith(order, toPrice, pay,
//	    func(old railz.Pair[*Car, *Dealer], cur railz.Pair[*Price, *Customer]) error {
//	        cur.Supplement.Balance -= old.Val.Price
//	        return nil
//	    })
func TransformWith[I, V, S, W, T any](
	seg Segment[I, V, S],
	convert func(V, S) (W, error),
	reinit Segment[W, W, T],
	settleFn func(Pair[V, S], Pair[W, T]) error,
) Segment[I, W, T] {
	const op = "TransformWith"
	return func(in I) Outcome[W, T] {
		o := seg(in)
		if o.Terminal() {
			return rewrap[V, S, W, T](o)
		}
		v, s := o.val.OrZero(), o.sup.OrZero()

		var w W
		err := guard(op, StageLogic, func() (err error) {
			w, err = convert(v, s)
			return err
		})
		if err != nil {
			return Faulted[W, T](err, o.branch)
		}

		next := reinit.Run(w)
		if next.Terminal() {
			return next.withBranch(o.branch)
		}

		if settleFn != nil {
			err = guard(op, StageLogic, func() error {
				return settleFn(PairOf(v, s), next.Pair())
			})
			if err != nil {
				return Faulted[W, T](err, o.branch)
			}
		}
		return settle(op, next.val.OrZero(), next.sup.OrZero(), o.branch)
	}
}

func transformStep[I, V, S, W, T any](op string, src Segment[I, V, S], logic func(V, S) (W, T, error)) Segment[I, W, T] {
	return func(in I) Outcome[W, T] {
		o := src(in)
		if o.Terminal() {
			return rewrap[V, S, W, T](o)
		}
		var w W
		var t T
		err := guard(op, StageLogic, func() (err error) {
			w, t, err = logic(o.val.OrZero(), o.sup.OrZero())
			return err
		})
		if err != nil {
			return Faulted[W, T](err, o.branch)
		}
		return settle(op, w, t, o.branch)
	}
}
