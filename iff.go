package railz

// Iff opens or continues a conditional region. The predicate is evaluated
// on every continuing outcome, even after an earlier Iff matched, so a
// later Iff can switch the region back on or off. While the condition is
// not met, Then-family steps pass the pair through unchanged.
//
//	railz.Init[*Car]().
//	    Iff(isHonda).TapValue(driveFast).
//	    Iff(isToyota).TapValue(driveSlow).
//	    EndIff().
//	    TapValue(park)
func (seg Segment[I, V, S]) Iff(pred func(V, S) bool) Segment[I, V, S] {
	return branchOn("Iff", seg, pred)
}

// IffValue is Iff with a predicate on the value alone.
func (seg Segment[I, V, S]) IffValue(pred func(V) bool) Segment[I, V, S] {
	return branchOn("IffValue", seg, func(v V, _ S) bool { return pred(v) })
}

// IffSupplement is Iff with a predicate on the supplement alone.
func (seg Segment[I, V, S]) IffSupplement(pred func(S) bool) Segment[I, V, S] {
	return branchOn("IffSupplement", seg, func(_ V, s S) bool { return pred(s) })
}

// Else is a catch-all Iff whose predicate is always true.
func (seg Segment[I, V, S]) Else() Segment[I, V, S] {
	return branchOn("Else", seg, func(V, S) bool { return true })
}

// EndIff closes the region. Steps after it always run.
func (seg Segment[I, V, S]) EndIff() Segment[I, V, S] {
	return func(in I) Outcome[V, S] {
		o := seg(in)
		if o.Terminal() {
			return o
		}
		return o.withBranch(o.branch.WithCondition(ConditionUnset))
	}
}

// EndIffStrong closes the region like EndIff, but faults with
// ErrNoBranchMatched when the region ends with its condition not met.
func (seg Segment[I, V, S]) EndIffStrong() Segment[I, V, S] {
	return func(in I) Outcome[V, S] {
		o := seg(in)
		if o.Terminal() {
			return o
		}
		b := o.branch.WithCondition(ConditionUnset)
		if o.branch.Skipping() {
			return Faulted[V, S](newFault("EndIffStrong", StageBranch, ErrNoBranchMatched), b)
		}
		return o.withBranch(b)
	}
}

func branchOn[I, V, S any](op string, src Segment[I, V, S], pred func(V, S) bool) Segment[I, V, S] {
	return func(in I) Outcome[V, S] {
		o := src(in)
		if o.Terminal() {
			return o
		}
		var met bool
		err := guard(op, StagePredicate, func() error {
			met = pred(o.val.OrZero(), o.sup.OrZero())
			return nil
		})
		if err != nil {
			return Faulted[V, S](err, o.branch)
		}
		cond := ConditionNotMet
		if met {
			cond = ConditionMet
		}
		return o.withBranch(o.branch.WithCondition(cond))
	}
}
