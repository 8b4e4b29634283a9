package railz

// Join runs next on the value produced by seg. A terminal outcome from seg
// stops the pipeline before next runs. The joined pipeline keeps seg's
// supplement and takes next's value; next's own supplement only exists for
// next to run and is dropped. Hooks from both segments are kept, seg's
// first, and an If region left open by next stays open.
//
//	dealer := railz.InitWith[*Car](newDealer).TapValue(setMark)
//	drive := railz.InitWith[*Car](newDealer).TapValue(driveFast)
//	both := dealer.Join(drive)
func (seg Segment[I, V, S]) Join(next Segment[V, V, S]) Segment[I, V, S] {
	const op = "Join"
	return func(in I) Outcome[V, S] {
		o := seg(in)
		if o.Terminal() || o.branch.Skipping() {
			return o
		}
		res := next.Run(o.val.OrZero())
		b := o.branch.WithHooks(res.branch.hooks...).WithCondition(res.branch.condition)
		switch {
		case res.IsInvalid():
			return Invalid(res.val, o.sup, res.msg, b)
		case res.Terminal():
			return res.withBranch(b)
		}
		// Hooks already observed next's value; only the pairing is new.
		v, sup := res.val.OrZero(), o.sup.OrZero()
		msg, invalid, err := checkInvariants(op, v, sup)
		if err != nil {
			return Faulted[V, S](err, b)
		}
		if invalid {
			return Invalid(res.val, o.sup, msg, b)
		}
		return Wrap(v, sup, b)
	}
}

// Nest runs a separately built pipeline as a step on the value. The inner
// pipeline's value replaces the outer value and the outer supplement is
// kept. Terminal inner outcomes end the outer pipeline the same way.
//
//	fuel := railz.Init[*Engine]().TapValue(useGasoline)
//	power := railz.Init[*Engine]().TapValue(tune)
//	engine := railz.Nest(fuel, power)
func Nest[I, V, S, T any](seg Segment[I, V, S], inner Segment[V, V, T]) Segment[I, V, S] {
	const op = "Nest"
	return func(in I) Outcome[V, S] {
		o := seg(in)
		if o.Terminal() || o.branch.Skipping() {
			return o
		}
		res := inner.Run(o.val.OrZero())
		if res.Terminal() {
			out := rewrap[V, T, V, S](res)
			if res.IsInvalid() {
				out.sup = o.sup
			}
			return out.withBranch(o.branch)
		}
		return settle(op, res.val.OrZero(), o.sup.OrZero(), o.branch)
	}
}
