package railz

// Init starts a pipeline whose supplement is Unit. Hooks given here observe
// every value produced by the pipeline's successful steps.
//
//	park := railz.Init[*Car]().
//	    TapValue(func(c *Car) error { c.Parked = true; return nil })
func Init[I any](hooks ...Hook) Segment[I, I, Unit] {
	return initSegment("Init", func(I) (Unit, error) { return Unit{}, nil }, hooks)
}

// InitWith starts a pipeline whose supplement is built by factory.
func InitWith[I, S any](factory func() (S, error), hooks ...Hook) Segment[I, I, S] {
	return initSegment("InitWith", func(I) (S, error) { return factory() }, hooks)
}

// InitFrom starts a pipeline whose supplement is derived from the input.
// The factory must not hand back the input itself.
func InitFrom[I, S any](factory func(I) (S, error), hooks ...Hook) Segment[I, I, S] {
	return initSegment("InitFrom", factory, hooks)
}

func initSegment[I, S any](op string, factory func(I) (S, error), hooks []Hook) Segment[I, I, S] {
	branch := NewBranch(hooks...)
	return func(in I) Outcome[I, S] {
		if isEmpty(in) {
			return Faulted[I, S](newFault(op, StageInput, ErrNilInput), branch)
		}

		msg, invalid, err := checkInvariants(op, in)
		if err != nil {
			return Faulted[I, S](err, branch)
		}
		if invalid {
			return Invalid(Some(in), None[S](), msg, branch)
		}

		var sup S
		err = guard(op, StageFactory, func() (err error) {
			sup, err = factory(in)
			return err
		})
		if err != nil {
			return Faulted[I, S](err, branch)
		}
		if sameInstance(in, sup) {
			return Faulted[I, S](newFault(op, StageFactory, ErrInitReusedInput), branch)
		}
		if isEmpty(sup) {
			return Absent[I, S](branch)
		}

		if err := runHooks(op, branch.hooks, in, sup); err != nil {
			return Faulted[I, S](err, branch)
		}
		return Success(in, sup, branch)
	}
}
