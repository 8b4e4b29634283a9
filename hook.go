package railz

// Observable is implemented by values that can describe themselves to hooks.
type Observable interface {
	LogLine() string
}

// Hook post-processes every Observable value produced by a successful step.
// A returned error turns the step into a Faulted outcome.
type Hook interface {
	PostProcess(Observable) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(Observable) error

// PostProcess calls f.
func (f HookFunc) PostProcess(o Observable) error {
	return f(o)
}

// runHooks passes each Observable value to every hook, values in order and
// hooks in registration order. The first failing hook stops the run.
func runHooks(op string, hooks []Hook, values ...any) error {
	if len(hooks) == 0 {
		return nil
	}
	for _, v := range values {
		if isEmpty(v) {
			continue
		}
		obs, ok := v.(Observable)
		if !ok {
			continue
		}
		for _, h := range hooks {
			if err := guard(op, StageHook, func() error { return h.PostProcess(obs) }); err != nil {
				return err
			}
		}
	}
	return nil
}
