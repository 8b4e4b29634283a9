package railz

// Condition is the state of the innermost Iff region.
type Condition uint8

// Condition states. ConditionUnset means no region is active.
const (
	ConditionUnset Condition = iota
	ConditionMet
	ConditionNotMet
)

func (c Condition) String() string {
	switch c {
	case ConditionMet:
		return "met"
	case ConditionNotMet:
		return "not-met"
	default:
		return "unset"
	}
}

// Branch is the context threaded alongside every Outcome: the current Iff
// condition and the hooks registered when the pipeline was initialized.
// Branch values are immutable; the With methods return copies.
type Branch struct {
	hooks     []Hook
	condition Condition
}

// NewBranch returns an unset branch carrying hooks.
func NewBranch(hooks ...Hook) Branch {
	return Branch{hooks: append([]Hook(nil), hooks...)}
}

// Condition returns the current condition.
func (b Branch) Condition() Condition { return b.condition }

// Skipping reports whether steps should pass through without running.
func (b Branch) Skipping() bool { return b.condition == ConditionNotMet }

// Hooks returns a copy of the registered hooks.
func (b Branch) Hooks() []Hook {
	return append([]Hook(nil), b.hooks...)
}

// WithCondition returns a copy of b with condition c.
func (b Branch) WithCondition(c Condition) Branch {
	b.condition = c
	return b
}

// WithHooks returns a copy of b with more hooks appended after the existing ones.
func (b Branch) WithHooks(hooks ...Hook) Branch {
	if len(hooks) == 0 {
		return b
	}
	merged := make([]Hook, 0, len(b.hooks)+len(hooks))
	merged = append(merged, b.hooks...)
	b.hooks = append(merged, hooks...)
	return b
}
