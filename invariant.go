package railz

// DefaultViolation is reported by Validity when MarkInvalid is given no message.
const DefaultViolation = "value is in an invalid state"

// Invariant is implemented by values that validate themselves. Pipelines
// check it on the input and on both channels after every successful step.
type Invariant interface {
	Valid() bool
	Violation() string
}

// Invalidator is an Invariant that step logic can flag as invalid.
type Invalidator interface {
	Invariant
	MarkInvalid(msg string)
}

// Validity is an embeddable Invalidator. The zero value is valid.
//
//	type Car struct {
//	    railz.Validity
//	    Mark string
//	}
//
//	car.MarkInvalid("engine missing") // the next step ends Invalid
type Validity struct {
	message string
	invalid bool
}

// Valid reports whether MarkInvalid has not been called.
func (v *Validity) Valid() bool {
	return v == nil || !v.invalid
}

// Violation returns the message given to MarkInvalid, or "" while valid.
func (v *Validity) Violation() string {
	if v.Valid() {
		return ""
	}
	return v.message
}

// MarkInvalid flags the value. An empty msg records DefaultViolation.
func (v *Validity) MarkInvalid(msg string) {
	if msg == "" {
		msg = DefaultViolation
	}
	v.invalid = true
	v.message = msg
}

// checkInvariants returns the violation of the first invalid value. Panics
// raised by Valid or Violation come back as a Fault.
func checkInvariants(op string, values ...any) (msg string, invalid bool, err error) {
	err = guard(op, StageValidation, func() error {
		for _, v := range values {
			if isEmpty(v) {
				continue
			}
			inv, ok := v.(Invariant)
			if !ok {
				continue
			}
			if !inv.Valid() {
				msg, invalid = inv.Violation(), true
				return nil
			}
		}
		return nil
	})
	return msg, invalid, err
}
