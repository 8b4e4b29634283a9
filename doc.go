// Package railz provides railway-oriented pipelines for Go: typed steps
// composed into a single function that carries a value and a supplement
// through the chain and stops at the first failure.
//
// # Overview
//
// A pipeline is a Segment, a plain function from an input to an Outcome.
// Every step wraps the previous Segment and decides, by looking at the
// previous Outcome, whether its own logic runs at all. Business logic stays
// in small functions; the short-circuit rules live in one place.
//
// # Outcomes
//
// An Outcome holds exactly one of four variants:
//
//   - Success: the value/supplement Pair
//   - Absent: a value that is legitimately missing (nil)
//   - Faulted: an error or recovered panic, wrapped in a *Fault
//   - Invalid: a value that reported itself invalid, with its message
//
// Absent, Faulted and Invalid are terminal. Once a pipeline reaches one of
// them no further logic runs and no hook fires; the outcome is carried to the
// end of the chain. Match dispatches on the variant:
//
//	msg := railz.Match(out, railz.Cases[*Car, railz.Unit, string]{
//	    Success: func(p railz.Pair[*Car, railz.Unit]) string { return "parked" },
//	    Absent:  func() string { return "no car" },
//	    Faulted: func(err error) string { return err.Error() },
//	    Invalid: func(msg string, _ railz.Option[*Car], _ railz.Option[railz.Unit]) string { return msg },
//	})
//
// # Building pipelines
//
// Init, InitWith and InitFrom start a pipeline and choose its supplement.
// The Then family adds steps that keep the channel types:
//
//   - MapValue, MapSupplement, MapPair, MapValueFrom, MapSupplementFrom
//   - TapValue, TapSupplement, TapPair
//
// Iff, IffValue, IffSupplement and Else open conditional regions; EndIff and
// EndIffStrong close them. TransformValue, TransformSupplement,
// TransformPair, TransformWith and Swap change channel types. Join and Nest
// compose whole pipelines.
//
//	park := railz.Init[*Car]().
//	    TapValue(setHonda).
//	    IffValue(isHonda).TapValue(driveFast).
//	    IffValue(isToyota).TapValue(driveSlow).
//	    EndIff().
//	    TapValue(park)
//
//	out := park.Run(&Car{})
//
// # Validation and hooks
//
// Values that implement Invariant are checked on entry and after every
// successful step; embed Validity to get MarkInvalid for free. Hooks passed
// to Init see every Observable value a successful step produces.
//
// # Observability
//
// Observer wraps a built Segment with metricz counters, tracez spans and
// hookz events, the same way the rest of the stack reports on itself.
package railz
