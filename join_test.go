package railz

import (
	"errors"
	"testing"
)

func TestJoin(t *testing.T) {
	t.Run("Segments", func(t *testing.T) {
		hondaSegment := InitWith[*testCar](newTestDealer).
			TapValue(setMark(hondaMark)).
			TapSupplement(func(d *testDealer) error { d.Reputation = "good"; return nil })
		driving := InitWith[*testCar](newTestDealer).TapValue(driveFast)

		out := hondaSegment.Join(driving).Run(newTestCar())

		if !out.IsSuccess() {
			t.Fatalf("expected success, got %v", out)
		}
		if out.Val().Speed != speedFast || out.Val().Mark != hondaMark {
			t.Errorf("expected fast honda, got %s", out.Val().LogLine())
		}
		if out.Supplement().Reputation != "good" {
			t.Errorf("expected first segment's good dealer, got %+v", out.Supplement())
		}
	})

	t.Run("Keeps First Supplement", func(t *testing.T) {
		first := &testDealer{Name: "first"}
		second := &testDealer{Name: "second"}
		seg := InitWith[*testCar](func() (*testDealer, error) { return first, nil })
		next := InitWith[*testCar](func() (*testDealer, error) { return second, nil }).TapValue(park)

		out := seg.Join(next).Run(newTestCar())

		if !out.IsSuccess() {
			t.Fatalf("expected success, got %v", out)
		}
		if out.Supplement() != first {
			t.Errorf("expected dealer %q, got %q", first.Name, out.Supplement().Name)
		}
		if !out.Val().Parked {
			t.Error("expected second segment's value")
		}
	})

	t.Run("Second Segment Invalid Keeps First Supplement", func(t *testing.T) {
		first := &testDealer{Name: "first"}
		seg := InitWith[*testCar](func() (*testDealer, error) { return first, nil })
		next := InitWith[*testCar](newTestDealer).
			TapValue(func(c *testCar) error { c.MarkInvalid(invalidCar); return nil })

		out := seg.Join(next).Run(newTestCar())

		if !out.IsInvalid() || out.ValidationMessage() != invalidCar {
			t.Fatalf("expected invalid car, got %v", out)
		}
		if d, ok := out.LookupSupplement(); !ok || d != first {
			t.Error("expected first segment's dealer on the invalid outcome")
		}
	})

	t.Run("Open Region Carries Over", func(t *testing.T) {
		a, b := &logCollector{}, &logCollector{}
		first := &testDealer{Name: "first"}
		seg := InitWith[*testCar](func() (*testDealer, error) { return first, nil }, a).
			TapValue(setMark(toyotaMark))
		next := InitWith[*testCar](newTestDealer, b).IffValue(isHonda).TapValue(driveFast)

		joined := seg.Join(next)
		out := joined.Run(newTestCar())

		if !out.IsSuccess() {
			t.Fatalf("expected success, got %v", out)
		}
		if out.Branch().Condition() != ConditionNotMet {
			t.Errorf("expected open region not met, got %v", out.Branch().Condition())
		}
		if out.Supplement() != first {
			t.Error("expected first segment's dealer")
		}
		hooks := out.Branch().Hooks()
		if len(hooks) != 2 || hooks[0] != Hook(a) || hooks[1] != Hook(b) {
			t.Errorf("expected both segments' hooks in order, got %d", len(hooks))
		}

		after := joined.TapValue(park).EndIff().TapValue(driveSlow).Run(newTestCar())
		if after.Val().Parked {
			t.Error("steps inside the open region must be skipped")
		}
		if after.Val().Speed != speedSlow {
			t.Errorf("expected step after EndIff to run, got speed %d", after.Val().Speed)
		}
		if after.Supplement() != first {
			t.Error("expected first segment's dealer after EndIff")
		}
	})

	t.Run("First Segment Faults", func(t *testing.T) {
		nr, aLot := 0, 20
		called := false
		first := InitWith[*testCar](newTestDealer).
			TapSupplement(func(d *testDealer) error {
				d.Reputation = "good"
				_ = aLot / nr
				return nil
			})
		second := InitWith[*testCar](newTestDealer).
			TapValue(func(*testCar) error { called = true; return nil })

		out := first.Join(second).Run(newTestCar())

		if !out.IsFaulted() {
			t.Fatalf("expected faulted, got %s", out.Kind())
		}
		var f *Fault
		if !errors.As(out.Err(), &f) || !f.Panicked {
			t.Errorf("expected panicked fault, got %v", out.Err())
		}
		if called {
			t.Error("second segment must not run")
		}
	})

	t.Run("Hooks Of Both Segments", func(t *testing.T) {
		a, b := &logCollector{}, &logCollector{}
		out := Init[*testCar](a).Join(Init[*testCar](b)).Run(newTestCar())

		hooks := out.Branch().Hooks()
		if len(hooks) != 2 {
			t.Fatalf("expected 2 hooks, got %d", len(hooks))
		}
		if hooks[0] != Hook(a) || hooks[1] != Hook(b) {
			t.Error("expected first segment's hooks ahead of the second's")
		}
	})
}

func TestNest(t *testing.T) {
	t.Run("Two Pipelines", func(t *testing.T) {
		fuel := Init[*testEngine]().TapValue(func(e *testEngine) error { e.Fuel = "gasoline"; return nil })
		power := Init[*testEngine]().TapValue(func(e *testEngine) error { e.HorsePower = 145; return nil })

		out := Nest(fuel, power).Run(&testEngine{})

		if !out.IsSuccess() {
			t.Fatalf("expected success, got %v", out)
		}
		if out.Val().Fuel != "gasoline" || out.Val().HorsePower != 145 {
			t.Errorf("expected gasoline 145hp, got %+v", out.Val())
		}
		if out.Supplement() != (Unit{}) {
			t.Errorf("expected unit supplement, got %v", out.Supplement())
		}
	})

	t.Run("Keeps Outer Supplement", func(t *testing.T) {
		outer := InitWith[*testCar](newTestDealer)
		inner := InitWith[*testCar](func() (int, error) { return 7, nil }).TapValue(park)

		out := Nest(outer, inner).Run(newTestCar())

		if !out.Val().Parked {
			t.Error("expected inner pipeline to run on the value")
		}
		if out.Supplement() == nil {
			t.Error("expected outer dealer to be kept")
		}
	})

	t.Run("Inner Fault Propagates", func(t *testing.T) {
		boom := errors.New("no fuel")
		called := false
		outer := InitWith[*testCar](newTestDealer)
		inner := Init[*testCar]().TapValue(func(*testCar) error { return boom })

		out := Nest(outer, inner).TapValue(func(*testCar) error { called = true; return nil }).Run(newTestCar())

		if !errors.Is(out.Err(), boom) {
			t.Fatalf("expected %v, got %v", boom, out)
		}
		if called {
			t.Error("steps after a faulted nest must not run")
		}
		if _, ok := out.LookupSupplement(); ok {
			t.Error("expected faulted outcome to carry no supplement")
		}
	})

	t.Run("Inner Panic Carries No Supplement", func(t *testing.T) {
		outer := InitWith[*testCar](newTestDealer)
		inner := Init[*testCar]().TapValue(func(*testCar) error { panic("stalled") })

		out := Nest(outer, inner).Run(newTestCar())

		if !out.IsFaulted() {
			t.Fatalf("expected faulted, got %s", out.Kind())
		}
		var f *Fault
		if !errors.As(out.Err(), &f) || !f.Panicked {
			t.Errorf("expected panicked fault, got %v", out.Err())
		}
		if _, ok := out.LookupSupplement(); ok {
			t.Error("expected faulted outcome to carry no supplement")
		}
		if _, ok := out.LookupVal(); ok {
			t.Error("expected faulted outcome to carry no value")
		}
	})

	t.Run("Inner Invalid Propagates", func(t *testing.T) {
		inner := Init[*testCar]().TapValue(func(c *testCar) error { c.MarkInvalid(invalidCar); return nil })

		out := Nest(Init[*testCar](), inner).Run(newTestCar())

		if !out.IsInvalid() || out.ValidationMessage() != invalidCar {
			t.Errorf("expected invalid car, got %v", out)
		}
		if _, ok := out.LookupSupplement(); !ok {
			t.Error("expected outer supplement on the invalid outcome")
		}
	})

	t.Run("Observer Inside Nest", func(t *testing.T) {
		power := NewObserver("power", Init[*testEngine]().TapValue(func(e *testEngine) error { e.HorsePower = 90; return nil }))
		defer power.Close()

		out := Nest(Init[*testEngine](), power.Segment()).Run(&testEngine{})

		if out.Val().HorsePower != 90 {
			t.Errorf("expected 90hp, got %d", out.Val().HorsePower)
		}
		if power.Metrics().Counter(ObserverRunsTotal).Value() != 1 {
			t.Error("expected the nested observer to record one run")
		}
	})
}
