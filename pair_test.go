package railz

import (
	"testing"
)

func TestOption(t *testing.T) {
	t.Run("Some", func(t *testing.T) {
		o := Some(3)
		v, ok := o.Get()
		if !ok || v != 3 {
			t.Errorf("expected (3, true), got (%d, %t)", v, ok)
		}
		if !o.IsSome() {
			t.Error("expected IsSome")
		}
	})

	t.Run("None", func(t *testing.T) {
		o := None[string]()
		if o.IsSome() {
			t.Error("expected none")
		}
		if o.OrZero() != "" {
			t.Errorf("expected zero value, got %q", o.OrZero())
		}
		if o.String() != "none" {
			t.Errorf("expected 'none', got %q", o.String())
		}
	})

	t.Run("Convert Keeps Assignable Values", func(t *testing.T) {
		car := newTestCar()
		o := convertOption[*testCar, Observable](Some(car))
		v, ok := o.Get()
		if !ok || v != Observable(car) {
			t.Error("expected car to convert to Observable")
		}
		if convertOption[*testCar, int](Some(car)).IsSome() {
			t.Error("expected unrelated type to convert to none")
		}
	})
}

func TestIsEmpty(t *testing.T) {
	var nilCar *testCar
	var nilMap map[string]int
	var nilSlice []int
	var nilFunc func()
	var nilIface Observable

	empty := map[string]any{
		"nil":           nil,
		"nil pointer":   nilCar,
		"nil map":       nilMap,
		"nil slice":     nilSlice,
		"nil func":      nilFunc,
		"nil interface": nilIface,
	}
	for name, v := range empty {
		if !isEmpty(v) {
			t.Errorf("%s: expected empty", name)
		}
	}

	values := map[string]any{
		"zero int":     0,
		"empty string": "",
		"unit":         Unit{},
		"pointer":      newTestCar(),
		"empty slice":  []int{},
	}
	for name, v := range values {
		if isEmpty(v) {
			t.Errorf("%s: expected a value", name)
		}
	}
}

func TestSameInstance(t *testing.T) {
	car := newTestCar()
	m := map[string]int{"a": 1}
	s := make([]int, 1)

	if !sameInstance(car, car) {
		t.Error("expected pointer to be the same instance as itself")
	}
	if sameInstance(car, newTestCar()) {
		t.Error("expected distinct pointers to differ")
	}
	if !sameInstance(m, m) {
		t.Error("expected map to be the same instance as itself")
	}
	if !sameInstance(s, s) {
		t.Error("expected slice to be the same instance as itself")
	}
	if !sameInstance(5, 5) {
		t.Error("expected equal ints to count as the same instance")
	}
	if sameInstance(5, 6) {
		t.Error("expected different ints to differ")
	}
	if !sameInstance("vin", "vin") {
		t.Error("expected equal strings to count as the same instance")
	}
	if !sameInstance(plate{N: 7}, plate{N: 7}) {
		t.Error("expected equal structs to count as the same instance")
	}
	if sameInstance(plate{N: 7}, plate{N: 8}) {
		t.Error("expected different structs to differ")
	}
	if !sameInstance([2]int{1, 2}, [2]int{1, 2}) {
		t.Error("expected equal arrays to count as the same instance")
	}
	if sameInstance(boxed{V: []int{1}}, boxed{V: []int{1}}) {
		t.Error("expected structs holding uncomparable values to differ")
	}
	if sameInstance(Unit{}, Unit{}) {
		t.Error("expected unit values to be distinct instances")
	}
	if sameInstance(car, &testDealer{}) {
		t.Error("expected different types to differ")
	}
}

type plate struct{ N int }

type boxed struct{ V any }
