// Package testing provides test utilities and helpers for railz pipelines.
//
// This package includes mock steps, a recording hook and outcome assertions
// to make testing railz pipelines shorter and more precise.
//
// Example usage:
//
//	func TestParking(t *testing.T) {
//		mock := railztest.NewMockStep[*Car](t, "park")
//		hook := railztest.NewRecordingHook()
//
//		pipeline := railz.Init[*Car](hook).TapValue(mock.Tap)
//		out := pipeline.Run(&Car{})
//
//		railztest.AssertSuccess(t, out)
//		railztest.AssertCalled(t, mock, 1)
//	}
package testing

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/railz"
)

// MockStep provides configurable step logic for railz pipelines. It counts
// calls, remembers inputs, and can be told to fail or panic.
type MockStep[T any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	t           *testing.T
	name        string
	callCount   int64
	lastInput   T
	returnErr   error
	panicMsg    string
	mu          sync.RWMutex
	callHistory []MockCall[T]
	maxHistory  int
}

// MockCall represents a single call to the mock step.
type MockCall[T any] struct {
	Input     T
	Timestamp time.Time
}

// NewMockStep creates a new mock step for testing.
func NewMockStep[T any](t *testing.T, name string) *MockStep[T] {
	return &MockStep[T]{
		t:          t,
		name:       name,
		maxHistory: 100, // Keep last 100 calls by default
	}
}

// WithError makes every subsequent call return err.
func (m *MockStep[T]) WithError(err error) *MockStep[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnErr = err
	return m
}

// WithPanic makes every subsequent call panic with msg.
func (m *MockStep[T]) WithPanic(msg string) *MockStep[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicMsg = msg
	return m
}

// WithHistorySize sets how many calls are kept. Zero disables history.
func (m *MockStep[T]) WithHistorySize(size int) *MockStep[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxHistory = size
	if size == 0 {
		m.callHistory = nil
	}
	return m
}

// Name returns the mock's name.
func (m *MockStep[T]) Name() string {
	return m.name
}

// Tap is the step logic, for use with TapValue or TapSupplement.
func (m *MockStep[T]) Tap(data T) error {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	m.lastInput = data
	if m.maxHistory > 0 {
		m.callHistory = append(m.callHistory, MockCall[T]{Input: data, Timestamp: time.Now()})
		if len(m.callHistory) > m.maxHistory {
			m.callHistory = m.callHistory[1:] // Remove oldest
		}
	}
	returnErr := m.returnErr
	panicMsg := m.panicMsg
	m.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	return returnErr
}

// Map is the step logic, for use with MapValue or MapSupplement. It returns
// its input unchanged unless configured to fail.
func (m *MockStep[T]) Map(data T) (T, error) {
	if err := m.Tap(data); err != nil {
		return data, err
	}
	return data, nil
}

// Predicate is a branch predicate that records the call and returns match.
func (m *MockStep[T]) Predicate(match bool) func(T) bool {
	return func(data T) bool {
		_ = m.Tap(data) //nolint:errcheck
		return match
	}
}

// CallCount returns the number of times the step ran.
func (m *MockStep[T]) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// LastInput returns the input from the most recent call.
func (m *MockStep[T]) LastInput() T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInput
}

// CallHistory returns a copy of all recorded calls.
func (m *MockStep[T]) CallHistory() []MockCall[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxHistory == 0 {
		return nil
	}
	history := make([]MockCall[T], len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// Reset clears all call tracking.
func (m *MockStep[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreInt64(&m.callCount, 0)
	m.lastInput = *new(T)
	m.callHistory = nil
}

// RecordingHook is a railz.Hook that keeps the log line of every value it
// is shown. It is safe for concurrent use.
type RecordingHook struct {
	err   error
	lines []string
	mu    sync.Mutex
}

// NewRecordingHook creates an empty recording hook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

// WithError makes the hook fail every call after recording it.
func (h *RecordingHook) WithError(err error) *RecordingHook {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
	return h
}

// PostProcess implements railz.Hook.
func (h *RecordingHook) PostProcess(o railz.Observable) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, o.LogLine())
	return h.err
}

// Lines returns a copy of the recorded lines.
func (h *RecordingHook) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.lines...)
}

// Count returns the number of recorded lines.
func (h *RecordingHook) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.lines)
}

// Reset forgets every recorded line.
func (h *RecordingHook) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = nil
}

// Assertion Helpers

// AssertCalled verifies that a mock step ran exactly n times.
func AssertCalled[T any](t *testing.T, mock *MockStep[T], expectedCalls int) {
	t.Helper()
	actualCalls := mock.CallCount()
	if actualCalls != expectedCalls {
		t.Errorf("expected mock step %s to be called %d times, but was called %d times",
			mock.name, expectedCalls, actualCalls)
	}
}

// AssertNotCalled verifies that a mock step never ran.
func AssertNotCalled[T any](t *testing.T, mock *MockStep[T]) {
	t.Helper()
	AssertCalled(t, mock, 0)
}

// AssertCalledWith verifies the input of the most recent call.
func AssertCalledWith[T comparable](t *testing.T, mock *MockStep[T], expectedInput T) {
	t.Helper()
	if mock.CallCount() == 0 {
		t.Errorf("expected mock step %s to be called with input %v, but it was never called",
			mock.name, expectedInput)
		return
	}
	if actual := mock.LastInput(); actual != expectedInput {
		t.Errorf("expected mock step %s to be called with input %v, but was called with %v",
			mock.name, expectedInput, actual)
	}
}

// AssertHooked verifies that a recording hook saw exactly n values.
func AssertHooked(t *testing.T, hook *RecordingHook, expected int) {
	t.Helper()
	if actual := hook.Count(); actual != expected {
		t.Errorf("expected hook to see %d values, but saw %d", expected, actual)
	}
}

// AssertSuccess verifies that out is a Success and returns its pair.
func AssertSuccess[V, S any](t *testing.T, out railz.Outcome[V, S]) railz.Pair[V, S] {
	t.Helper()
	if !out.IsSuccess() {
		t.Fatalf("expected success outcome, got %v", out)
	}
	return out.Pair()
}

// AssertAbsent verifies that out is Absent.
func AssertAbsent[V, S any](t *testing.T, out railz.Outcome[V, S]) {
	t.Helper()
	if !out.IsAbsent() {
		t.Errorf("expected absent outcome, got %v", out)
	}
}

// AssertFaulted verifies that out is Faulted. When target is non-nil the
// fault must also match it with errors.Is.
func AssertFaulted[V, S any](t *testing.T, out railz.Outcome[V, S], target error) error {
	t.Helper()
	if !out.IsFaulted() {
		t.Fatalf("expected faulted outcome, got %v", out)
	}
	err := out.Err()
	if target != nil && !errors.Is(err, target) {
		t.Errorf("expected fault matching %v, got %v", target, err)
	}
	return err
}

// AssertInvalid verifies that out is Invalid with the given message. An
// empty message only checks the variant.
func AssertInvalid[V, S any](t *testing.T, out railz.Outcome[V, S], msg string) {
	t.Helper()
	if !out.IsInvalid() {
		t.Fatalf("expected invalid outcome, got %v", out)
	}
	if msg != "" && out.ValidationMessage() != msg {
		t.Errorf("expected violation %q, got %q", msg, out.ValidationMessage())
	}
}

// ParallelTest runs a test function in parallel with multiple goroutines.
// Useful for checking that a built pipeline shares no state between runs.
func ParallelTest(t *testing.T, goroutines int, testFunc func(int)) {
	t.Helper()

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			testFunc(id)
		}(i)
	}

	wg.Wait()
}
