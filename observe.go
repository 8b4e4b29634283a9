package railz

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys for Observer.
const (
	ObserverRunsTotal      = metricz.Key("observer.runs.total")
	ObserverSuccessesTotal = metricz.Key("observer.successes.total")
	ObserverAbsentTotal    = metricz.Key("observer.absent.total")
	ObserverFaultedTotal   = metricz.Key("observer.faulted.total")
	ObserverInvalidTotal   = metricz.Key("observer.invalid.total")
	ObserverDurationMs     = metricz.Key("observer.duration.ms")
)

// Span names for Observer.
const (
	ObserverRunSpan = tracez.Key("observer.run")
)

// Span tags for Observer.
const (
	ObserverTagName      = tracez.Tag("observer.name")
	ObserverTagKind      = tracez.Tag("observer.kind")
	ObserverTagError     = tracez.Tag("observer.error")
	ObserverTagViolation = tracez.Tag("observer.violation")

	// Hook event keys.
	ObserverEventSuccess = hookz.Key("observer.success")
	ObserverEventAbsent  = hookz.Key("observer.absent")
	ObserverEventFaulted = hookz.Key("observer.faulted")
	ObserverEventInvalid = hookz.Key("observer.invalid")
)

// OutcomeEvent describes one observed pipeline run.
type OutcomeEvent struct {
	Timestamp time.Time
	Err       error
	Name      string
	Violation string
	Duration  time.Duration
	Kind      Kind
}

// Observer wraps a built Segment with metrics, tracing and outcome events.
// It never changes the outcome it reports on.
//
// Metrics:
//   - observer.runs.total: Counter of runs
//   - observer.successes.total, observer.absent.total,
//     observer.faulted.total, observer.invalid.total: Counters per outcome kind
//   - observer.duration.ms: Gauge of the last run's duration
//
// Traces:
//   - observer.run: Span per run, tagged with the outcome kind
//
// Events (via hooks, delivered asynchronously):
//   - observer.success, observer.absent, observer.faulted, observer.invalid
//
// Example:
//
//	checkout := railz.NewObserver("checkout", pipeline)
//	defer checkout.Close()
//
//	checkout.OnFaulted(func(_ context.Context, e railz.OutcomeEvent) error {
//	    log.Printf("%s faulted: %v", e.Name, e.Err)
//	    return nil
//	})
//	out := checkout.Process(ctx, order)
type Observer[I, V, S any] struct {
	segment Segment[I, V, S]
	clock   clockz.Clock
	name    string
	mu      sync.RWMutex

	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[OutcomeEvent]
}

// NewObserver wraps seg under name.
func NewObserver[I, V, S any](name string, seg Segment[I, V, S]) *Observer[I, V, S] {
	registry := metricz.New()
	registry.Counter(ObserverRunsTotal)
	registry.Counter(ObserverSuccessesTotal)
	registry.Counter(ObserverAbsentTotal)
	registry.Counter(ObserverFaultedTotal)
	registry.Counter(ObserverInvalidTotal)
	registry.Gauge(ObserverDurationMs)

	return &Observer[I, V, S]{
		name:    name,
		segment: seg,
		metrics: registry,
		tracer:  tracez.New(),
		hooks:   hookz.New[OutcomeEvent](),
	}
}

// Run runs the wrapped segment with a background context.
func (o *Observer[I, V, S]) Run(in I) Outcome[V, S] {
	return o.Process(context.Background(), in)
}

// Process runs the wrapped segment, recording the run under a span parented by ctx.
func (o *Observer[I, V, S]) Process(ctx context.Context, in I) Outcome[V, S] {
	o.mu.RLock()
	seg := o.segment
	name := o.name
	o.mu.RUnlock()
	clock := o.getClock()

	ctx, span := o.tracer.StartSpan(ctx, ObserverRunSpan)
	defer span.Finish()
	span.SetTag(ObserverTagName, name)

	o.metrics.Counter(ObserverRunsTotal).Inc()

	start := clock.Now()
	out := seg.Run(in)
	elapsed := clock.Since(start)
	o.metrics.Gauge(ObserverDurationMs).Set(float64(elapsed.Milliseconds()))

	event := OutcomeEvent{
		Name:      name,
		Kind:      out.Kind(),
		Duration:  elapsed,
		Timestamp: clock.Now(),
	}
	span.SetTag(ObserverTagKind, out.Kind().String())

	var key hookz.Key
	switch out.Kind() {
	case KindSuccess:
		o.metrics.Counter(ObserverSuccessesTotal).Inc()
		key = ObserverEventSuccess
	case KindAbsent:
		o.metrics.Counter(ObserverAbsentTotal).Inc()
		key = ObserverEventAbsent
	case KindFaulted:
		o.metrics.Counter(ObserverFaultedTotal).Inc()
		event.Err = out.Err()
		span.SetTag(ObserverTagError, event.Err.Error())
		key = ObserverEventFaulted
	case KindInvalid:
		o.metrics.Counter(ObserverInvalidTotal).Inc()
		event.Violation = out.ValidationMessage()
		span.SetTag(ObserverTagViolation, event.Violation)
		key = ObserverEventInvalid
	default:
		return out
	}

	_ = o.hooks.Emit(ctx, key, event) //nolint:errcheck
	return out
}

// Segment returns the observed segment, so an Observer can sit inside Join or Nest.
func (o *Observer[I, V, S]) Segment() Segment[I, V, S] {
	return o.Run
}

// Name returns the observer's name.
func (o *Observer[I, V, S]) Name() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.name
}

// Metrics returns the metrics registry for this observer.
func (o *Observer[I, V, S]) Metrics() *metricz.Registry {
	return o.metrics
}

// Tracer returns the tracer for this observer.
func (o *Observer[I, V, S]) Tracer() *tracez.Tracer {
	return o.tracer
}

// WithClock sets a custom clock for testing.
func (o *Observer[I, V, S]) WithClock(clock clockz.Clock) *Observer[I, V, S] {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clock = clock
	return o
}

// getClock returns the clock to use.
func (o *Observer[I, V, S]) getClock() clockz.Clock {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.clock == nil {
		return clockz.RealClock
	}
	return o.clock
}

// Close shuts down the tracer and the event hooks.
func (o *Observer[I, V, S]) Close() error {
	if o.tracer != nil {
		o.tracer.Close()
	}
	o.hooks.Close()
	return nil
}

// OnSuccess registers a handler for successful runs.
func (o *Observer[I, V, S]) OnSuccess(handler func(context.Context, OutcomeEvent) error) error {
	_, err := o.hooks.Hook(ObserverEventSuccess, handler)
	return err
}

// OnAbsent registers a handler for runs that ended Absent.
func (o *Observer[I, V, S]) OnAbsent(handler func(context.Context, OutcomeEvent) error) error {
	_, err := o.hooks.Hook(ObserverEventAbsent, handler)
	return err
}

// OnFaulted registers a handler for runs that ended Faulted.
func (o *Observer[I, V, S]) OnFaulted(handler func(context.Context, OutcomeEvent) error) error {
	_, err := o.hooks.Hook(ObserverEventFaulted, handler)
	return err
}

// OnInvalid registers a handler for runs that ended Invalid.
func (o *Observer[I, V, S]) OnInvalid(handler func(context.Context, OutcomeEvent) error) error {
	_, err := o.hooks.Hook(ObserverEventInvalid, handler)
	return err
}
