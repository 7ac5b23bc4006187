package testutil

// Recorder is an observer that captures every value it is invoked with,
// in order. Tests register it against a store and assert on the captured
// sequence afterwards.
//
// Not safe for concurrent use; stores are single-goroutine by design.
type Recorder[R any] struct {
	values []R
}

// NewRecorder creates an empty recorder.
func NewRecorder[R any]() *Recorder[R] {
	return &Recorder[R]{}
}

// Observe is the callback to register with dispatch.Observe.
func (r *Recorder[R]) Observe(v R) {
	r.values = append(r.values, v)
}

// Values returns the captured values in firing order.
func (r *Recorder[R]) Values() []R {
	return r.values
}

// Count returns the number of firings.
func (r *Recorder[R]) Count() int {
	return len(r.values)
}

// Reset discards captured values.
func (r *Recorder[R]) Reset() {
	r.values = nil
}
