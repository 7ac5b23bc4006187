package dispatch

import "errors"

// Reducer computes the next state from the previous state and an action.
//
// Reducers must be pure: no I/O, no mutation of anything reachable from
// their inputs, same output for the same input pair. A reducer that cannot
// apply the action returns an error and the state it was given; the store
// then abandons the whole cycle.
type Reducer[S, A any] func(S, A) (S, error)

// Selector is a pure projection from state to a derived view.
type Selector[S, R any] func(S) R

// Observer is a side-effecting callback invoked with a selector's result
// after each committed dispatch cycle.
type Observer[R any] func(R)

// Store owns a state value and evolves it through dispatched actions.
//
// Construct with New, register reducers with Use, then Dispatch actions.
// The zero value is not usable.
//
// INVARIANTS:
//   - reducers and subs orders never change after registration
//   - state only advances inside a dispatch cycle, and only as a whole value
type Store[S, A any] struct {
	state    S
	reducers []Reducer[S, A]
	subs     []func(S)

	// Reentrancy guard: set for the duration of the outermost Dispatch.
	// Nested dispatches append to pending and are drained FIFO after the
	// current cycle commits.
	dispatching bool
	pending     []A
}

// New creates a Store holding the given initial state.
func New[S, A any](initial S) *Store[S, A] {
	return &Store[S, A]{state: initial}
}

// Use appends a reducer to the chain and returns the store, so registration
// can be chained:
//
//	st := dispatch.New[State, Action](initial).
//	    Use(todoReducer).
//	    Use(auditReducer)
//
// Reducers run in registration order, each consuming the previous reducer's
// output state.
func (s *Store[S, A]) Use(r Reducer[S, A]) *Store[S, A] {
	s.reducers = append(s.reducers, r)
	return s
}

// State returns the current state snapshot.
//
// The snapshot stays valid after later dispatches: state values are replaced
// whole, never edited in place.
func (s *Store[S, A]) State() S {
	return s.state
}

// Dispatch runs one state transition cycle for the action.
//
// The action is folded through all reducers in registration order. If any
// reducer fails, the committed state is left exactly as it was, no observers
// fire, and the error is returned. On success the folded state replaces the
// current state and every subscription fires in registration order.
//
// A Dispatch issued from inside a reducer or observer of this cycle is
// queued and runs after the cycle commits, FIFO. A queued cycle that fails
// does not stop later queued cycles; all failures are joined into the
// returned error.
func (s *Store[S, A]) Dispatch(action A) error {
	if s.dispatching {
		s.pending = append(s.pending, action)
		return nil
	}

	s.dispatching = true
	defer func() {
		s.dispatching = false
		s.pending = nil
	}()

	var errs []error
	if err := s.cycle(action); err != nil {
		errs = append(errs, err)
	}

	for len(s.pending) > 0 {
		next := s.pending[0]
		// Zero the slot so the action's pointers do not outlive the queue.
		var zero A
		s.pending[0] = zero
		s.pending = s.pending[1:]

		if err := s.cycle(next); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// cycle runs a single reducer fold plus notification.
// The fold works on a local value, so a failure commits nothing.
func (s *Store[S, A]) cycle(action A) error {
	next := s.state
	for _, r := range s.reducers {
		var err error
		next, err = r(next, action)
		if err != nil {
			return err
		}
	}

	s.state = next

	for _, notify := range s.subs {
		notify(next)
	}
	return nil
}

// Select evaluates a selector against the store's current state without
// registering it.
func Select[S, A, R any](s *Store[S, A], sel Selector[S, R]) R {
	return sel(s.State())
}

// Observe registers a selector/observer pair. After every committed dispatch
// cycle the selector is evaluated against the new state and the observer is
// invoked with the result. Registration does not fire for past dispatches.
//
// Pairs fire in registration order. Observers are the only place user-visible
// side effects belong; they must not block the store indefinitely.
func Observe[S, A, R any](s *Store[S, A], sel Selector[S, R], obs Observer[R]) {
	s.subs = append(s.subs, func(state S) {
		obs(sel(state))
	})
}
